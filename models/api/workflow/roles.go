package workflowapimodels

import (
	"docflow-backend/models"

	"github.com/pkg/errors"
)

type RoleData struct {
	UserID   int64               `json:"user_id"`
	Role     models.WorkflowRole `json:"role"`      // validator | approver
	TenantID *int64              `json:"tenant_id"` // super admin only
}

func (r RoleData) Validate() error {
	if r.UserID <= 0 {
		return errors.New("user is not specified")
	}
	if r.Role == "" {
		return errors.New("role is not specified")
	}
	return nil
}

type TenantUserRolesView struct {
	UserID      int64  `json:"user_id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	TenantRole  string `json:"tenant_role"`
	IsValidator bool   `json:"is_validator"`
	IsApprover  bool   `json:"is_approver"`
}
