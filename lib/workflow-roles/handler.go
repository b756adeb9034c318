package workflowroleshandler

import (
	"context"
	"docflow-backend/db"
	documentstore "docflow-backend/lib/documents/store"
	tenantmembersstore "docflow-backend/lib/tenant/members-store"
	workflowerrors "docflow-backend/lib/workflow-errors"
	workflowrolesstore "docflow-backend/lib/workflow-roles/store"
	workflowstatestore "docflow-backend/lib/workflow/state-store"
	"docflow-backend/models"
	workflowapimodels "docflow-backend/models/api/workflow"
	dbmodels "docflow-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	AssignRole(ctx context.Context, tenantID, userID int64, role models.WorkflowRole, assignedBy int64) error
	RevokeRole(ctx context.Context, tenantID, userID int64, role models.WorkflowRole) error
	ListTenantUsersWithRoles(ctx context.Context, tenantID int64) ([]workflowapimodels.TenantUserRolesView, error)
	HasRole(ctx context.Context, tenantID, userID int64, role models.WorkflowRole) (bool, error)
	GetAssignedValidator(ctx context.Context, tenantID, documentID int64) (*int64, error)
	GetAssignedApprover(ctx context.Context, tenantID, documentID int64) (*int64, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB)
}

func NewInstance(DB *gorm.DB) Provider {
	return impl{
		store:         workflowrolesstore.NewInstance(DB),
		membersStore:  tenantmembersstore.NewInstance(DB),
		stateStore:    workflowstatestore.NewInstance(DB),
		documentStore: documentstore.NewInstance(DB),
	}
}

type impl struct {
	store         workflowrolesstore.Provider
	membersStore  tenantmembersstore.Provider
	stateStore    workflowstatestore.Provider
	documentStore documentstore.Provider
}

func (i impl) getLogger(tenantID, userID int64) *log.Entry {
	return log.
		WithField("tenant_id", tenantID).
		WithField("user_id", userID)
}

// AssignRole is an idempotent upsert; the caller has already checked the manager capability.
func (i impl) AssignRole(ctx context.Context, tenantID, userID int64, role models.WorkflowRole, assignedBy int64) error {
	logger := i.getLogger(tenantID, userID).
		WithField("workflow_role", role).
		WithField("assigned_by", assignedBy)
	if !role.IsValid() {
		return workflowerrors.ValidationFailed("unknown workflow role")
	}
	if err := i.checkTenant(ctx, tenantID); err != nil {
		return err
	}
	isMember, err := i.membersStore.IsMember(ctx, tenantID, userID)
	if err != nil {
		logger.WithError(err).Error("failed to check tenant membership")
		return err
	}
	if !isMember {
		return workflowerrors.NotFound("user is not a member of the tenant")
	}
	rec := dbmodels.RoleAssignment{
		TenantID:     tenantID,
		UserID:       userID,
		WorkflowRole: role,
		AssignedBy:   assignedBy,
	}
	_, err = i.store.Upsert(ctx, rec)
	if err != nil {
		logger.WithError(err).Error("failed to save workflow role")
		return errors.Wrap(err, "failed to save workflow role")
	}
	logger.Info("workflow role assigned")
	return nil
}

func (i impl) RevokeRole(ctx context.Context, tenantID, userID int64, role models.WorkflowRole) error {
	logger := i.getLogger(tenantID, userID).
		WithField("workflow_role", role)
	if !role.IsValid() {
		return workflowerrors.ValidationFailed("unknown workflow role")
	}
	found, err := i.store.Revoke(ctx, tenantID, userID, role)
	if err != nil {
		logger.WithError(err).Error("failed to revoke workflow role")
		return errors.Wrap(err, "failed to revoke workflow role")
	}
	if !found {
		return workflowerrors.NotFound("role assignment not found")
	}
	logger.Info("workflow role revoked")
	return nil
}

// ListTenantUsersWithRoles returns the full roster, users without any workflow role included.
func (i impl) ListTenantUsersWithRoles(ctx context.Context, tenantID int64) ([]workflowapimodels.TenantUserRolesView, error) {
	if err := i.checkTenant(ctx, tenantID); err != nil {
		return nil, err
	}
	members, err := i.membersStore.ListMembers(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	assignments, err := i.store.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	roles := map[int64]map[models.WorkflowRole]bool{}
	for _, rec := range assignments {
		if _, ok := roles[rec.UserID]; !ok {
			roles[rec.UserID] = map[models.WorkflowRole]bool{}
		}
		roles[rec.UserID][rec.WorkflowRole] = true
	}
	result := make([]workflowapimodels.TenantUserRolesView, 0, len(members))
	for _, member := range members {
		view := workflowapimodels.TenantUserRolesView{
			UserID:      member.UserID,
			TenantRole:  member.Role.ToHuman(),
			IsValidator: roles[member.UserID][models.WorkflowRoleValidator],
			IsApprover:  roles[member.UserID][models.WorkflowRoleApprover],
		}
		if member.User != nil {
			view.FullName = member.User.GetFullName()
			view.Email = member.User.Email
		}
		result = append(result, view)
	}
	return result, nil
}

func (i impl) checkTenant(ctx context.Context, tenantID int64) error {
	tenant, err := i.membersStore.GetTenant(ctx, tenantID)
	if err != nil {
		return errors.Wrap(err, "failed to get tenant")
	}
	if tenant == nil {
		return workflowerrors.NotFound("tenant not found")
	}
	return nil
}

func (i impl) HasRole(ctx context.Context, tenantID, userID int64, role models.WorkflowRole) (bool, error) {
	return i.store.Exist(ctx, tenantID, userID, role)
}

func (i impl) GetAssignedValidator(ctx context.Context, tenantID, documentID int64) (*int64, error) {
	state, err := i.getState(ctx, tenantID, documentID)
	if err != nil || state == nil {
		return nil, err
	}
	return state.AssignedValidatorID, nil
}

func (i impl) GetAssignedApprover(ctx context.Context, tenantID, documentID int64) (*int64, error) {
	state, err := i.getState(ctx, tenantID, documentID)
	if err != nil || state == nil {
		return nil, err
	}
	return state.AssignedApproverID, nil
}

// getState reads the assignment stored on the workflow state, never the live registry.
func (i impl) getState(ctx context.Context, tenantID, documentID int64) (*dbmodels.WorkflowState, error) {
	doc, err := i.documentStore.GetByID(ctx, tenantID, documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, workflowerrors.NotFound("document not found")
	}
	return i.stateStore.GetByDocument(ctx, tenantID, documentID)
}
