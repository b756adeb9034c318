package dbmodels

import (
	"docflow-backend/models"

	"gorm.io/gorm"
)

// RoleAssignment - at most one live row per (tenant, user, role), see idx_role_assignment_live.
type RoleAssignment struct {
	BaseModel
	TenantID     int64               `gorm:"uniqueIndex:idx_role_assignment_live,where:deleted_at IS NULL;not null"`
	UserID       int64               `gorm:"uniqueIndex:idx_role_assignment_live,where:deleted_at IS NULL;not null"`
	User         *User               `gorm:"foreignKey:UserID"`
	WorkflowRole models.WorkflowRole `gorm:"type:varchar(32);uniqueIndex:idx_role_assignment_live,where:deleted_at IS NULL;not null"`
	AssignedBy   int64
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}
