package dbmodels

import (
	"docflow-backend/models"
	"time"

	"gorm.io/gorm"
)

type WorkflowState struct {
	BaseTenantModel
	DocumentID          int64                `gorm:"uniqueIndex;not null"`
	Document            *Document            `gorm:"foreignKey:DocumentID"`
	CurrentState        models.WorkflowState `gorm:"type:varchar(32);index;not null"`
	AssignedValidatorID *int64               `gorm:"index"`
	AssignedApproverID  *int64               `gorm:"index"`
	RemindedAt          *time.Time
	DeletedAt           gorm.DeletedAt       `gorm:"index"`
}

func (s WorkflowState) ValidatorID() int64 {
	if s.AssignedValidatorID == nil {
		return 0
	}
	return *s.AssignedValidatorID
}

func (s WorkflowState) ApproverID() int64 {
	if s.AssignedApproverID == nil {
		return 0
	}
	return *s.AssignedApproverID
}
