package dbmodels

import (
	"docflow-backend/models"
	"time"

	"github.com/pkg/errors"
)

// WorkflowHistory is append-only: rows are never updated or deleted.
type WorkflowHistory struct {
	ID           int64                 `gorm:"primaryKey;autoIncrement"`
	CreatedAt    time.Time             `gorm:"index"`
	TenantID     int64                 `gorm:"index;not null"`
	DocumentID   int64                 `gorm:"index;not null"`
	TransitionID string                `gorm:"type:varchar(36);index"`
	ActorID      int64                 `gorm:"not null"`
	Actor        *User                 `gorm:"foreignKey:ActorID"`
	FromState    models.WorkflowState  `gorm:"type:varchar(32)"`
	ToState      models.WorkflowState  `gorm:"type:varchar(32);not null"`
	Action       models.WorkflowAction `gorm:"type:varchar(32);not null"`
	Comment      string
}

func (WorkflowHistory) TableName() string {
	return "workflow_history"
}

func (h WorkflowHistory) Validate() error {
	if h.TenantID == 0 {
		return errors.New("tenant is not specified")
	}
	if h.DocumentID == 0 {
		return errors.New("document is not specified")
	}
	if h.ActorID == 0 {
		return errors.New("actor is not specified")
	}
	if !h.ToState.IsValid() {
		return errors.Errorf("unknown target state %q", h.ToState)
	}
	return nil
}
