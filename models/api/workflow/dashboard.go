package workflowapimodels

import (
	"docflow-backend/models"
	"time"
)

type DashboardView struct {
	Counts              map[models.WorkflowState]int64 `json:"counts"`
	PendingMyValidation []PendingDocumentView          `json:"pending_my_validation"`
	PendingMyApproval   []PendingDocumentView          `json:"pending_my_approval"`
}

type PendingDocumentView struct {
	DocumentID int64                `json:"document_id"`
	Title      string               `json:"title"`
	CreatorID  int64                `json:"creator_id"`
	State      models.WorkflowState `json:"state"`
	UpdatedAt  time.Time            `json:"updated_at"`
}
