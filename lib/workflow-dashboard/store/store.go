package workflowdashboardstore

import (
	"context"
	"docflow-backend/models"
	"time"

	"gorm.io/gorm"
)

type StateCount struct {
	State models.WorkflowState
	Total int64
}

type PendingDocument struct {
	DocumentID int64
	Title      string
	CreatorID  int64
	State      models.WorkflowState
	UpdatedAt  time.Time
}

type Provider interface {
	// CountByState counts live documents of the tenant; documents without a workflow entry count as draft.
	CountByState(ctx context.Context, tenantID int64) (list []StateCount, err error)
	ListPendingForValidator(ctx context.Context, tenantID, userID int64) (list []PendingDocument, err error)
	ListPendingForApprover(ctx context.Context, tenantID, userID int64) (list []PendingDocument, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) CountByState(ctx context.Context, tenantID int64) (list []StateCount, err error) {
	list = []StateCount{}
	err = i.db.WithContext(ctx).
		Table("documents d").
		Select("COALESCE(ws.current_state, ?) AS state, COUNT(*) AS total", models.WorkflowStateDraft).
		Joins("LEFT JOIN workflow_states ws ON ws.document_id = d.id AND ws.deleted_at IS NULL").
		Where("d.tenant_id = ?", tenantID).
		Where("d.deleted_at IS NULL").
		Group("state").
		Scan(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListPendingForValidator(ctx context.Context, tenantID, userID int64) (list []PendingDocument, err error) {
	return i.listPending(ctx, tenantID, "ws.assigned_validator_id = ?", userID, models.WorkflowStatePendingValidation)
}

func (i impl) ListPendingForApprover(ctx context.Context, tenantID, userID int64) (list []PendingDocument, err error) {
	return i.listPending(ctx, tenantID, "ws.assigned_approver_id = ?", userID, models.WorkflowStatePendingApproval)
}

func (i impl) listPending(ctx context.Context, tenantID int64, assigneeCond string, userID int64, state models.WorkflowState) (list []PendingDocument, err error) {
	list = []PendingDocument{}
	err = i.db.WithContext(ctx).
		Table("workflow_states ws").
		Select("ws.document_id, d.title, d.creator_id, ws.current_state AS state, ws.updated_at").
		Joins("JOIN documents d ON d.id = ws.document_id AND d.deleted_at IS NULL").
		Where("ws.tenant_id = ?", tenantID).
		Where("ws.deleted_at IS NULL").
		Where("ws.current_state = ?", state).
		Where(assigneeCond, userID).
		Order("ws.updated_at ASC").
		Scan(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
