package workflowstatestore

import (
	"context"
	"docflow-backend/models"
	dbmodels "docflow-backend/models/db"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	GetByDocument(ctx context.Context, tenantID, documentID int64) (rec *dbmodels.WorkflowState, err error)
	// EnsureDraft inserts the draft row if the document has never entered the workflow.
	EnsureDraft(ctx context.Context, tenantID, documentID int64) error
	// CompareAndSwap moves the document to the new state only if it is still in fromState.
	// ok is false when no row matched, i.e. a concurrent transition won.
	CompareAndSwap(ctx context.Context, tenantID, documentID int64, fromState models.WorkflowState, updMap map[string]interface{}) (ok bool, err error)
	// ListStale returns documents that sat in one of states since before the given time
	// and were not reminded about after it.
	ListStale(ctx context.Context, before time.Time, states []models.WorkflowState) (list []dbmodels.WorkflowState, err error)
	// MarkReminded leaves updated_at alone; ok is false when the document has moved on from state.
	MarkReminded(ctx context.Context, tenantID, documentID int64, state models.WorkflowState, at time.Time) (ok bool, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) GetByDocument(ctx context.Context, tenantID, documentID int64) (*dbmodels.WorkflowState, error) {
	rec := dbmodels.WorkflowState{}
	err := i.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Where("tenant_id = ?", tenantID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) EnsureDraft(ctx context.Context, tenantID, documentID int64) error {
	rec := dbmodels.WorkflowState{
		BaseTenantModel: dbmodels.BaseTenantModel{
			TenantID: tenantID,
		},
		DocumentID:   documentID,
		CurrentState: models.WorkflowStateDraft,
	}
	return i.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "document_id"}},
			DoNothing: true,
		}).
		Create(&rec).
		Error
}

func (i impl) CompareAndSwap(ctx context.Context, tenantID, documentID int64, fromState models.WorkflowState, updMap map[string]interface{}) (bool, error) {
	tx := i.db.WithContext(ctx).
		Model(&dbmodels.WorkflowState{}).
		Where("document_id = ?", documentID).
		Where("tenant_id = ?", tenantID).
		Where("current_state = ?", fromState).
		Updates(updMap)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

func (i impl) ListStale(ctx context.Context, before time.Time, states []models.WorkflowState) (list []dbmodels.WorkflowState, err error) {
	list = []dbmodels.WorkflowState{}
	err = i.db.WithContext(ctx).
		Where("current_state IN ?", states).
		Where("updated_at < ?", before).
		Where("(reminded_at IS NULL OR reminded_at < ?)", before).
		Preload("Document").
		Order("updated_at ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) MarkReminded(ctx context.Context, tenantID, documentID int64, state models.WorkflowState, at time.Time) (bool, error) {
	tx := i.db.WithContext(ctx).
		Model(&dbmodels.WorkflowState{}).
		Where("document_id = ?", documentID).
		Where("tenant_id = ?", tenantID).
		Where("current_state = ?", state).
		UpdateColumn("reminded_at", at)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}
