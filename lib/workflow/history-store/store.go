package workflowhistorystore

import (
	"context"
	dbmodels "docflow-backend/models/db"

	"gorm.io/gorm"
)

// Provider has no update or delete: the history log is append-only.
type Provider interface {
	Create(ctx context.Context, rec dbmodels.WorkflowHistory) (id int64, err error)
	List(ctx context.Context, tenantID, documentID int64, limit int) (list []dbmodels.WorkflowHistory, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(ctx context.Context, rec dbmodels.WorkflowHistory) (id int64, err error) {
	if err = rec.Validate(); err != nil {
		return 0, err
	}
	err = i.db.WithContext(ctx).
		Omit("Actor").
		Create(&rec).
		Error
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

// List returns entries in canonical order: created_at, then insertion sequence.
func (i impl) List(ctx context.Context, tenantID, documentID int64, limit int) (list []dbmodels.WorkflowHistory, err error) {
	list = []dbmodels.WorkflowHistory{}
	tx := i.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Where("document_id = ?", documentID).
		Order("created_at ASC").
		Order("id ASC").
		Preload("Actor")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	err = tx.Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
