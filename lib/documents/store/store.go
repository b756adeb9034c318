package documentstore

import (
	"context"
	dbmodels "docflow-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(ctx context.Context, rec dbmodels.Document) (id int64, err error)
	GetByID(ctx context.Context, tenantID, id int64) (rec *dbmodels.Document, err error)
	Delete(ctx context.Context, tenantID, id int64) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(ctx context.Context, rec dbmodels.Document) (id int64, err error) {
	if err = rec.Validate(); err != nil {
		return 0, err
	}
	err = i.db.WithContext(ctx).
		Omit("Creator").
		Create(&rec).
		Error
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

func (i impl) GetByID(ctx context.Context, tenantID, id int64) (*dbmodels.Document, error) {
	rec := dbmodels.Document{}
	err := i.db.WithContext(ctx).
		Where("id = ?", id).
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

// Delete is a soft delete; Document.AfterDelete cascades to the workflow state.
func (i impl) Delete(ctx context.Context, tenantID, id int64) error {
	rec, err := i.GetByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return nil
	}
	return i.db.WithContext(ctx).
		Delete(rec).
		Error
}
