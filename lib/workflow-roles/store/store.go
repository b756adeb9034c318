package workflowrolesstore

import (
	"context"
	"docflow-backend/models"
	dbmodels "docflow-backend/models/db"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	// Upsert creates the live assignment or bumps assigned_by/updated_at of the existing one.
	Upsert(ctx context.Context, rec dbmodels.RoleAssignment) (id int64, err error)
	Revoke(ctx context.Context, tenantID, userID int64, role models.WorkflowRole) (found bool, err error)
	Exist(ctx context.Context, tenantID, userID int64, role models.WorkflowRole) (bool, error)
	List(ctx context.Context, tenantID int64) (list []dbmodels.RoleAssignment, err error)
	CountLive(ctx context.Context, tenantID, userID int64, role models.WorkflowRole) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Upsert(ctx context.Context, rec dbmodels.RoleAssignment) (id int64, err error) {
	now := time.Now()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	err = i.db.WithContext(ctx).
		Omit("User").
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "tenant_id"}, {Name: "user_id"}, {Name: "workflow_role"}},
			TargetWhere: clause.Where{Exprs: []clause.Expression{
				clause.Expr{SQL: "deleted_at IS NULL"},
			}},
			DoUpdates: clause.AssignmentColumns([]string{"assigned_by", "updated_at"}),
		}).
		Create(&rec).
		Error
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

func (i impl) Revoke(ctx context.Context, tenantID, userID int64, role models.WorkflowRole) (bool, error) {
	tx := i.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Where("user_id = ?", userID).
		Where("workflow_role = ?", role).
		Delete(&dbmodels.RoleAssignment{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (i impl) Exist(ctx context.Context, tenantID, userID int64, role models.WorkflowRole) (bool, error) {
	count, err := i.CountLive(ctx, tenantID, userID, role)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (i impl) List(ctx context.Context, tenantID int64) (list []dbmodels.RoleAssignment, err error) {
	list = []dbmodels.RoleAssignment{}
	err = i.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("user_id ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) CountLive(ctx context.Context, tenantID, userID int64, role models.WorkflowRole) (int64, error) {
	var count int64
	err := i.db.WithContext(ctx).
		Model(&dbmodels.RoleAssignment{}).
		Where("tenant_id = ?", tenantID).
		Where("user_id = ?", userID).
		Where("workflow_role = ?", role).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
