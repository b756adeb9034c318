package tenantmembersstore

import (
	"context"
	"docflow-backend/models"
	dbmodels "docflow-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Provider is the thin membership store backing the tenant membership collaborator.
type Provider interface {
	CreateTenant(ctx context.Context, rec dbmodels.Tenant) (id int64, err error)
	CreateUser(ctx context.Context, rec dbmodels.User) (id int64, err error)
	AddMember(ctx context.Context, tenantID, userID int64, role models.UserRole) error
	GetTenant(ctx context.Context, tenantID int64) (rec *dbmodels.Tenant, err error)
	GetUser(ctx context.Context, userID int64) (rec *dbmodels.User, err error)
	GetMember(ctx context.Context, tenantID, userID int64) (rec *dbmodels.TenantMember, err error)
	IsMember(ctx context.Context, tenantID, userID int64) (bool, error)
	ListMembers(ctx context.Context, tenantID int64) (list []dbmodels.TenantMember, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) CreateTenant(ctx context.Context, rec dbmodels.Tenant) (id int64, err error) {
	err = i.db.WithContext(ctx).Create(&rec).Error
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

func (i impl) CreateUser(ctx context.Context, rec dbmodels.User) (id int64, err error) {
	err = i.db.WithContext(ctx).Create(&rec).Error
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

func (i impl) AddMember(ctx context.Context, tenantID, userID int64, role models.UserRole) error {
	rec := dbmodels.TenantMember{
		TenantID: tenantID,
		UserID:   userID,
		Role:     role,
	}
	return i.db.WithContext(ctx).
		Omit("User").
		Create(&rec).
		Error
}

func (i impl) GetTenant(ctx context.Context, tenantID int64) (*dbmodels.Tenant, error) {
	rec := dbmodels.Tenant{}
	err := i.db.WithContext(ctx).
		Where("id = ?", tenantID).
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

func (i impl) GetUser(ctx context.Context, userID int64) (*dbmodels.User, error) {
	rec := dbmodels.User{}
	err := i.db.WithContext(ctx).
		Where("id = ?", userID).
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

func (i impl) GetMember(ctx context.Context, tenantID, userID int64) (*dbmodels.TenantMember, error) {
	rec := dbmodels.TenantMember{}
	err := i.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Where("user_id = ?", userID).
		Preload("User").
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

// IsMember - super admins are members of every tenant; the tenant itself is not checked here.
func (i impl) IsMember(ctx context.Context, tenantID, userID int64) (bool, error) {
	member, err := i.GetMember(ctx, tenantID, userID)
	if err != nil {
		return false, err
	}
	if member != nil {
		return true, nil
	}
	user, err := i.GetUser(ctx, userID)
	if err != nil {
		return false, err
	}
	return user != nil && user.IsSuperAdmin(), nil
}

// ListMembers returns explicit members plus every super admin that is not an explicit member.
func (i impl) ListMembers(ctx context.Context, tenantID int64) (list []dbmodels.TenantMember, err error) {
	list = []dbmodels.TenantMember{}
	err = i.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Preload("User").
		Order("user_id ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	admins := []dbmodels.User{}
	err = i.db.WithContext(ctx).
		Where("role = ?", models.UserRoleSuperAdmin).
		Order("id ASC").
		Find(&admins).
		Error
	if err != nil {
		return nil, err
	}
	for idx := range admins {
		admin := admins[idx]
		if containsUser(list, admin.ID) {
			continue
		}
		list = append(list, dbmodels.TenantMember{
			TenantID: tenantID,
			UserID:   admin.ID,
			User:     &admin,
			Role:     models.UserRoleSuperAdmin,
		})
	}
	return list, nil
}

func containsUser(list []dbmodels.TenantMember, userID int64) bool {
	for _, rec := range list {
		if rec.UserID == userID {
			return true
		}
	}
	return false
}
