package dbmodels

import (
	"docflow-backend/models"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type Tenant struct {
	BaseModel
	Name     string `gorm:"type:varchar(255)"`
	IsActive bool
}

type User struct {
	BaseModel
	FirstName string          `gorm:"type:varchar(150)"`
	LastName  string          `gorm:"type:varchar(150)"`
	Email     string          `gorm:"type:varchar(255)"`
	Role      models.UserRole `gorm:"type:varchar(50)"` // only UserRoleSuperAdmin is meaningful here
	DeletedAt gorm.DeletedAt  `gorm:"index"`
}

func (r User) GetFullName() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", r.FirstName, r.LastName))
}

func (r User) IsSuperAdmin() bool {
	return r.Role.IsSuperAdmin()
}

type TenantMember struct {
	BaseModel
	TenantID  int64           `gorm:"uniqueIndex:idx_tenant_member,where:deleted_at IS NULL;not null"`
	UserID    int64           `gorm:"uniqueIndex:idx_tenant_member,where:deleted_at IS NULL;not null"`
	User      *User           `gorm:"foreignKey:UserID"`
	Role      models.UserRole `gorm:"type:varchar(50)"`
	DeletedAt gorm.DeletedAt  `gorm:"index"`
}
