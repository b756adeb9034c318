package dbmodels

import (
	"time"

	"github.com/pkg/errors"
)

type BaseModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BaseTenantModel struct {
	BaseModel
	TenantID int64 `gorm:"index;not null" json:"tenant_id"`
}

func (b BaseTenantModel) Validate() error {
	if b.TenantID == 0 {
		return errors.New("tenant is not specified")
	}
	return nil
}
