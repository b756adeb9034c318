package dbmodels

import (
	"gorm.io/gorm"
)

// Document is owned by the documents module; the workflow engine only reads it.
type Document struct {
	BaseTenantModel
	CreatorID int64          `gorm:"index;not null"`
	Creator   *User          `gorm:"foreignKey:CreatorID"`
	Title     string         `gorm:"type:varchar(255)"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (d *Document) AfterDelete(tx *gorm.DB) (err error) {
	if d.ID == 0 {
		return nil
	}
	return tx.Where("document_id = ?", d.ID).Delete(&WorkflowState{}).Error
}
