package db

import (
	dbmodels "docflow-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AutoMigrateDB creates every table the workflow engine relies on,
// so the engine never has to check for table existence at runtime.
func AutoMigrateDB(db *gorm.DB) error {
	log.Info("running migrations")
	if err := db.AutoMigrate(&dbmodels.Tenant{}); err != nil {
		return errors.Wrap(err, "failed to migrate Tenant")
	}
	if err := db.AutoMigrate(&dbmodels.User{}); err != nil {
		return errors.Wrap(err, "failed to migrate User")
	}
	if err := db.AutoMigrate(&dbmodels.TenantMember{}); err != nil {
		return errors.Wrap(err, "failed to migrate TenantMember")
	}
	if err := db.AutoMigrate(&dbmodels.Document{}); err != nil {
		return errors.Wrap(err, "failed to migrate Document")
	}
	if err := db.AutoMigrate(&dbmodels.WorkflowState{}); err != nil {
		return errors.Wrap(err, "failed to migrate WorkflowState")
	}
	if err := db.AutoMigrate(&dbmodels.WorkflowHistory{}); err != nil {
		return errors.Wrap(err, "failed to migrate WorkflowHistory")
	}
	if err := db.AutoMigrate(&dbmodels.RoleAssignment{}); err != nil {
		return errors.Wrap(err, "failed to migrate RoleAssignment")
	}
	log.Info("migrations finished")
	return nil
}
