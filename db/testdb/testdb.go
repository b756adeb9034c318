// Package testdb opens a throwaway sqlite database with the full schema for package tests.
package testdb

import (
	"context"
	"docflow-backend/db"
	"docflow-backend/models"
	dbmodels "docflow-backend/models/db"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Open(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "docflow.db") + "?_busy_timeout=5000"
	DB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := DB.DB()
	require.NoError(t, err)
	// a single connection serializes writers the way row locks do on postgres
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrateDB(DB))
	return DB
}

func CreateTenant(t *testing.T, DB *gorm.DB, name string) int64 {
	t.Helper()
	rec := dbmodels.Tenant{Name: name, IsActive: true}
	require.NoError(t, DB.Create(&rec).Error)
	return rec.ID
}

func CreateUser(t *testing.T, DB *gorm.DB, firstName, lastName string, role models.UserRole) int64 {
	t.Helper()
	rec := dbmodels.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     firstName + "@docflow.test",
		Role:      role,
	}
	require.NoError(t, DB.Create(&rec).Error)
	return rec.ID
}

func AddMember(t *testing.T, DB *gorm.DB, tenantID, userID int64, role models.UserRole) {
	t.Helper()
	rec := dbmodels.TenantMember{
		TenantID: tenantID,
		UserID:   userID,
		Role:     role,
	}
	require.NoError(t, DB.Omit("User").Create(&rec).Error)
}

// CreateMember creates a user and adds it to the tenant.
func CreateMember(t *testing.T, DB *gorm.DB, tenantID int64, firstName string, role models.UserRole) int64 {
	t.Helper()
	userID := CreateUser(t, DB, firstName, "Test", "")
	AddMember(t, DB, tenantID, userID, role)
	return userID
}

func CreateDocument(t *testing.T, DB *gorm.DB, tenantID, creatorID int64, title string) int64 {
	t.Helper()
	rec := dbmodels.Document{
		BaseTenantModel: dbmodels.BaseTenantModel{TenantID: tenantID},
		CreatorID:       creatorID,
		Title:           title,
	}
	require.NoError(t, DB.WithContext(context.Background()).Omit("Creator").Create(&rec).Error)
	return rec.ID
}

func AssignRole(t *testing.T, DB *gorm.DB, tenantID, userID int64, role models.WorkflowRole) {
	t.Helper()
	rec := dbmodels.RoleAssignment{
		TenantID:     tenantID,
		UserID:       userID,
		WorkflowRole: role,
	}
	require.NoError(t, DB.Omit("User").Create(&rec).Error)
}
