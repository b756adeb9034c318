package workflowroleshandler

import (
	"context"
	"docflow-backend/db/testdb"
	workflowerrors "docflow-backend/lib/workflow-errors"
	"docflow-backend/models"
	dbmodels "docflow-backend/models/db"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRoleRegistry(t *testing.T) {
	ctx := context.Background()

	t.Run(`assign twice keeps one live row`, func(t *testing.T) {
		DB := testdb.Open(t)
		tenantID := testdb.CreateTenant(t, DB, "acme")
		manager := testdb.CreateMember(t, DB, tenantID, "manager", models.TenantManagerRole)
		user := testdb.CreateMember(t, DB, tenantID, "user", models.TenantUserRole)
		handler := NewInstance(DB)

		require.NoError(t, handler.AssignRole(ctx, tenantID, user, models.WorkflowRoleValidator, manager))
		first := dbmodels.RoleAssignment{}
		require.NoError(t, DB.Where("user_id = ?", user).First(&first).Error)

		time.Sleep(10 * time.Millisecond)
		require.NoError(t, handler.AssignRole(ctx, tenantID, user, models.WorkflowRoleValidator, manager))
		list := []dbmodels.RoleAssignment{}
		require.NoError(t, DB.Where("user_id = ?", user).Find(&list).Error)
		require.Len(t, list, 1)
		require.True(t, list[0].UpdatedAt.After(first.UpdatedAt))

		ok, err := handler.HasRole(ctx, tenantID, user, models.WorkflowRoleValidator)
		require.NoError(t, err)
		require.True(t, ok)
		ok, err = handler.HasRole(ctx, tenantID, user, models.WorkflowRoleApprover)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run(`assign checks role and membership`, func(t *testing.T) {
		DB := testdb.Open(t)
		tenantID := testdb.CreateTenant(t, DB, "acme")
		otherTenantID := testdb.CreateTenant(t, DB, "other")
		stranger := testdb.CreateMember(t, DB, otherTenantID, "stranger", models.TenantUserRole)
		user := testdb.CreateMember(t, DB, tenantID, "user", models.TenantUserRole)
		handler := NewInstance(DB)

		err := handler.AssignRole(ctx, tenantID, user, models.WorkflowRole("reviewer"), user)
		kind, _ := workflowerrors.KindOf(err)
		require.Equal(t, workflowerrors.KindValidationFailed, kind)

		err = handler.AssignRole(ctx, tenantID, stranger, models.WorkflowRoleApprover, user)
		kind, _ = workflowerrors.KindOf(err)
		require.Equal(t, workflowerrors.KindNotFound, kind)
	})

	t.Run(`unknown tenant is not found even for super admins`, func(t *testing.T) {
		DB := testdb.Open(t)
		tenantID := testdb.CreateTenant(t, DB, "acme")
		admin := testdb.CreateUser(t, DB, "root", "Admin", models.UserRoleSuperAdmin)
		handler := NewInstance(DB)
		missingTenantID := tenantID + 1000

		err := handler.AssignRole(ctx, missingTenantID, admin, models.WorkflowRoleValidator, admin)
		kind, ok := workflowerrors.KindOf(err)
		require.True(t, ok)
		require.Equal(t, workflowerrors.KindNotFound, kind)
		var count int64
		require.NoError(t, DB.Model(&dbmodels.RoleAssignment{}).Count(&count).Error)
		require.Zero(t, count)

		_, err = handler.ListTenantUsersWithRoles(ctx, missingTenantID)
		kind, ok = workflowerrors.KindOf(err)
		require.True(t, ok)
		require.Equal(t, workflowerrors.KindNotFound, kind)

		require.NoError(t, handler.AssignRole(ctx, tenantID, admin, models.WorkflowRoleValidator, admin))
	})

	t.Run(`revoke and reassign`, func(t *testing.T) {
		DB := testdb.Open(t)
		tenantID := testdb.CreateTenant(t, DB, "acme")
		user := testdb.CreateMember(t, DB, tenantID, "user", models.TenantUserRole)
		handler := NewInstance(DB)

		err := handler.RevokeRole(ctx, tenantID, user, models.WorkflowRoleApprover)
		kind, _ := workflowerrors.KindOf(err)
		require.Equal(t, workflowerrors.KindNotFound, kind)

		require.NoError(t, handler.AssignRole(ctx, tenantID, user, models.WorkflowRoleApprover, user))
		require.NoError(t, handler.RevokeRole(ctx, tenantID, user, models.WorkflowRoleApprover))
		ok, err := handler.HasRole(ctx, tenantID, user, models.WorkflowRoleApprover)
		require.NoError(t, err)
		require.False(t, ok)

		require.NoError(t, handler.AssignRole(ctx, tenantID, user, models.WorkflowRoleApprover, user))
		ok, err = handler.HasRole(ctx, tenantID, user, models.WorkflowRoleApprover)
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run(`roster includes users without roles and super admins`, func(t *testing.T) {
		DB := testdb.Open(t)
		tenantID := testdb.CreateTenant(t, DB, "acme")
		u1 := testdb.CreateMember(t, DB, tenantID, "u1", models.TenantUserRole)
		u2 := testdb.CreateMember(t, DB, tenantID, "u2", models.TenantUserRole)
		u3 := testdb.CreateMember(t, DB, tenantID, "u3", models.TenantUserRole)
		admin := testdb.CreateUser(t, DB, "root", "Admin", models.UserRoleSuperAdmin)
		handler := NewInstance(DB)

		require.NoError(t, handler.AssignRole(ctx, tenantID, u1, models.WorkflowRoleValidator, admin))
		require.NoError(t, handler.AssignRole(ctx, tenantID, u2, models.WorkflowRoleApprover, admin))
		// super admins count as members
		require.NoError(t, handler.AssignRole(ctx, tenantID, admin, models.WorkflowRoleApprover, admin))

		roster, err := handler.ListTenantUsersWithRoles(ctx, tenantID)
		require.NoError(t, err)
		require.Len(t, roster, 4)
		require.Equal(t, u1, roster[0].UserID)
		require.True(t, roster[0].IsValidator)
		require.False(t, roster[0].IsApprover)
		require.Equal(t, u2, roster[1].UserID)
		require.False(t, roster[1].IsValidator)
		require.True(t, roster[1].IsApprover)
		require.Equal(t, u3, roster[2].UserID)
		require.False(t, roster[2].IsValidator)
		require.False(t, roster[2].IsApprover)
		require.Equal(t, admin, roster[3].UserID)
		require.True(t, roster[3].IsApprover)
		require.Equal(t, "root Admin", roster[3].FullName)
	})

	t.Run(`assigned users come from the document`, func(t *testing.T) {
		DB := testdb.Open(t)
		tenantID := testdb.CreateTenant(t, DB, "acme")
		creator := testdb.CreateMember(t, DB, tenantID, "creator", models.TenantUserRole)
		validator := testdb.CreateMember(t, DB, tenantID, "validator", models.TenantUserRole)
		docID := testdb.CreateDocument(t, DB, tenantID, creator, "doc")
		handler := NewInstance(DB)

		assigned, err := handler.GetAssignedValidator(ctx, tenantID, docID)
		require.NoError(t, err)
		require.Nil(t, assigned)

		rec := dbmodels.WorkflowState{
			BaseTenantModel:     dbmodels.BaseTenantModel{TenantID: tenantID},
			DocumentID:          docID,
			CurrentState:        models.WorkflowStatePendingValidation,
			AssignedValidatorID: &validator,
		}
		require.NoError(t, DB.Omit("Document").Create(&rec).Error)
		assigned, err = handler.GetAssignedValidator(ctx, tenantID, docID)
		require.NoError(t, err)
		require.Equal(t, validator, *assigned)
		assigned, err = handler.GetAssignedApprover(ctx, tenantID, docID)
		require.NoError(t, err)
		require.Nil(t, assigned)

		_, err = handler.GetAssignedValidator(ctx, tenantID, docID+1)
		kind, _ := workflowerrors.KindOf(err)
		require.Equal(t, workflowerrors.KindNotFound, kind)
	})
}
