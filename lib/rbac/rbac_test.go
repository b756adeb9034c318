package rbac

import (
	"docflow-backend/models"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRbac(t *testing.T) {
	t.Run(`pathToRegex check`, func(t *testing.T) {
		path, method, err := parseSwaggerPattern("/api/v1/space/workflow/{id}/submit [put]")
		require.Nil(t, err)
		require.Equal(t, PUT, method)
		r1 := pathToRegex(path)

		require.True(t, r1.MatchString("/api/v1/space/workflow/123/submit"))
		require.False(t, r1.MatchString("/api/v1/space/workflow/submit"))
		require.False(t, r1.MatchString("/api/v1/space/workflow/123/submit/extra"))

		_, _, err = parseSwaggerPattern("/api/v1/space/workflow/{id}")
		require.Error(t, err)
	})

	t.Run(`workflow rules`, func(t *testing.T) {
		NewHandler()
		handler, found := Instance.GetRuleFunc("PUT", "/api/v1/space/workflow/42/assignees/")
		require.True(t, found)
		require.True(t, handler(1, 1, models.TenantManagerRole, ""))
		require.True(t, handler(1, 1, models.UserRoleSuperAdmin, ""))
		require.False(t, handler(1, 1, models.TenantUserRole, ""))

		handler, found = Instance.GetRuleFunc("get", "/api/v1/space/workflow/dashboard")
		require.True(t, found)
		require.True(t, handler(1, 1, models.TenantUserRole, ""))

		handler, found = Instance.GetRuleFunc("DELETE", "/api/v1/space/workflow_roles")
		require.True(t, found)
		require.False(t, handler(1, 1, models.TenantUserRole, ""))

		_, found = Instance.GetRuleFunc("POST", "/api/v1/space/workflow/42/submit")
		require.False(t, found)
	})

	t.Run(`permissions by role`, func(t *testing.T) {
		NewHandler()
		userPermissions := Instance.GetPermissions(models.TenantUserRole)
		require.ElementsMatch(t, []models.Permission{models.ViewPermission, models.FlowPermission}, userPermissions[models.WorkflowModule])
		require.Equal(t, []models.Permission{models.ViewPermission}, userPermissions[models.WorkflowRolesModule])

		adminPermissions := Instance.GetPermissions(models.TenantAdminRole)
		require.ElementsMatch(t, []models.Permission{models.ViewPermission, models.FlowPermission, models.ManagePermission}, adminPermissions[models.WorkflowModule])
	})
}
