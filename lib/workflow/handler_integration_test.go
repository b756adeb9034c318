//go:build integration

package workflowhandler

import (
	"context"
	"docflow-backend/db"
	"docflow-backend/db/testdb"
	workflowerrors "docflow-backend/lib/workflow-errors"
	workflownotify "docflow-backend/lib/workflow-notify"
	workflowroleshandler "docflow-backend/lib/workflow-roles"
	workflowhistorystore "docflow-backend/lib/workflow/history-store"
	"docflow-backend/models"
	workflowapimodels "docflow-backend/models/api/workflow"
	dbmodels "docflow-backend/models/db"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openPostgres(t *testing.T) *gorm.DB {
	ctx := context.Background()
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("docflow"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	})
	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	DB, err := gorm.Open(gormpostgres.Open(connStr), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrateDB(DB))
	return DB
}

func TestPostgresTransitions(t *testing.T) {
	ctx := context.Background()
	DB := openPostgres(t)
	tenantID := testdb.CreateTenant(t, DB, "acme")
	creator := testdb.CreateMember(t, DB, tenantID, "creator", models.TenantUserRole)
	validator := testdb.CreateMember(t, DB, tenantID, "validator", models.TenantUserRole)
	approver := testdb.CreateMember(t, DB, tenantID, "approver", models.TenantUserRole)
	rolesHandler := workflowroleshandler.NewInstance(DB)
	require.NoError(t, rolesHandler.AssignRole(ctx, tenantID, validator, models.WorkflowRoleValidator, creator))
	require.NoError(t, rolesHandler.AssignRole(ctx, tenantID, approver, models.WorkflowRoleApprover, creator))
	// the partial unique index turns the second assign into an update
	require.NoError(t, rolesHandler.AssignRole(ctx, tenantID, approver, models.WorkflowRoleApprover, creator))
	handler := NewInstance(DB, rolesHandler, workflownotify.Instance)

	creatorActor := models.Actor{TenantID: tenantID, UserID: creator, Role: models.TenantUserRole}
	validatorActor := models.Actor{TenantID: tenantID, UserID: validator, Role: models.TenantUserRole}
	approverActor := models.Actor{TenantID: tenantID, UserID: approver, Role: models.TenantUserRole}

	t.Run(`scenario`, func(t *testing.T) {
		docID := testdb.CreateDocument(t, DB, tenantID, creator, "scenario")
		_, err := handler.Submit(ctx, creatorActor, docID, workflowapimodels.SubmitData{ValidatorID: &validator, ApproverID: &approver})
		require.NoError(t, err)
		_, err = handler.Validate(ctx, validatorActor, docID, "ok")
		require.NoError(t, err)
		view, err := handler.Approve(ctx, approverActor, docID, "")
		require.NoError(t, err)
		require.Equal(t, models.WorkflowStateApproved, view.State)
		_, err = handler.Reject(ctx, approverActor, docID, "late")
		kind, _ := workflowerrors.KindOf(err)
		require.Equal(t, workflowerrors.KindInvalidState, kind)

		history, err := workflowhistorystore.NewInstance(DB).List(ctx, tenantID, docID, 0)
		require.NoError(t, err)
		require.Len(t, history, 4)
	})

	t.Run(`racing validators`, func(t *testing.T) {
		docID := testdb.CreateDocument(t, DB, tenantID, creator, "race")
		_, err := handler.Submit(ctx, creatorActor, docID, workflowapimodels.SubmitData{ValidatorID: &validator, ApproverID: &approver})
		require.NoError(t, err)

		const workers = 8
		start := make(chan struct{})
		results := make(chan error, workers)
		wg := sync.WaitGroup{}
		for n := 0; n < workers; n++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				_, err := handler.Validate(ctx, validatorActor, docID, "")
				results <- err
			}()
		}
		close(start)
		wg.Wait()
		close(results)

		successes := 0
		for err := range results {
			if err == nil {
				successes++
				continue
			}
			kind, ok := workflowerrors.KindOf(err)
			require.True(t, ok, "unexpected error %v", err)
			// late readers see pending_approval already
			require.Contains(t, []workflowerrors.Kind{workflowerrors.KindConflict, workflowerrors.KindInvalidState}, kind)
		}
		require.Equal(t, 1, successes)
		history, err := workflowhistorystore.NewInstance(DB).List(ctx, tenantID, docID, 0)
		require.NoError(t, err)
		require.Len(t, history, 3)
	})

	t.Run(`parallel role assignment keeps one live row`, func(t *testing.T) {
		user := testdb.CreateMember(t, DB, tenantID, "parallel", models.TenantUserRole)

		const workers = 8
		start := make(chan struct{})
		results := make(chan error, workers)
		wg := sync.WaitGroup{}
		for n := 0; n < workers; n++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				results <- rolesHandler.AssignRole(ctx, tenantID, user, models.WorkflowRoleValidator, creator)
			}()
		}
		close(start)
		wg.Wait()
		close(results)
		for err := range results {
			require.NoError(t, err)
		}

		var count int64
		require.NoError(t, DB.Model(&dbmodels.RoleAssignment{}).
			Where("tenant_id = ?", tenantID).
			Where("user_id = ?", user).
			Where("workflow_role = ?", models.WorkflowRoleValidator).
			Count(&count).Error)
		require.Equal(t, int64(1), count)
	})
}
