package workflowreminder

import (
	"context"
	"docflow-backend/db/testdb"
	workflownotify "docflow-backend/lib/workflow-notify"
	"docflow-backend/models"
	dbmodels "docflow-backend/models/db"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type reminder struct {
	userID  int64
	subject string
}

type fakeNotifier struct {
	sent []reminder
	err  error
}

func (f *fakeNotifier) TransitionDone(event workflownotify.Event) {}

func (f *fakeNotifier) SendReminder(ctx context.Context, userID int64, subject, message string) error {
	f.sent = append(f.sent, reminder{userID: userID, subject: subject})
	return f.err
}

func TestReminderWorker(t *testing.T) {
	DB := testdb.Open(t)
	tenantID := testdb.CreateTenant(t, DB, "acme")
	creator := testdb.CreateMember(t, DB, tenantID, "creator", models.TenantUserRole)
	validator := testdb.CreateMember(t, DB, tenantID, "validator", models.TenantUserRole)
	approver := testdb.CreateMember(t, DB, tenantID, "approver", models.TenantUserRole)

	addState := func(title string, state models.WorkflowState, updatedAt time.Time) {
		docID := testdb.CreateDocument(t, DB, tenantID, creator, title)
		rec := dbmodels.WorkflowState{
			BaseTenantModel:     dbmodels.BaseTenantModel{TenantID: tenantID},
			DocumentID:          docID,
			CurrentState:        state,
			AssignedValidatorID: &validator,
			AssignedApproverID:  &approver,
		}
		require.NoError(t, DB.Omit("Document").Create(&rec).Error)
		require.NoError(t, DB.Model(&rec).UpdateColumn("updated_at", updatedAt).Error)
	}
	old := time.Now().Add(-72 * time.Hour)
	addState("stale validation", models.WorkflowStatePendingValidation, old)
	addState("stale approval", models.WorkflowStatePendingApproval, old.Add(time.Minute))
	addState("fresh validation", models.WorkflowStatePendingValidation, time.Now())
	addState("stale approved", models.WorkflowStateApproved, old)

	t.Run(`stops on cancelled context`, func(t *testing.T) {
		notifier := &fakeNotifier{}
		worker := NewInstance(DB, notifier, time.Hour, 48*time.Hour)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		worker.handle(ctx)
		require.Empty(t, notifier.sent)
	})

	t.Run(`reminds the assignee of the pending stage`, func(t *testing.T) {
		notifier := &fakeNotifier{}
		worker := NewInstance(DB, notifier, time.Hour, 48*time.Hour)
		worker.handle(context.Background())
		require.Len(t, notifier.sent, 2)
		require.Equal(t, validator, notifier.sent[0].userID)
		require.Contains(t, notifier.sent[0].subject, "stale validation")
		require.Equal(t, approver, notifier.sent[1].userID)

		rec := dbmodels.WorkflowState{}
		require.NoError(t, DB.Where("current_state = ?", models.WorkflowStatePendingValidation).Order("updated_at ASC").First(&rec).Error)
		require.NotNil(t, rec.RemindedAt)
		require.WithinDuration(t, old, rec.UpdatedAt, time.Second)
	})

	t.Run(`reminds once per window`, func(t *testing.T) {
		notifier := &fakeNotifier{}
		worker := NewInstance(DB, notifier, time.Hour, 48*time.Hour)
		worker.handle(context.Background())
		worker.handle(context.Background())
		require.Empty(t, notifier.sent)

		// a reminder older than the window is due again
		require.NoError(t, DB.Model(&dbmodels.WorkflowState{}).
			Where("current_state = ?", models.WorkflowStatePendingApproval).
			UpdateColumn("reminded_at", time.Now().Add(-49*time.Hour)).Error)
		worker.handle(context.Background())
		require.Len(t, notifier.sent, 1)
		require.Equal(t, approver, notifier.sent[0].userID)
	})

	t.Run(`failed send is retried on the next run`, func(t *testing.T) {
		docID := testdb.CreateDocument(t, DB, tenantID, creator, "flaky")
		rec := dbmodels.WorkflowState{
			BaseTenantModel:     dbmodels.BaseTenantModel{TenantID: tenantID},
			DocumentID:          docID,
			CurrentState:        models.WorkflowStatePendingValidation,
			AssignedValidatorID: &validator,
			AssignedApproverID:  &approver,
		}
		require.NoError(t, DB.Omit("Document").Create(&rec).Error)
		require.NoError(t, DB.Model(&rec).UpdateColumn("updated_at", old).Error)

		failing := &fakeNotifier{err: errors.New("smtp is down")}
		NewInstance(DB, failing, time.Hour, 48*time.Hour).handle(context.Background())
		require.Len(t, failing.sent, 1)

		notifier := &fakeNotifier{}
		NewInstance(DB, notifier, time.Hour, 48*time.Hour).handle(context.Background())
		require.Len(t, notifier.sent, 1)
		require.Contains(t, notifier.sent[0].subject, "flaky")
	})
}
