package workflowreminder

import (
	"context"
	"docflow-backend/config"
	"docflow-backend/db"
	baseworker "docflow-backend/lib/utils/base-worker"
	"docflow-backend/lib/utils/helpers"
	workflownotify "docflow-backend/lib/workflow-notify"
	workflowstatestore "docflow-backend/lib/workflow/state-store"
	"docflow-backend/models"
	dbmodels "docflow-backend/models/db"
	"fmt"
	"time"

	"gorm.io/gorm"
)

func StartWorker(ctx context.Context) {
	if !*config.Conf.Workflow.ReminderEnabled {
		return
	}
	i := NewInstance(db.DB, workflownotify.Instance,
		time.Duration(config.Conf.Workflow.ReminderIntervalMinutes)*time.Minute,
		time.Duration(config.Conf.Workflow.ReminderAfterHours)*time.Hour)
	go i.Run(ctx, i.handle)
}

func NewInstance(DB *gorm.DB, notifier workflownotify.Provider, runInterval, remindAfter time.Duration) *impl {
	return &impl{
		BaseImpl:    *baseworker.NewInstance("WorkflowReminderWorker", 30*time.Second, runInterval),
		stateStore:  workflowstatestore.NewInstance(DB),
		notifier:    notifier,
		remindAfter: remindAfter,
	}
}

type impl struct {
	baseworker.BaseImpl
	stateStore  workflowstatestore.Provider
	notifier    workflownotify.Provider
	remindAfter time.Duration
}

var pendingStates = []models.WorkflowState{
	models.WorkflowStatePendingValidation,
	models.WorkflowStatePendingApproval,
}

// handle reminds each stale assignee at most once per remindAfter window.
func (i impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	now := time.Now()
	list, err := i.stateStore.ListStale(ctx, now.Add(-i.remindAfter), pendingStates)
	if err != nil {
		logger.WithError(err).Error("failed to get stale pending documents")
		return
	}
	for _, rec := range list {
		if helpers.IsContextDone(ctx) {
			break
		}
		recipientID := stageAssignee(rec)
		if recipientID == 0 {
			continue
		}
		title := ""
		if rec.Document != nil {
			title = rec.Document.Title
		}
		subject := fmt.Sprintf("%q is waiting for you", title)
		message := fmt.Sprintf("Document %q (#%d) is %s since %s.", title, rec.DocumentID,
			rec.CurrentState.ToHuman(), rec.UpdatedAt.Format("02.01.2006 15:04"))
		recLogger := logger.
			WithField("tenant_id", rec.TenantID).
			WithField("document_id", rec.DocumentID)
		err = i.notifier.SendReminder(ctx, recipientID, subject, message)
		if err != nil {
			recLogger.WithError(err).Warn("failed to send workflow reminder")
			continue
		}
		_, err = i.stateStore.MarkReminded(ctx, rec.TenantID, rec.DocumentID, rec.CurrentState, now)
		if err != nil {
			recLogger.WithError(err).Error("failed to save reminder time")
		}
	}
}

func stageAssignee(rec dbmodels.WorkflowState) int64 {
	switch rec.CurrentState {
	case models.WorkflowStatePendingValidation:
		return rec.ValidatorID()
	case models.WorkflowStatePendingApproval:
		return rec.ApproverID()
	}
	return 0
}
