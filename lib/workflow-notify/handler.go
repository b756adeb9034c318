package workflownotify

import (
	"context"
	"docflow-backend/db"
	"docflow-backend/lib/smtp"
	tenantmembersstore "docflow-backend/lib/tenant/members-store"
	"docflow-backend/models"
	"fmt"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Event describes a committed transition.
type Event struct {
	TenantID    int64
	DocumentID  int64
	Title       string
	CreatorID   int64
	ActorID     int64
	Action      models.WorkflowAction
	FromState   models.WorkflowState
	ToState     models.WorkflowState
	ValidatorID int64
	ApproverID  int64
	Comment     string
}

// Recipient returns who has to act next (or learn the outcome); 0 - nobody.
func (e Event) Recipient() int64 {
	switch e.ToState {
	case models.WorkflowStatePendingValidation:
		return e.ValidatorID
	case models.WorkflowStatePendingApproval:
		return e.ApproverID
	case models.WorkflowStateApproved, models.WorkflowStateRejected:
		return e.CreatorID
	case models.WorkflowStateDraft:
		// recall: the assignee of the abandoned stage
		if e.FromState == models.WorkflowStatePendingApproval {
			return e.ApproverID
		}
		return e.ValidatorID
	}
	return 0
}

type Provider interface {
	// TransitionDone never blocks the caller and never fails the transition.
	TransitionDone(event Event)
	SendReminder(ctx context.Context, userID int64, subject, message string) error
}

var Instance Provider = noop{}

func NewHandler(enabled bool) {
	if !enabled || smtp.Instance == nil || !smtp.Instance.IsConfigured() {
		log.Info("workflow notifications are disabled")
		Instance = noop{}
		return
	}
	Instance = NewInstance(db.DB, smtp.Instance)
}

func NewInstance(DB *gorm.DB, mailer smtp.Provider) Provider {
	return impl{
		membersStore: tenantmembersstore.NewInstance(DB),
		mailer:       mailer,
	}
}

type impl struct {
	membersStore tenantmembersstore.Provider
	mailer       smtp.Provider
}

func (i impl) TransitionDone(event Event) {
	recipientID := event.Recipient()
	if recipientID == 0 || recipientID == event.ActorID {
		return
	}
	go func() {
		logger := log.
			WithField("tenant_id", event.TenantID).
			WithField("document_id", event.DocumentID).
			WithField("action", event.Action)
		defer func() {
			if r := recover(); r != nil {
				logger.
					WithField("panic_stack", string(debug.Stack())).
					Errorf("panic: (%v)", r)
			}
		}()
		subject := fmt.Sprintf("%q is %s", event.Title, event.ToState.ToHuman())
		message := fmt.Sprintf("Document %q (#%d): %s -> %s.", event.Title, event.DocumentID, event.FromState.ToHuman(), event.ToState.ToHuman())
		if event.Comment != "" {
			message += fmt.Sprintf("\r\nComment: %s", event.Comment)
		}
		err := i.SendReminder(context.Background(), recipientID, subject, message)
		if err != nil {
			logger.WithError(err).Warn("failed to send workflow notification")
		}
	}()
}

func (i impl) SendReminder(ctx context.Context, userID int64, subject, message string) error {
	user, err := i.membersStore.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil || user.Email == "" {
		log.WithField("user_id", userID).Warn("notification recipient has no email")
		return nil
	}
	return i.mailer.SendEMail(user.Email, subject, message)
}

type noop struct{}

func (noop) TransitionDone(event Event) {}

func (noop) SendReminder(ctx context.Context, userID int64, subject, message string) error {
	return nil
}
