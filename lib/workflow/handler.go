package workflowhandler

import (
	"context"
	"docflow-backend/db"
	documentstore "docflow-backend/lib/documents/store"
	workflowerrors "docflow-backend/lib/workflow-errors"
	workflownotify "docflow-backend/lib/workflow-notify"
	workflowroleshandler "docflow-backend/lib/workflow-roles"
	workflowhistorystore "docflow-backend/lib/workflow/history-store"
	workflowstatestore "docflow-backend/lib/workflow/state-store"
	"docflow-backend/models"
	workflowapimodels "docflow-backend/models/api/workflow"
	dbmodels "docflow-backend/models/db"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Submit(ctx context.Context, actor models.Actor, documentID int64, data workflowapimodels.SubmitData) (workflowapimodels.StateView, error)
	Validate(ctx context.Context, actor models.Actor, documentID int64, comment string) (workflowapimodels.StateView, error)
	Approve(ctx context.Context, actor models.Actor, documentID int64, comment string) (workflowapimodels.StateView, error)
	Reject(ctx context.Context, actor models.Actor, documentID int64, comment string) (workflowapimodels.StateView, error)
	Recall(ctx context.Context, actor models.Actor, documentID int64, reason string) (workflowapimodels.StateView, error)
	Reassign(ctx context.Context, actor models.Actor, documentID int64, data workflowapimodels.AssigneesData) (workflowapimodels.StateView, error)
	Status(ctx context.Context, actor models.Actor, documentID int64) (workflowapimodels.StatusView, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB, workflowroleshandler.Instance, workflownotify.Instance)
}

func NewInstance(DB *gorm.DB, rolesHandler workflowroleshandler.Provider, notifier workflownotify.Provider) Provider {
	return impl{
		db:            DB,
		stateStore:    workflowstatestore.NewInstance(DB),
		documentStore: documentstore.NewInstance(DB),
		rolesHandler:  rolesHandler,
		notifier:      notifier,
	}
}

type impl struct {
	db            *gorm.DB
	stateStore    workflowstatestore.Provider
	documentStore documentstore.Provider
	rolesHandler  workflowroleshandler.Provider
	notifier      workflownotify.Provider
}

func (i impl) getLogger(actor models.Actor, documentID int64) *log.Entry {
	return log.
		WithField("tenant_id", actor.TenantID).
		WithField("user_id", actor.UserID).
		WithField("document_id", documentID)
}

func (i impl) Submit(ctx context.Context, actor models.Actor, documentID int64, data workflowapimodels.SubmitData) (workflowapimodels.StateView, error) {
	return i.transition(ctx, actor, documentID, models.WorkflowActionSubmit, "", &data)
}

func (i impl) Validate(ctx context.Context, actor models.Actor, documentID int64, comment string) (workflowapimodels.StateView, error) {
	return i.transition(ctx, actor, documentID, models.WorkflowActionValidate, comment, nil)
}

func (i impl) Approve(ctx context.Context, actor models.Actor, documentID int64, comment string) (workflowapimodels.StateView, error) {
	return i.transition(ctx, actor, documentID, models.WorkflowActionApprove, comment, nil)
}

func (i impl) Reject(ctx context.Context, actor models.Actor, documentID int64, comment string) (workflowapimodels.StateView, error) {
	return i.transition(ctx, actor, documentID, models.WorkflowActionReject, comment, nil)
}

func (i impl) Recall(ctx context.Context, actor models.Actor, documentID int64, reason string) (workflowapimodels.StateView, error) {
	return i.transition(ctx, actor, documentID, models.WorkflowActionRecall, reason, nil)
}

func (i impl) Reassign(ctx context.Context, actor models.Actor, documentID int64, data workflowapimodels.AssigneesData) (workflowapimodels.StateView, error) {
	logger := i.getLogger(actor, documentID).
		WithField("action", "reassign")
	if err := data.Validate(); err != nil {
		return workflowapimodels.StateView{}, workflowerrors.ValidationFailed(err.Error())
	}
	if !actor.Role.CanManageTenant() {
		return workflowapimodels.StateView{}, workflowerrors.Unauthorized("only tenant managers can reassign documents")
	}
	doc, state, err := i.load(ctx, actor.TenantID, documentID)
	if err != nil {
		return workflowapimodels.StateView{}, err
	}
	if state.CurrentState.IsTerminal() {
		return workflowapimodels.StateView{}, workflowerrors.InvalidState("document in state %v cannot be reassigned", state.CurrentState)
	}
	updMap := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if data.ValidatorID != nil {
		err = i.checkAssignee(ctx, actor.TenantID, *doc, *data.ValidatorID, models.WorkflowRoleValidator)
		if err != nil {
			return workflowapimodels.StateView{}, err
		}
		updMap["assigned_validator_id"] = *data.ValidatorID
	}
	if data.ApproverID != nil {
		err = i.checkAssignee(ctx, actor.TenantID, *doc, *data.ApproverID, models.WorkflowRoleApprover)
		if err != nil {
			return workflowapimodels.StateView{}, err
		}
		updMap["assigned_approver_id"] = *data.ApproverID
	}

	err = i.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stateStore := workflowstatestore.NewInstance(tx)
		if state.ID == 0 {
			err := stateStore.EnsureDraft(ctx, actor.TenantID, documentID)
			if err != nil {
				return errors.Wrap(err, "failed to create workflow state")
			}
		}
		// the state must not move under the reassignment
		ok, err := stateStore.CompareAndSwap(ctx, actor.TenantID, documentID, state.CurrentState, updMap)
		if err != nil {
			return errors.Wrap(err, "failed to update assignees")
		}
		if !ok {
			return workflowerrors.Conflict("document state changed concurrently, retry the request")
		}
		return nil
	})
	if err != nil {
		return workflowapimodels.StateView{}, i.logError(logger, err)
	}
	logger.Info("document assignees changed")
	return workflowapimodels.StateView{State: state.CurrentState}, nil
}

func (i impl) Status(ctx context.Context, actor models.Actor, documentID int64) (workflowapimodels.StatusView, error) {
	doc, state, err := i.load(ctx, actor.TenantID, documentID)
	if err != nil {
		return workflowapimodels.StatusView{}, err
	}
	return workflowapimodels.StatusView{
		DocumentID:          documentID,
		State:               state.CurrentState,
		StateName:           state.CurrentState.ToHuman(),
		AvailableActions:    availableActions(state.CurrentState, getRelation(actor.UserID, *doc, *state)),
		AssignedValidatorID: state.AssignedValidatorID,
		AssignedApproverID:  state.AssignedApproverID,
	}, nil
}

func (i impl) transition(ctx context.Context, actor models.Actor, documentID int64, action models.WorkflowAction, comment string, submitData *workflowapimodels.SubmitData) (workflowapimodels.StateView, error) {
	logger := i.getLogger(actor, documentID).
		WithField("action", action)
	rule := transitionRules[action]
	comment = strings.TrimSpace(comment)
	if rule.commentRequired && comment == "" {
		return workflowapimodels.StateView{}, workflowerrors.ValidationFailed("comment is required")
	}
	doc, state, err := i.load(ctx, actor.TenantID, documentID)
	if err != nil {
		return workflowapimodels.StateView{}, err
	}
	current := state.CurrentState
	if !rule.allowedFrom(current) {
		return workflowapimodels.StateView{}, workflowerrors.InvalidState("action %v is not allowed in state %v", action, current)
	}
	if !rule.allowedActor(current, getRelation(actor.UserID, *doc, *state)) {
		return workflowapimodels.StateView{}, workflowerrors.Unauthorized(rule.actor.deniedMessage())
	}

	validatorID := state.ValidatorID()
	approverID := state.ApproverID()
	assignMap := map[string]interface{}{}
	if submitData != nil {
		validatorID, approverID, err = i.resolveAssignees(ctx, actor.TenantID, *doc, *state, *submitData)
		if err != nil {
			return workflowapimodels.StateView{}, err
		}
		assignMap["assigned_validator_id"] = validatorID
		assignMap["assigned_approver_id"] = approverID
	}

	transitionID := uuid.NewString()
	err = i.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stateStore := workflowstatestore.NewInstance(tx)
		historyStore := workflowhistorystore.NewInstance(tx)
		if state.ID == 0 {
			err := stateStore.EnsureDraft(ctx, actor.TenantID, documentID)
			if err != nil {
				return errors.Wrap(err, "failed to create workflow state")
			}
		}
		from := current
		for idx, to := range rule.steps {
			now := time.Now()
			updMap := map[string]interface{}{
				"current_state": to,
				"updated_at":    now,
			}
			if idx == 0 {
				for k, v := range assignMap {
					updMap[k] = v
				}
			}
			ok, err := stateStore.CompareAndSwap(ctx, actor.TenantID, documentID, from, updMap)
			if err != nil {
				return errors.Wrap(err, "failed to update workflow state")
			}
			if !ok {
				return workflowerrors.Conflict("document state changed concurrently, retry the request")
			}
			historyRec := dbmodels.WorkflowHistory{
				CreatedAt:    now,
				TenantID:     actor.TenantID,
				DocumentID:   documentID,
				TransitionID: transitionID,
				ActorID:      actor.UserID,
				FromState:    from,
				ToState:      to,
				Action:       action,
			}
			if idx == 0 {
				historyRec.Comment = comment
			}
			_, err = historyStore.Create(ctx, historyRec)
			if err != nil {
				return errors.Wrap(err, "failed to write workflow history")
			}
			from = to
		}
		return nil
	})
	if err != nil {
		return workflowapimodels.StateView{}, i.logError(logger, err)
	}
	result := rule.result()
	logger.
		WithField("transition_id", transitionID).
		WithField("from_state", current).
		WithField("to_state", result).
		Info("document state changed")

	i.notifier.TransitionDone(workflownotify.Event{
		TenantID:    actor.TenantID,
		DocumentID:  documentID,
		Title:       doc.Title,
		CreatorID:   doc.CreatorID,
		ActorID:     actor.UserID,
		Action:      action,
		FromState:   current,
		ToState:     result,
		ValidatorID: validatorID,
		ApproverID:  approverID,
		Comment:     comment,
	})
	return workflowapimodels.StateView{State: result}, nil
}

// load returns the document and its workflow state; a document that never entered the workflow is reported as draft.
func (i impl) load(ctx context.Context, tenantID, documentID int64) (*dbmodels.Document, *dbmodels.WorkflowState, error) {
	doc, err := i.documentStore.GetByID(ctx, tenantID, documentID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to get document")
	}
	if doc == nil {
		return nil, nil, workflowerrors.NotFound("document not found")
	}
	state, err := i.stateStore.GetByDocument(ctx, tenantID, documentID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to get workflow state")
	}
	if state == nil {
		state = &dbmodels.WorkflowState{
			BaseTenantModel: dbmodels.BaseTenantModel{TenantID: tenantID},
			DocumentID:      documentID,
			CurrentState:    models.WorkflowStateDraft,
		}
	}
	return doc, state, nil
}

// resolveAssignees merges the submitted assignees with the stored ones; both must be set afterwards.
func (i impl) resolveAssignees(ctx context.Context, tenantID int64, doc dbmodels.Document, state dbmodels.WorkflowState, data workflowapimodels.SubmitData) (validatorID, approverID int64, err error) {
	if err = data.Validate(); err != nil {
		return 0, 0, workflowerrors.ValidationFailed(err.Error())
	}
	validatorID = state.ValidatorID()
	approverID = state.ApproverID()
	if data.ValidatorID != nil {
		validatorID = *data.ValidatorID
		if err = i.checkAssignee(ctx, tenantID, doc, validatorID, models.WorkflowRoleValidator); err != nil {
			return 0, 0, err
		}
	}
	if data.ApproverID != nil {
		approverID = *data.ApproverID
		if err = i.checkAssignee(ctx, tenantID, doc, approverID, models.WorkflowRoleApprover); err != nil {
			return 0, 0, err
		}
	}
	if validatorID == 0 {
		return 0, 0, workflowerrors.ValidationFailed("validator is not assigned")
	}
	if approverID == 0 {
		return 0, 0, workflowerrors.ValidationFailed("approver is not assigned")
	}
	if validatorID == doc.CreatorID || approverID == doc.CreatorID {
		return 0, 0, workflowerrors.ValidationFailed("document creator cannot validate or approve own document")
	}
	return validatorID, approverID, nil
}

func (i impl) checkAssignee(ctx context.Context, tenantID int64, doc dbmodels.Document, userID int64, role models.WorkflowRole) error {
	if userID == doc.CreatorID {
		return workflowerrors.ValidationFailed("document creator cannot validate or approve own document")
	}
	ok, err := i.rolesHandler.HasRole(ctx, tenantID, userID, role)
	if err != nil {
		return errors.Wrap(err, "failed to check workflow role")
	}
	if !ok {
		return workflowerrors.ValidationFailed(fmt.Sprintf("user %v has no %v role", userID, role))
	}
	return nil
}

func (i impl) logError(logger *log.Entry, err error) error {
	kind, ok := workflowerrors.KindOf(err)
	if !ok {
		logger.WithError(err).Error("workflow transition failed")
		return err
	}
	logger.
		WithField("error_kind", kind).
		WithError(err).
		Warn("workflow transition refused")
	return err
}
