package workflowhandler

import (
	"docflow-backend/models"
	dbmodels "docflow-backend/models/db"
)

type actorRule int

const (
	actorCreator actorRule = iota
	actorValidator
	actorApprover
	// actorStageAssignee is the validator in pending_validation and the approver in pending_approval.
	actorStageAssignee
)

func (a actorRule) deniedMessage() string {
	switch a {
	case actorCreator:
		return "only the document creator can perform this action"
	case actorValidator:
		return "only the assigned validator can perform this action"
	case actorApprover:
		return "only the assigned approver can perform this action"
	case actorStageAssignee:
		return "only the assignee of the current stage can perform this action"
	}
	return "action is not allowed"
}

type transitionRule struct {
	from []models.WorkflowState
	// steps are applied in order, each one gets its own history row; the last one is the resulting state
	steps           []models.WorkflowState
	actor           actorRule
	commentRequired bool
}

var transitionRules = map[models.WorkflowAction]transitionRule{
	models.WorkflowActionSubmit: {
		from:  []models.WorkflowState{models.WorkflowStateDraft},
		steps: []models.WorkflowState{models.WorkflowStatePendingValidation},
		actor: actorCreator,
	},
	models.WorkflowActionValidate: {
		from:  []models.WorkflowState{models.WorkflowStatePendingValidation},
		steps: []models.WorkflowState{models.WorkflowStateValidated, models.WorkflowStatePendingApproval},
		actor: actorValidator,
	},
	models.WorkflowActionApprove: {
		from:  []models.WorkflowState{models.WorkflowStatePendingApproval},
		steps: []models.WorkflowState{models.WorkflowStateApproved},
		actor: actorApprover,
	},
	models.WorkflowActionReject: {
		from:            []models.WorkflowState{models.WorkflowStatePendingValidation, models.WorkflowStatePendingApproval},
		steps:           []models.WorkflowState{models.WorkflowStateRejected},
		actor:           actorStageAssignee,
		commentRequired: true,
	},
	models.WorkflowActionRecall: {
		from:  []models.WorkflowState{models.WorkflowStatePendingValidation, models.WorkflowStatePendingApproval},
		steps: []models.WorkflowState{models.WorkflowStateDraft},
		actor: actorCreator,
	},
}

func (r transitionRule) allowedFrom(state models.WorkflowState) bool {
	for _, from := range r.from {
		if from == state {
			return true
		}
	}
	return false
}

func (r transitionRule) result() models.WorkflowState {
	return r.steps[len(r.steps)-1]
}

func (r transitionRule) allowedActor(state models.WorkflowState, rel relation) bool {
	switch r.actor {
	case actorCreator:
		return rel.isCreator
	case actorValidator:
		return rel.isValidator
	case actorApprover:
		return rel.isApprover
	case actorStageAssignee:
		switch state {
		case models.WorkflowStatePendingValidation:
			return rel.isValidator
		case models.WorkflowStatePendingApproval:
			return rel.isApprover
		}
	}
	return false
}

// relation is how the acting user relates to the document.
type relation struct {
	isCreator   bool
	isValidator bool
	isApprover  bool
}

func getRelation(userID int64, doc dbmodels.Document, state dbmodels.WorkflowState) relation {
	return relation{
		isCreator:   doc.CreatorID == userID,
		isValidator: state.ValidatorID() == userID,
		isApprover:  state.ApproverID() == userID,
	}
}

// availableActions lists the actions the user may take right now, in AllWorkflowActions order.
func availableActions(state models.WorkflowState, rel relation) []models.WorkflowAction {
	result := []models.WorkflowAction{}
	for _, action := range models.AllWorkflowActions {
		rule := transitionRules[action]
		if rule.allowedFrom(state) && rule.allowedActor(state, rel) {
			result = append(result, action)
		}
	}
	return result
}
