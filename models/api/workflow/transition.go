package workflowapimodels

import (
	"docflow-backend/models"
	"strings"

	"github.com/pkg/errors"
)

type SubmitData struct {
	ValidatorID *int64 `json:"validator_id"` // Validator, if not set the stored assignee is kept
	ApproverID  *int64 `json:"approver_id"`  // Approver, if not set the stored assignee is kept
}

func (s SubmitData) Validate() error {
	if s.ValidatorID != nil && *s.ValidatorID <= 0 {
		return errors.New("invalid validator id")
	}
	if s.ApproverID != nil && *s.ApproverID <= 0 {
		return errors.New("invalid approver id")
	}
	return nil
}

type AssigneesData struct {
	ValidatorID *int64 `json:"validator_id"`
	ApproverID  *int64 `json:"approver_id"`
}

func (a AssigneesData) Validate() error {
	if a.ValidatorID == nil && a.ApproverID == nil {
		return errors.New("neither validator nor approver is specified")
	}
	return SubmitData(a).Validate()
}

type CommentData struct {
	Comment string `json:"comment"`
}

func (c CommentData) Validate() error {
	return nil
}

type RejectData struct {
	Comment string `json:"comment"` // Required
}

func (r RejectData) Validate() error {
	if strings.TrimSpace(r.Comment) == "" {
		return errors.New("comment is required")
	}
	return nil
}

type RecallData struct {
	Reason string `json:"reason"`
}

func (r RecallData) Validate() error {
	return nil
}

type StateView struct {
	State models.WorkflowState `json:"state"`
}

type StatusView struct {
	DocumentID          int64                   `json:"document_id"`
	State               models.WorkflowState    `json:"state"`
	StateName           string                  `json:"state_name"`
	AvailableActions    []models.WorkflowAction `json:"available_actions"`
	AssignedValidatorID *int64                  `json:"assigned_validator_id"`
	AssignedApproverID  *int64                  `json:"assigned_approver_id"`
}
