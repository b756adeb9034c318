package models

type WorkflowState string

const (
	WorkflowStateDraft             WorkflowState = "draft"
	WorkflowStatePendingValidation WorkflowState = "pending_validation"
	WorkflowStateValidated         WorkflowState = "validated" // transient, never left as current state
	WorkflowStatePendingApproval   WorkflowState = "pending_approval"
	WorkflowStateApproved          WorkflowState = "approved"
	WorkflowStateRejected          WorkflowState = "rejected"
)

var AllWorkflowStates = []WorkflowState{
	WorkflowStateDraft,
	WorkflowStatePendingValidation,
	WorkflowStateValidated,
	WorkflowStatePendingApproval,
	WorkflowStateApproved,
	WorkflowStateRejected,
}

var workflowStateHumanName = map[WorkflowState]string{
	WorkflowStateDraft:             "Draft",
	WorkflowStatePendingValidation: "Pending validation",
	WorkflowStateValidated:         "Validated",
	WorkflowStatePendingApproval:   "Pending approval",
	WorkflowStateApproved:          "Approved",
	WorkflowStateRejected:          "Rejected",
}

func (s WorkflowState) ToHuman() string {
	if human, exist := workflowStateHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s WorkflowState) IsValid() bool {
	_, ok := workflowStateHumanName[s]
	return ok
}

func (s WorkflowState) IsTerminal() bool {
	return s == WorkflowStateApproved || s == WorkflowStateRejected
}

type WorkflowAction string

const (
	WorkflowActionSubmit   WorkflowAction = "submit"
	WorkflowActionValidate WorkflowAction = "validate"
	WorkflowActionApprove  WorkflowAction = "approve"
	WorkflowActionReject   WorkflowAction = "reject"
	WorkflowActionRecall   WorkflowAction = "recall"
)

// AllWorkflowActions order is the order of available_actions in status views
var AllWorkflowActions = []WorkflowAction{
	WorkflowActionSubmit,
	WorkflowActionValidate,
	WorkflowActionApprove,
	WorkflowActionReject,
	WorkflowActionRecall,
}

type WorkflowRole string

const (
	WorkflowRoleValidator WorkflowRole = "validator"
	WorkflowRoleApprover  WorkflowRole = "approver"
)

func (r WorkflowRole) IsValid() bool {
	return r == WorkflowRoleValidator || r == WorkflowRoleApprover
}

// Actor is the already authenticated caller of a workflow operation.
type Actor struct {
	TenantID int64
	UserID   int64
	Role     UserRole
}
