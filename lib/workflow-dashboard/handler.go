package workflowdashboardhandler

import (
	"context"
	"docflow-backend/db"
	workflowdashboardstore "docflow-backend/lib/workflow-dashboard/store"
	"docflow-backend/models"
	workflowapimodels "docflow-backend/models/api/workflow"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	GetDashboard(ctx context.Context, tenantID, userID int64) (workflowapimodels.DashboardView, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB)
}

func NewInstance(DB *gorm.DB) Provider {
	return impl{
		store: workflowdashboardstore.NewInstance(DB),
	}
}

type impl struct {
	store workflowdashboardstore.Provider
}

func (i impl) GetDashboard(ctx context.Context, tenantID, userID int64) (workflowapimodels.DashboardView, error) {
	logger := log.
		WithField("tenant_id", tenantID).
		WithField("user_id", userID)
	result := workflowapimodels.DashboardView{
		Counts: map[models.WorkflowState]int64{},
	}
	for _, state := range models.AllWorkflowStates {
		if state == models.WorkflowStateValidated {
			continue
		}
		result.Counts[state] = 0
	}
	counts, err := i.store.CountByState(ctx, tenantID)
	if err != nil {
		logger.WithError(err).Error("failed to count documents by state")
		return workflowapimodels.DashboardView{}, errors.Wrap(err, "failed to count documents by state")
	}
	for _, rec := range counts {
		result.Counts[rec.State] = rec.Total
	}

	forValidation, err := i.store.ListPendingForValidator(ctx, tenantID, userID)
	if err != nil {
		logger.WithError(err).Error("failed to get documents pending validation")
		return workflowapimodels.DashboardView{}, errors.Wrap(err, "failed to get documents pending validation")
	}
	forApproval, err := i.store.ListPendingForApprover(ctx, tenantID, userID)
	if err != nil {
		logger.WithError(err).Error("failed to get documents pending approval")
		return workflowapimodels.DashboardView{}, errors.Wrap(err, "failed to get documents pending approval")
	}
	result.PendingMyValidation = convertPending(forValidation)
	result.PendingMyApproval = convertPending(forApproval)
	return result, nil
}

func convertPending(list []workflowdashboardstore.PendingDocument) []workflowapimodels.PendingDocumentView {
	result := make([]workflowapimodels.PendingDocumentView, 0, len(list))
	for _, rec := range list {
		result = append(result, workflowapimodels.PendingDocumentView{
			DocumentID: rec.DocumentID,
			Title:      rec.Title,
			CreatorID:  rec.CreatorID,
			State:      rec.State,
			UpdatedAt:  rec.UpdatedAt,
		})
	}
	return result
}
