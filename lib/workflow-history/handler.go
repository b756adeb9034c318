package workflowhistoryhandler

import (
	"context"
	"docflow-backend/config"
	"docflow-backend/db"
	documentstore "docflow-backend/lib/documents/store"
	pdfexport "docflow-backend/lib/export/pdf"
	xlsexport "docflow-backend/lib/export/xls"
	workflowerrors "docflow-backend/lib/workflow-errors"
	workflowhistorystore "docflow-backend/lib/workflow/history-store"
	workflowapimodels "docflow-backend/models/api/workflow"
	dbmodels "docflow-backend/models/db"
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	GetHistory(ctx context.Context, tenantID, documentID int64) ([]workflowapimodels.HistoryView, error)
	Export(ctx context.Context, tenantID, documentID int64, format workflowapimodels.ExportFormat) (body []byte, fileName string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB, config.Conf.Workflow.HistoryLimit, xlsexport.Instance)
}

// NewInstance - historyLimit caps the returned rows, 0 means no cap.
func NewInstance(DB *gorm.DB, historyLimit int, xlsExporter xlsexport.Provider) Provider {
	return impl{
		store:         workflowhistorystore.NewInstance(DB),
		documentStore: documentstore.NewInstance(DB),
		historyLimit:  historyLimit,
		xlsExporter:   xlsExporter,
	}
}

type impl struct {
	store         workflowhistorystore.Provider
	documentStore documentstore.Provider
	historyLimit  int
	xlsExporter   xlsexport.Provider
}

func (i impl) getLogger(tenantID, documentID int64) *log.Entry {
	return log.
		WithField("tenant_id", tenantID).
		WithField("document_id", documentID)
}

func (i impl) GetHistory(ctx context.Context, tenantID, documentID int64) ([]workflowapimodels.HistoryView, error) {
	_, list, err := i.getHistory(ctx, tenantID, documentID)
	return list, err
}

func (i impl) Export(ctx context.Context, tenantID, documentID int64, format workflowapimodels.ExportFormat) ([]byte, string, error) {
	logger := i.getLogger(tenantID, documentID).
		WithField("format", format)
	if !format.IsValid() {
		return nil, "", workflowerrors.ValidationFailed("unsupported export format")
	}
	doc, list, err := i.getHistory(ctx, tenantID, documentID)
	if err != nil {
		return nil, "", err
	}
	fileName := fmt.Sprintf("document_%v_history.%v", documentID, format)
	switch format {
	case workflowapimodels.ExportFormatPDF:
		body, err := pdfexport.ExportHistory(doc.Title, list)
		if err != nil {
			logger.WithError(err).Error("failed to export history")
			return nil, "", errors.Wrap(err, "failed to export history")
		}
		return body, fileName, nil
	default:
		buf, err := i.xlsExporter.ExportHistory(list)
		if err != nil {
			logger.WithError(err).Error("failed to export history")
			return nil, "", errors.Wrap(err, "failed to export history")
		}
		return buf.Bytes(), fileName, nil
	}
}

func (i impl) getHistory(ctx context.Context, tenantID, documentID int64) (*dbmodels.Document, []workflowapimodels.HistoryView, error) {
	doc, err := i.documentStore.GetByID(ctx, tenantID, documentID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to get document")
	}
	if doc == nil {
		return nil, nil, workflowerrors.NotFound("document not found")
	}
	list, err := i.store.List(ctx, tenantID, documentID, i.historyLimit)
	if err != nil {
		i.getLogger(tenantID, documentID).WithError(err).Error("failed to get workflow history")
		return nil, nil, errors.Wrap(err, "failed to get workflow history")
	}
	result := make([]workflowapimodels.HistoryView, 0, len(list))
	for _, rec := range list {
		result = append(result, workflowapimodels.HistoryConvert(rec))
	}
	return doc, result, nil
}
