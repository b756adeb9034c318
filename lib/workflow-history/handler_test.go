package workflowhistoryhandler

import (
	"bytes"
	"context"
	"docflow-backend/db/testdb"
	xlsexport "docflow-backend/lib/export/xls"
	workflowerrors "docflow-backend/lib/workflow-errors"
	workflowhistorystore "docflow-backend/lib/workflow/history-store"
	"docflow-backend/models"
	workflowapimodels "docflow-backend/models/api/workflow"
	dbmodels "docflow-backend/models/db"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestHistory(t *testing.T) {
	ctx := context.Background()
	DB := testdb.Open(t)
	tenantID := testdb.CreateTenant(t, DB, "acme")
	otherTenantID := testdb.CreateTenant(t, DB, "globex")
	creatorID := testdb.CreateMember(t, DB, tenantID, "creator", models.TenantUserRole)
	validatorID := testdb.CreateMember(t, DB, tenantID, "validator", models.TenantUserRole)
	docID := testdb.CreateDocument(t, DB, tenantID, creatorID, "Quarterly report")

	store := workflowhistorystore.NewInstance(DB)
	start := time.Now().Add(-time.Hour)
	rows := []dbmodels.WorkflowHistory{
		{
			CreatedAt:    start,
			TransitionID: "t-1",
			ActorID:      creatorID,
			FromState:    models.WorkflowStateDraft,
			ToState:      models.WorkflowStatePendingValidation,
			Action:       models.WorkflowActionSubmit,
		},
		{
			CreatedAt:    start.Add(time.Minute),
			TransitionID: "t-2",
			ActorID:      validatorID,
			FromState:    models.WorkflowStatePendingValidation,
			ToState:      models.WorkflowStateValidated,
			Action:       models.WorkflowActionValidate,
			Comment:      "looks good",
		},
		{
			CreatedAt:    start.Add(time.Minute),
			TransitionID: "t-2",
			ActorID:      validatorID,
			FromState:    models.WorkflowStateValidated,
			ToState:      models.WorkflowStatePendingApproval,
			Action:       models.WorkflowActionValidate,
		},
	}
	for _, rec := range rows {
		rec.TenantID = tenantID
		rec.DocumentID = docID
		_, err := store.Create(ctx, rec)
		require.NoError(t, err)
	}

	handler := NewInstance(DB, 0, xlsexport.NewInstance())

	t.Run(`history in canonical order`, func(t *testing.T) {
		list, err := handler.GetHistory(ctx, tenantID, docID)
		require.NoError(t, err)
		require.Len(t, list, 3)
		require.Equal(t, "t-1", list[0].TransitionID)
		require.Equal(t, models.WorkflowStateValidated, list[1].ToState)
		require.Equal(t, "looks good", list[1].Comment)
		require.Equal(t, models.WorkflowStatePendingApproval, list[2].ToState)
		require.Empty(t, list[2].Comment)
		require.NotEmpty(t, list[1].ActorName)
	})

	t.Run(`limit keeps the oldest entries`, func(t *testing.T) {
		limited := NewInstance(DB, 2, xlsexport.NewInstance())
		list, err := limited.GetHistory(ctx, tenantID, docID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Equal(t, models.WorkflowStatePendingValidation, list[0].ToState)
		require.Equal(t, models.WorkflowStateValidated, list[1].ToState)
	})

	t.Run(`document without history`, func(t *testing.T) {
		emptyDocID := testdb.CreateDocument(t, DB, tenantID, creatorID, "Empty")
		list, err := handler.GetHistory(ctx, tenantID, emptyDocID)
		require.NoError(t, err)
		require.NotNil(t, list)
		require.Empty(t, list)
	})

	t.Run(`foreign tenant gets not found`, func(t *testing.T) {
		_, err := handler.GetHistory(ctx, otherTenantID, docID)
		kind, ok := workflowerrors.KindOf(err)
		require.True(t, ok)
		require.Equal(t, workflowerrors.KindNotFound, kind)

		_, _, err = handler.Export(ctx, otherTenantID, docID, workflowapimodels.ExportFormatPDF)
		kind, ok = workflowerrors.KindOf(err)
		require.True(t, ok)
		require.Equal(t, workflowerrors.KindNotFound, kind)
	})

	t.Run(`export xlsx`, func(t *testing.T) {
		body, fileName, err := handler.Export(ctx, tenantID, docID, workflowapimodels.ExportFormatXLSX)
		require.NoError(t, err)
		require.Equal(t, "document_"+itoa(docID)+"_history.xlsx", fileName)

		f, err := excelize.OpenReader(bytes.NewReader(body))
		require.NoError(t, err)
		defer f.Close()
		sheetRows, err := f.GetRows("History")
		require.NoError(t, err)
		require.Len(t, sheetRows, 4)
		require.Equal(t, "Date", sheetRows[0][0])
		require.Equal(t, string(models.WorkflowActionSubmit), sheetRows[1][2])
		require.Equal(t, "t-1", sheetRows[1][6])
		require.Equal(t, "looks good", sheetRows[2][5])
	})

	t.Run(`export pdf`, func(t *testing.T) {
		body, fileName, err := handler.Export(ctx, tenantID, docID, workflowapimodels.ExportFormatPDF)
		require.NoError(t, err)
		require.Equal(t, "document_"+itoa(docID)+"_history.pdf", fileName)
		require.True(t, bytes.HasPrefix(body, []byte("%PDF")))
	})

	t.Run(`unknown format`, func(t *testing.T) {
		_, _, err := handler.Export(ctx, tenantID, docID, workflowapimodels.ExportFormat("csv"))
		kind, ok := workflowerrors.KindOf(err)
		require.True(t, ok)
		require.Equal(t, workflowerrors.KindValidationFailed, kind)
	})
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
