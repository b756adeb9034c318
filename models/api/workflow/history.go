package workflowapimodels

import (
	"docflow-backend/models"
	dbmodels "docflow-backend/models/db"
	"time"
)

type HistoryView struct {
	ID           int64                 `json:"id"`
	TransitionID string                `json:"transition_id"`
	Actor        int64                 `json:"actor"`
	ActorName    string                `json:"actor_name"`
	FromState    models.WorkflowState  `json:"from_state"`
	ToState      models.WorkflowState  `json:"to_state"`
	Action       models.WorkflowAction `json:"action"`
	Comment      string                `json:"comment"`
	Timestamp    time.Time             `json:"timestamp"`
}

func HistoryConvert(rec dbmodels.WorkflowHistory) HistoryView {
	actorName := ""
	if rec.Actor != nil {
		actorName = rec.Actor.GetFullName()
	}
	return HistoryView{
		ID:           rec.ID,
		TransitionID: rec.TransitionID,
		Actor:        rec.ActorID,
		ActorName:    actorName,
		FromState:    rec.FromState,
		ToState:      rec.ToState,
		Action:       rec.Action,
		Comment:      rec.Comment,
		Timestamp:    rec.CreatedAt,
	}
}

type ExportFormat string

const (
	ExportFormatXLSX ExportFormat = "xlsx"
	ExportFormatPDF  ExportFormat = "pdf"
)

func (f ExportFormat) IsValid() bool {
	return f == ExportFormatXLSX || f == ExportFormatPDF
}

func (f ExportFormat) ContentType() string {
	if f == ExportFormatPDF {
		return "application/pdf"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
