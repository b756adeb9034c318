package xlsexport

import (
	"bytes"
	workflowapimodels "docflow-backend/models/api/workflow"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportHistory(list []workflowapimodels.HistoryView) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance()
}

func NewInstance() Provider {
	return impl{}
}

type impl struct{}

const historySheet = "History"

type historyColumn struct {
	title string
	width float64
}

var historyColumns = []historyColumn{
	{"Date", 20},
	{"Actor", 28},
	{"Action", 12},
	{"From state", 20},
	{"To state", 20},
	{"Comment", 60},
	{"Transition", 38},
}

func (i impl) ExportHistory(list []workflowapimodels.HistoryView) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("failed to close xlsx file")
		}
	}()
	if err := f.SetSheetName("Sheet1", historySheet); err != nil {
		return nil, errors.Wrap(err, "failed to rename xlsx sheet")
	}
	headerStyle, dataStyle, err := historyStyles(f)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create xlsx styles")
	}

	header := make([]interface{}, 0, len(historyColumns))
	for idx, col := range historyColumns {
		name, err := excelize.ColumnNumberToName(idx + 1)
		if err != nil {
			return nil, err
		}
		if err = f.SetColWidth(historySheet, name, name, col.width); err != nil {
			return nil, errors.Wrap(err, "failed to set xlsx column width")
		}
		header = append(header, col.title)
	}
	if err = writeRow(f, 1, header, headerStyle); err != nil {
		return nil, errors.Wrap(err, "failed to write xlsx header")
	}
	for idx, item := range list {
		if err = writeRow(f, idx+2, historyRow(item), dataStyle); err != nil {
			return nil, errors.Wrap(err, "failed to write xlsx data")
		}
	}
	err = f.SetPanes(historySheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to freeze xlsx header")
	}
	return f.WriteToBuffer()
}

func historyRow(item workflowapimodels.HistoryView) []interface{} {
	return []interface{}{
		item.Timestamp.Format("02.01.2006 15:04:05"),
		item.ActorName,
		string(item.Action),
		item.FromState.ToHuman(),
		item.ToState.ToHuman(),
		item.Comment,
		item.TransitionID,
	}
}

func historyStyles(f *excelize.File) (header, data int, err error) {
	header, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E6E6E6"}},
	})
	if err != nil {
		return 0, 0, err
	}
	// comments wrap inside their column
	data, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "top", WrapText: true},
		Font:      &excelize.Font{Size: 11},
	})
	if err != nil {
		return 0, 0, err
	}
	return header, data, nil
}

func writeRow(f *excelize.File, row int, values []interface{}, style int) error {
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(values), row)
	if err != nil {
		return err
	}
	if err = f.SetSheetRow(historySheet, first, &values); err != nil {
		return err
	}
	return f.SetCellStyle(historySheet, first, last, style)
}
