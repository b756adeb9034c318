package pdfexport

import (
	"bytes"
	workflowapimodels "docflow-backend/models/api/workflow"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

type column struct {
	title string
	width float64
}

var historyColumns = []column{
	{"Date", 32},
	{"Actor", 38},
	{"Action", 20},
	{"From", 30},
	{"To", 30},
	{"Comment", 127},
}

// ExportHistory renders the history as a landscape A4 table; core fonts only, so no font files are needed.
func ExportHistory(documentTitle string, list []workflowapimodels.HistoryView) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("ExportHistory panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("Workflow history: %s", documentTitle)), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range historyColumns {
		pdf.CellFormat(col.width, 8, col.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range list {
		values := []string{
			item.Timestamp.Format("02.01.2006 15:04"),
			item.ActorName,
			string(item.Action),
			item.FromState.ToHuman(),
			item.ToState.ToHuman(),
			item.Comment,
		}
		for idx, col := range historyColumns {
			text := fitText(pdf, tr(values[idx]), col.width-2)
			pdf.CellFormat(col.width, 7, text, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// fitText returns the longest prefix of text not wider than width.
// Prefix width never decreases with length, so the cut is bisected.
func fitText(pdf *fpdf.Fpdf, text string, width float64) string {
	if pdf.GetStringWidth(text) <= width {
		return text
	}
	lo, hi := 0, len(text)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if pdf.GetStringWidth(text[:mid]) <= width {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return text[:lo]
}
