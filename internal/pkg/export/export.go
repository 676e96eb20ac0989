// Package export writes presence and report listings as xlsx workbooks.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/didacticiel/Gpresence/internal/domain/presence"
	"github.com/didacticiel/Gpresence/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

const (
	SheetPresences = "Présences"
	SheetStats     = "Statistiques"
	SheetReports   = "Rapports"
)

var (
	presenceHeader = []interface{}{"Employé", "Utilisateur", "Date", "Arrivée", "Sortie", "Statut"}
	statsHeader    = []interface{}{"Indicateur", "Valeur"}
	reportHeader   = []interface{}{"Type", "Employé", "Date début", "Date fin", "Contenu", "Créé le"}
)

// Presences writes the records and a statistics sheet.
func Presences(w io.Writer, records []presence.Record, stats presence.AggregateStats) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetPresences); err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, []interface{}{
			r.Employee.Name,
			r.Employee.User.Username,
			r.Date.String(),
			valueOr(r.CheckInTime, "-"),
			valueOr(r.CheckOutTime, "-"),
			r.Status.Label(),
		})
	}
	if err := writeTable(f, SheetPresences, presenceHeader, rows); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetStats); err != nil {
		return err
	}
	statRows := [][]interface{}{
		{"Total", stats.Total},
		{presence.StatusArrived.Label(), stats.ArrivedCount},
		{presence.StatusLeft.Label(), stats.LeftCount},
		{presence.StatusAbsent.Label(), stats.AbsentCount},
	}
	if err := writeTable(f, SheetStats, statsHeader, statRows); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write presences workbook: %w", err)
	}
	return nil
}

func Reports(w io.Writer, reports []report.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetReports); err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, []interface{}{
			r.Type.Label(),
			r.Author.Name,
			r.StartDate.String(),
			r.EndDate.String(),
			r.Content,
			r.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	if err := writeTable(f, SheetReports, reportHeader, rows); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write reports workbook: %w", err)
	}
	return nil
}

// ToFile runs write against a new file at path, removing it on failure.
func ToFile(path string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		file.Close()
		os.Remove(path)
		return err
	}
	return file.Close()
}

func writeTable(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}) error {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DCE6F1"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", lastCol, 18)
}

func valueOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
