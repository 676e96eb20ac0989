package export

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/didacticiel/Gpresence/internal/domain/presence"
	"github.com/didacticiel/Gpresence/internal/domain/report"
	"github.com/didacticiel/Gpresence/internal/pkg/dateonly"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var day = dateonly.NewDate(time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC))

func strPtr(s string) *string { return &s }

func readRows(t *testing.T, buf *bytes.Buffer, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestPresences(t *testing.T) {
	records := []presence.Record{
		{
			ID:          1,
			Employee:    presence.EmployeeRef{Name: "Awa Diallo", User: presence.UserRef{ID: 7, Username: "awa"}},
			Date:        day,
			CheckInTime: strPtr("08:05:00"),
			Status:      presence.StatusArrived,
		},
		{
			ID:       2,
			Employee: presence.EmployeeRef{Name: "Bakary Traoré", User: presence.UserRef{ID: 8, Username: "bakary"}},
			Date:     day,
			Status:   presence.StatusAbsent,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Presences(&buf, records, presence.ComputeStats(records)))
	data := buf.Bytes()

	rows := readRows(t, bytes.NewBuffer(data), SheetPresences)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Employé", "Utilisateur", "Date", "Arrivée", "Sortie", "Statut"}, rows[0])
	assert.Equal(t, []string{"Awa Diallo", "awa", "2026-10-18", "08:05:00", "-", "Arrivé"}, rows[1])
	assert.Equal(t, "Absent", rows[2][5])

	stats := readRows(t, bytes.NewBuffer(data), SheetStats)
	require.Len(t, stats, 5)
	assert.Equal(t, []string{"Total", "2"}, stats[1])
	assert.Equal(t, []string{"Arrivé", "1"}, stats[2])
	assert.Equal(t, []string{"Absent", "1"}, stats[4])
}

func TestPresencesEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Presences(&buf, nil, presence.AggregateStats{}))

	rows := readRows(t, &buf, SheetPresences)
	assert.Len(t, rows, 1)
}

func TestReports(t *testing.T) {
	reports := []report.Report{{
		ID:        1,
		Author:    report.Author{Name: "Mariam Koné", User: report.AuthorUser{Username: "manager"}},
		Type:      report.TypeMonthly,
		StartDate: dateonly.NewDate(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)),
		EndDate:   dateonly.NewDate(time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)),
		Content:   "Bilan septembre",
		CreatedAt: time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC),
	}}

	var buf bytes.Buffer
	require.NoError(t, Reports(&buf, reports))

	rows := readRows(t, &buf, SheetReports)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Mensuel", "Mariam Koné", "2026-09-01", "2026-09-30", "Bilan septembre", "2026-10-01 09:30"}, rows[1])
}

func TestToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "rapports.xlsx")
	require.NoError(t, ToFile(path, func(w io.Writer) error {
		return Reports(w, nil)
	}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{SheetReports}, f.GetSheetList())
}
