package report

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/BruksfildServices01/clinic-ledger/internal/domain/analytics"
)

func sampleReport() *analytics.Report {
	recordID := uint(7)
	rep := analytics.AssembleReport(analytics.ReportInput{
		Start:  "2024-03-01",
		End:    "2024-03-31",
		Period: analytics.PeriodDay,
		Records: []analytics.RecordRow{
			{ID: 7, Date: "2024-03-10", Time: "10:00", Status: "done", ClientName: "Maria & Co", ServiceName: "Consultation", ServicePrice: 100, PatientCount: 4},
		},
		Incomes: []analytics.IncomeRow{
			{ID: 1, Date: "2024-03-10", Name: "Consultation (4 patients)", Amount: 400, RecordID: &recordID},
		},
		Expenses: []analytics.ExpenseRow{
			{ID: 1, Date: "2024-03-12", Name: "Gloves", Amount: 30},
		},
	})
	return &rep
}

func TestRenderers(t *testing.T) {
	r := Renderers()
	require.Contains(t, r, "excel")
	require.Contains(t, r, "word")
	assert.Equal(t, "xlsx", r["excel"].Extension())
	assert.Equal(t, "docx", r["word"].Extension())
}

func TestExcel_Render(t *testing.T) {
	data, err := Excel{}.Render(sampleReport())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{
		"Summary", "Periods", "Records", "Incomes", "Expenses", "Clients", "Services", "Employees",
	}, f.GetSheetList())

	rows, err := f.GetRows("Summary")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"2024-03-01", "2024-03-31", "day", "400", "30", "370", "93", "0"}, rows[1])

	rows, err = f.GetRows("Periods")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "2024-03-10", rows[1][0])
	assert.Equal(t, "-30", rows[2][3])

	rows, err = f.GetRows("Services")
	require.NoError(t, err)
	assert.Equal(t, []string{"Consultation", "1", "4", "400"}, rows[1])
}

func TestWord_Render(t *testing.T) {
	data, err := Word{}.Render(sampleReport())
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	var doc string
	names := []string{}
	for _, f := range zr.File {
		names = append(names, f.Name)
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		doc = string(b)
	}

	assert.Contains(t, names, "[Content_Types].xml")
	assert.Contains(t, names, "word/document.xml")
	assert.Contains(t, doc, "Report 2024-03-01 to 2024-03-31")
	assert.Contains(t, doc, "Consultation (4 patients)")
	assert.Contains(t, doc, "Maria &amp; Co")
	assert.Contains(t, doc, "No entries.")
}
