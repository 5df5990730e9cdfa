package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/BruksfildServices01/clinic-ledger/internal/domain/analytics"
)

type Excel struct{}

func (Excel) Kind() string      { return "excel" }
func (Excel) Extension() string { return "xlsx" }
func (Excel) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Render writes one sheet per table.
func (Excel) Render(rep *analytics.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	defaultSheet := f.GetSheetName(f.GetActiveSheetIndex())

	for i, t := range tables(rep) {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, t.title); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(t.title); err != nil {
			return nil, err
		}

		header := t.header
		if err := f.SetSheetRow(t.title, "A1", &header); err != nil {
			return nil, fmt.Errorf("%s header: %w", t.title, err)
		}

		for n, row := range t.rows {
			cell, err := excelize.CoordinatesToCellName(1, n+2)
			if err != nil {
				return nil, err
			}
			excelRow := row
			if err := f.SetSheetRow(t.title, cell, &excelRow); err != nil {
				return nil, fmt.Errorf("%s row %d: %w", t.title, n+2, err)
			}
		}
	}

	f.SetActiveSheet(0)

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
