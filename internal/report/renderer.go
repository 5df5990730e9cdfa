package report

import (
	"github.com/BruksfildServices01/clinic-ledger/internal/domain/analytics"
)

// Renderer turns an assembled report into a downloadable file.
type Renderer interface {
	Kind() string
	Extension() string
	ContentType() string
	Render(rep *analytics.Report) ([]byte, error)
}

// Renderers returns the built-in renderers keyed by kind.
func Renderers() map[string]Renderer {
	out := map[string]Renderer{}
	for _, r := range []Renderer{Excel{}, Word{}} {
		out[r.Kind()] = r
	}
	return out
}

type table struct {
	title  string
	header []any
	rows   [][]any
}

// tables lays out the report the same way for every format.
func tables(rep *analytics.Report) []table {
	s := rep.Summary
	out := []table{
		{
			title:  "Summary",
			header: []any{"Start", "End", "Period", "Income", "Expense", "Result", "Income %", "Clients"},
			rows: [][]any{{
				rep.Start, rep.End, string(rep.Period),
				s.TotalIncome, s.TotalExpense, s.Result, s.IncomePercent, s.UniqueClients,
			}},
		},
	}

	periods := table{title: "Periods", header: []any{"Period", "Income", "Expense", "Result"}}
	for _, p := range rep.Periods {
		periods.rows = append(periods.rows, []any{p.Label, p.Income, p.Expense, p.Result})
	}

	records := table{title: "Records", header: []any{"Date", "Time", "Client", "Service", "Patients", "Status", "Value"}}
	for _, r := range rep.Records {
		records.rows = append(records.rows, []any{
			r.Date, r.Time, r.ClientName, r.ServiceName, r.PatientCount, r.Status, r.Revenue(),
		})
	}

	incomes := table{title: "Incomes", header: []any{"Date", "Time", "Name", "Amount", "Record"}}
	for _, i := range rep.Incomes {
		var rec any = ""
		if i.RecordID != nil {
			rec = *i.RecordID
		}
		incomes.rows = append(incomes.rows, []any{i.Date, i.Time, i.Name, i.Amount, rec})
	}

	expenses := table{title: "Expenses", header: []any{"Date", "Time", "Name", "Amount"}}
	for _, e := range rep.Expenses {
		expenses.rows = append(expenses.rows, []any{e.Date, e.Time, e.Name, e.Amount})
	}

	out = append(out, periods, records, incomes, expenses,
		rollupTable("Clients", rep.Clients),
		rollupTable("Services", rep.Services),
		rollupTable("Employees", rep.Employees),
	)
	return out
}

func rollupTable(title string, rows []analytics.Rollup) table {
	t := table{title: title, header: []any{"Name", "Count", "Patients", "Total"}}
	for _, r := range rows {
		t.rows = append(t.rows, []any{r.Name, r.Count, r.PatientCount, r.Total})
	}
	return t
}
