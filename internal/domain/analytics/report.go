package analytics

import (
	"sort"

	"github.com/BruksfildServices01/clinic-ledger/internal/domain/record"
	"github.com/BruksfildServices01/clinic-ledger/internal/httperr"
)

type Period string

const (
	PeriodDay   Period = "day"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodDay, PeriodMonth, PeriodYear:
		return Period(s), nil
	case "":
		return PeriodMonth, nil
	}
	return "", httperr.ErrBusiness("invalid_period")
}

// Key cuts a YYYY-MM-DD date down to the period bucket it falls in.
func (p Period) Key(date string) string {
	switch p {
	case PeriodYear:
		if len(date) >= 4 {
			return date[:4]
		}
	case PeriodMonth:
		if len(date) >= 7 {
			return date[:7]
		}
	default:
		if len(date) >= 10 {
			return date[:10]
		}
	}
	return date
}

// ===============================
// Report
// ===============================

type Summary struct {
	TotalIncome   int64 `json:"totalIncome"`
	TotalExpense  int64 `json:"totalExpense"`
	Result        int64 `json:"result"`
	IncomePercent int   `json:"incomePercent"`
	UniqueClients int   `json:"uniqueClients"`
}

type PeriodRow struct {
	Label   string `json:"label"`
	Income  int64  `json:"income"`
	Expense int64  `json:"expense"`
	Result  int64  `json:"result"`
}

// Rollup is one line of a tabular breakdown.
type Rollup struct {
	Name         string `json:"name"`
	Count        int    `json:"count"`
	PatientCount int    `json:"patientCount"`
	Total        int64  `json:"total"`
}

type Report struct {
	Start     string       `json:"start"`
	End       string       `json:"end"`
	Period    Period       `json:"period"`
	Summary   Summary      `json:"summary"`
	Periods   []PeriodRow  `json:"periods"`
	Records   []RecordRow  `json:"records"`
	Incomes   []IncomeRow  `json:"incomes"`
	Expenses  []ExpenseRow `json:"expenses"`
	Clients   []Rollup     `json:"clients"`
	Services  []Rollup     `json:"services"`
	Employees []Rollup     `json:"employees"`
}

type ReportInput struct {
	Start       string
	End         string
	Period      Period
	Records     []RecordRow
	Incomes     []IncomeRow
	Expenses    []ExpenseRow
	Completions []CompletionRow
}

// AssembleReport builds the report from raw rows. Totals come from the
// ledger; client and service rollups from done records; employee rollups
// follow the same once-per-record revenue rule as the monthly view.
func AssembleReport(in ReportInput) Report {
	var income, expense int64
	for _, i := range in.Incomes {
		income += i.Amount
	}
	for _, e := range in.Expenses {
		expense += e.Amount
	}

	done := make([]RecordRow, 0, len(in.Records))
	clients := map[uint]struct{}{}
	for _, r := range in.Records {
		if r.Status != string(record.StatusDone) {
			continue
		}
		done = append(done, r)
		if r.ClientID != nil {
			clients[*r.ClientID] = struct{}{}
		}
	}

	return Report{
		Start:  in.Start,
		End:    in.End,
		Period: in.Period,
		Summary: Summary{
			TotalIncome:   income,
			TotalExpense:  expense,
			Result:        income - expense,
			IncomePercent: Percent(income, income+expense),
			UniqueClients: len(clients),
		},
		Periods:   PeriodSeries(in.Period, in.Incomes, in.Expenses),
		Records:   nonNil(in.Records),
		Incomes:   nonNil(in.Incomes),
		Expenses:  nonNil(in.Expenses),
		Clients:   ClientRollup(done),
		Services:  ServiceRollup(done),
		Employees: EmployeeRollup(in.Completions),
	}
}

func PeriodSeries(p Period, incomes []IncomeRow, expenses []ExpenseRow) []PeriodRow {
	rows := map[string]*PeriodRow{}
	row := func(label string) *PeriodRow {
		r, ok := rows[label]
		if !ok {
			r = &PeriodRow{Label: label}
			rows[label] = r
		}
		return r
	}

	for _, i := range incomes {
		r := row(p.Key(i.Date))
		r.Income += i.Amount
		r.Result += i.Amount
	}
	for _, e := range expenses {
		r := row(p.Key(e.Date))
		r.Expense += e.Amount
		r.Result -= e.Amount
	}

	out := make([]PeriodRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

func ClientRollup(done []RecordRow) []Rollup {
	g := rollups{}
	for _, r := range done {
		if r.ClientID == nil {
			continue
		}
		g.add(r.ClientName, 1, r.PatientCount, r.Revenue())
	}
	return g.sorted()
}

func ServiceRollup(done []RecordRow) []Rollup {
	g := rollups{}
	for _, r := range done {
		g.add(r.ServiceName, 1, r.PatientCount, r.Revenue())
	}
	return g.sorted()
}

// EmployeeRollup uses completion patient counts for work done and the
// de-duplicated record revenue for totals.
func EmployeeRollup(completions []CompletionRow) []Rollup {
	stats := EmployeeStats(completions)

	patients := map[uint]int{}
	for _, c := range completions {
		patients[c.EmployeeID] += c.PatientCount
	}

	g := rollups{}
	for _, st := range stats {
		g.add(st.FullName, st.CompletedServices, patients[st.ID], st.Revenue)
	}
	return g.sorted()
}

type rollups map[string]*Rollup

func (g rollups) add(name string, count, patients int, total int64) {
	r, ok := g[name]
	if !ok {
		r = &Rollup{Name: name}
		g[name] = r
	}
	r.Count += count
	r.PatientCount += patients
	r.Total += total
}

func (g rollups) sorted() []Rollup {
	out := make([]Rollup, 0, len(g))
	for _, r := range g {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
