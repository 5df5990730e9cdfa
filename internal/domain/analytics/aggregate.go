package analytics

import (
	"math"
	"sort"

	"github.com/BruksfildServices01/clinic-ledger/internal/domain/record"
)

// Percent returns round(part / total * 100), or 0 when total is 0.
func Percent(part, total int64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// ===============================
// Monthly
// ===============================

type EmployeeStat struct {
	ID                uint   `json:"id"`
	FullName          string `json:"fullName"`
	CompletedServices int    `json:"completedServices"`
	Revenue           int64  `json:"revenue"`
}

type MonthlyAnalytics struct {
	TotalIncome   int64          `json:"totalIncome"`
	TotalExpense  int64          `json:"totalExpense"`
	Result        int64          `json:"result"`
	UniqueClients int            `json:"uniqueClients"`
	EmployeeStats []EmployeeStat `json:"employeeStats"`
}

func Monthly(
	totalIncome int64,
	totalExpense int64,
	uniqueClients int,
	completions []CompletionRow,
) MonthlyAnalytics {
	return MonthlyAnalytics{
		TotalIncome:   totalIncome,
		TotalExpense:  totalExpense,
		Result:        totalIncome - totalExpense,
		UniqueClients: uniqueClients,
		EmployeeStats: EmployeeStats(completions),
	}
}

// EmployeeStats counts one completed service per completion. A record's
// revenue is counted once, for the employee who completed it first.
func EmployeeStats(completions []CompletionRow) []EmployeeStat {
	ordered := append([]CompletionRow(nil), completions...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CompletionID < ordered[j].CompletionID
	})

	countedRecords := make(map[uint]struct{}, len(ordered))
	byEmployee := make(map[uint]*EmployeeStat)

	for _, c := range ordered {
		st, ok := byEmployee[c.EmployeeID]
		if !ok {
			st = &EmployeeStat{ID: c.EmployeeID, FullName: c.EmployeeName}
			byEmployee[c.EmployeeID] = st
		}
		st.CompletedServices++

		if _, seen := countedRecords[c.RecordID]; seen {
			continue
		}
		countedRecords[c.RecordID] = struct{}{}
		st.Revenue += c.Revenue()
	}

	out := make([]EmployeeStat, 0, len(byEmployee))
	for _, st := range byEmployee {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		if out[i].CompletedServices != out[j].CompletedServices {
			return out[i].CompletedServices > out[j].CompletedServices
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ===============================
// Income / Expense
// ===============================

type DateTotal struct {
	Date  string `json:"date"`
	Total int64  `json:"total"`
	Count int    `json:"count"`
}

type NameTotal struct {
	Name  string `json:"name"`
	Total int64  `json:"total"`
	Count int    `json:"count"`
}

type IncomeAnalytics struct {
	Total         int64       `json:"total"`
	IncomePercent int         `json:"incomePercent"`
	ByDate        []DateTotal `json:"byDate"`
	ByService     []NameTotal `json:"byService"`
	RecordCount   int         `json:"recordCount"`
	ClientCount   int         `json:"clientCount"`
}

type ExpenseAnalytics struct {
	Total          int64       `json:"total"`
	ExpensePercent int         `json:"expensePercent"`
	ByDate         []DateTotal `json:"byDate"`
	ByName         []NameTotal `json:"byName"`
	Count          int         `json:"count"`
}

// IncomeBreakdown groups incomes by day and by service. The percent is the
// income share of income plus expense.
func IncomeBreakdown(incomes []IncomeRow, totalExpense int64) IncomeAnalytics {
	dates := newDateGroups()
	names := newNameGroups()
	records := map[uint]struct{}{}
	clients := map[uint]struct{}{}

	var total int64
	for _, inc := range incomes {
		total += inc.Amount
		dates.add(inc.Date, inc.Amount)
		names.add(inc.Category(), inc.Amount)
		if inc.RecordID != nil {
			records[*inc.RecordID] = struct{}{}
		}
		if inc.ClientID != nil {
			clients[*inc.ClientID] = struct{}{}
		}
	}

	return IncomeAnalytics{
		Total:         total,
		IncomePercent: Percent(total, total+totalExpense),
		ByDate:        dates.sorted(),
		ByService:     names.sorted(),
		RecordCount:   len(records),
		ClientCount:   len(clients),
	}
}

func ExpenseBreakdown(expenses []ExpenseRow, totalIncome int64) ExpenseAnalytics {
	dates := newDateGroups()
	names := newNameGroups()

	var total int64
	for _, e := range expenses {
		total += e.Amount
		dates.add(e.Date, e.Amount)
		names.add(e.Name, e.Amount)
	}

	return ExpenseAnalytics{
		Total:          total,
		ExpensePercent: Percent(total, total+totalIncome),
		ByDate:         dates.sorted(),
		ByName:         names.sorted(),
		Count:          len(expenses),
	}
}

type dateGroups map[string]*DateTotal

func newDateGroups() dateGroups { return dateGroups{} }

func (g dateGroups) add(date string, amount int64) {
	d, ok := g[date]
	if !ok {
		d = &DateTotal{Date: date}
		g[date] = d
	}
	d.Total += amount
	d.Count++
}

func (g dateGroups) sorted() []DateTotal {
	out := make([]DateTotal, 0, len(g))
	for _, d := range g {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

type nameGroups map[string]*NameTotal

func newNameGroups() nameGroups { return nameGroups{} }

func (g nameGroups) add(name string, amount int64) {
	n, ok := g[name]
	if !ok {
		n = &NameTotal{Name: name}
		g[name] = n
	}
	n.Total += amount
	n.Count++
}

// sorted orders by total desc, name asc on ties.
func (g nameGroups) sorted() []NameTotal {
	out := make([]NameTotal, 0, len(g))
	for _, n := range g {
		out = append(out, *n)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// ===============================
// Clients
// ===============================

type ClientSpend struct {
	ClientID     uint   `json:"clientId"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	TotalSpent   int64  `json:"totalSpent"`
	ServiceCount int    `json:"serviceCount"`
}

type ClientAnalytics struct {
	Clients []ClientSpend `json:"clients"`
}

// Clients ranks clients of done records by spend. Records without a client
// are skipped.
func Clients(records []RecordRow) ClientAnalytics {
	byClient := map[uint]*ClientSpend{}
	for _, r := range records {
		if r.Status != string(record.StatusDone) || r.ClientID == nil {
			continue
		}
		cs, ok := byClient[*r.ClientID]
		if !ok {
			cs = &ClientSpend{ClientID: *r.ClientID, Name: r.ClientName, Phone: r.ClientPhone}
			byClient[*r.ClientID] = cs
		}
		cs.TotalSpent += r.Revenue()
		cs.ServiceCount++
	}

	out := make([]ClientSpend, 0, len(byClient))
	for _, cs := range byClient {
		out = append(out, *cs)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalSpent != out[j].TotalSpent {
			return out[i].TotalSpent > out[j].TotalSpent
		}
		return out[i].ClientID < out[j].ClientID
	})
	return ClientAnalytics{Clients: out}
}

// ===============================
// Employee workload
// ===============================

type WorkloadEntry struct {
	CompletionID uint   `json:"completionId"`
	RecordID     uint   `json:"recordId"`
	ServiceName  string `json:"serviceName"`
	Time         string `json:"time"`
	PatientCount int    `json:"patientCount"`
	ClientName   string `json:"clientName"`
}

type WorkloadDay struct {
	Date        string          `json:"date"`
	Patients    int             `json:"patients"`
	Completions []WorkloadEntry `json:"completions"`
}

type EmployeeWorkload struct {
	EmployeeID       uint          `json:"employeeId"`
	FullName         string        `json:"fullName"`
	TotalPatients    int           `json:"totalPatients"`
	TotalCompletions int           `json:"totalCompletions"`
	Days             []WorkloadDay `json:"days"`
}

// Workload groups an employee's completions by record date. Patients come
// from each completion, not from the record.
func Workload(
	employeeID uint,
	fullName string,
	completions []CompletionRow,
) EmployeeWorkload {
	out := EmployeeWorkload{
		EmployeeID: employeeID,
		FullName:   fullName,
		Days:       []WorkloadDay{},
	}

	index := map[string]int{}
	for _, c := range completions {
		if c.EmployeeID != employeeID {
			continue
		}
		i, ok := index[c.RecordDate]
		if !ok {
			out.Days = append(out.Days, WorkloadDay{Date: c.RecordDate})
			i = len(out.Days) - 1
			index[c.RecordDate] = i
		}
		day := &out.Days[i]
		day.Patients += c.PatientCount
		day.Completions = append(day.Completions, WorkloadEntry{
			CompletionID: c.CompletionID,
			RecordID:     c.RecordID,
			ServiceName:  c.ServiceName,
			Time:         c.RecordTime,
			PatientCount: c.PatientCount,
			ClientName:   c.ClientName,
		})

		out.TotalPatients += c.PatientCount
		out.TotalCompletions++
	}

	sort.Slice(out.Days, func(i, j int) bool { return out.Days[i].Date < out.Days[j].Date })
	for _, d := range out.Days {
		sort.SliceStable(d.Completions, func(i, j int) bool {
			return d.Completions[i].Time < d.Completions[j].Time
		})
	}
	return out
}
