package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func i64(v int64) *int64 { return &v }
func uptr(v uint) *uint { return &v }

func TestPercent(t *testing.T) {
	assert.Equal(t, 0, Percent(0, 0))
	assert.Equal(t, 0, Percent(50, 0))
	assert.Equal(t, 100, Percent(10, 10))
	assert.Equal(t, 33, Percent(1, 3))
	assert.Equal(t, 67, Percent(2, 3))
}

// Record of 3 done by two employees (2 + 1) is worth price * 3, once.
func TestEmployeeStats_RevenueCountedOncePerRecord(t *testing.T) {
	completions := []CompletionRow{
		{CompletionID: 2, RecordID: 7, EmployeeID: 2, EmployeeName: "Bruno", PatientCount: 1, RecordPatientCount: 3, ServicePrice: 100},
		{CompletionID: 1, RecordID: 7, EmployeeID: 1, EmployeeName: "Ana", PatientCount: 2, RecordPatientCount: 3, ServicePrice: 100},
	}

	stats := EmployeeStats(completions)
	require.Len(t, stats, 2)

	var completed int
	var revenue int64
	for _, s := range stats {
		completed += s.CompletedServices
		revenue += s.Revenue
		assert.Equal(t, 1, s.CompletedServices)
	}
	assert.Equal(t, 2, completed)
	assert.Equal(t, int64(300), revenue)

	assert.Equal(t, "Ana", stats[0].FullName)
	assert.Equal(t, int64(300), stats[0].Revenue)
	assert.Equal(t, int64(0), stats[1].Revenue)
}

func TestEmployeeStats_PrefersCapturedIncome(t *testing.T) {
	stats := EmployeeStats([]CompletionRow{
		{CompletionID: 1, RecordID: 1, EmployeeID: 1, EmployeeName: "Ana", RecordPatientCount: 2, ServicePrice: 150, IncomeAmount: i64(200)},
	})
	require.Len(t, stats, 1)
	assert.Equal(t, int64(200), stats[0].Revenue)
}

func TestMonthly(t *testing.T) {
	m := Monthly(500, 120, 3, nil)

	assert.Equal(t, int64(380), m.Result)
	assert.Equal(t, 3, m.UniqueClients)
	assert.NotNil(t, m.EmployeeStats)
	assert.Empty(t, m.EmployeeStats)
}

func TestIncomeBreakdown(t *testing.T) {
	incomes := []IncomeRow{
		{ID: 1, Date: "2024-03-10", Name: "Consultation (2 patients)", Amount: 200, RecordID: uptr(1), ServiceName: "Consultation", ClientID: uptr(10)},
		{ID: 2, Date: "2024-03-10", Name: "Therapy (1 patient)", Amount: 250, RecordID: uptr(2), ServiceName: "Therapy", ClientID: uptr(10)},
		{ID: 3, Date: "2024-03-11", Name: "Gift card", Amount: 50},
	}

	out := IncomeBreakdown(incomes, 500)

	assert.Equal(t, int64(500), out.Total)
	assert.Equal(t, 50, out.IncomePercent)
	assert.Equal(t, 2, out.RecordCount)
	assert.Equal(t, 1, out.ClientCount)

	require.Len(t, out.ByDate, 2)
	assert.Equal(t, DateTotal{Date: "2024-03-10", Total: 450, Count: 2}, out.ByDate[0])
	assert.Equal(t, DateTotal{Date: "2024-03-11", Total: 50, Count: 1}, out.ByDate[1])

	require.Len(t, out.ByService, 3)
	assert.Equal(t, "Therapy", out.ByService[0].Name)
	assert.Equal(t, "Consultation", out.ByService[1].Name)
	assert.Equal(t, "Gift card", out.ByService[2].Name)
}

func TestExpenseBreakdown_ZeroTotals(t *testing.T) {
	out := ExpenseBreakdown(nil, 0)

	assert.Equal(t, int64(0), out.Total)
	assert.Equal(t, 0, out.ExpensePercent)
	assert.NotNil(t, out.ByDate)
	assert.NotNil(t, out.ByName)
}

func TestExpenseBreakdown(t *testing.T) {
	out := ExpenseBreakdown([]ExpenseRow{
		{Date: "2024-03-01", Name: "Rent", Amount: 300},
		{Date: "2024-03-02", Name: "Gloves", Amount: 20},
		{Date: "2024-03-02", Name: "Gloves", Amount: 30},
	}, 650)

	assert.Equal(t, int64(350), out.Total)
	assert.Equal(t, 35, out.ExpensePercent)
	assert.Equal(t, 3, out.Count)
	assert.Equal(t, NameTotal{Name: "Rent", Total: 300, Count: 1}, out.ByName[0])
	assert.Equal(t, NameTotal{Name: "Gloves", Total: 50, Count: 2}, out.ByName[1])
}

func TestClients_DoneOnlyRankedBySpend(t *testing.T) {
	records := []RecordRow{
		{ID: 1, Status: "done", ClientID: uptr(10), ClientName: "Maria", ServicePrice: 100, PatientCount: 1},
		{ID: 2, Status: "done", ClientID: uptr(11), ClientName: "Joao", ServicePrice: 100, PatientCount: 3},
		{ID: 3, Status: "pending", ClientID: uptr(10), ClientName: "Maria", ServicePrice: 900, PatientCount: 1},
		{ID: 4, Status: "done", ServicePrice: 100, PatientCount: 1},
		{ID: 5, Status: "done", ClientID: uptr(10), ClientName: "Maria", ServicePrice: 100, PatientCount: 1, IncomeAmount: i64(80)},
	}

	out := Clients(records)

	require.Len(t, out.Clients, 2)
	assert.Equal(t, ClientSpend{ClientID: 11, Name: "Joao", TotalSpent: 300, ServiceCount: 1}, out.Clients[0])
	assert.Equal(t, ClientSpend{ClientID: 10, Name: "Maria", TotalSpent: 180, ServiceCount: 2}, out.Clients[1])
}

func TestWorkload_UsesCompletionPatients(t *testing.T) {
	completions := []CompletionRow{
		{CompletionID: 3, RecordID: 2, EmployeeID: 1, PatientCount: 1, RecordDate: "2024-03-11", RecordTime: "09:00", RecordPatientCount: 5, ServiceName: "Therapy"},
		{CompletionID: 1, RecordID: 1, EmployeeID: 1, PatientCount: 2, RecordDate: "2024-03-10", RecordTime: "14:00", RecordPatientCount: 4, ServiceName: "Consultation", ClientName: "Maria"},
		{CompletionID: 2, RecordID: 3, EmployeeID: 1, PatientCount: 1, RecordDate: "2024-03-10", RecordTime: "08:30", RecordPatientCount: 1, ServiceName: "Consultation"},
		{CompletionID: 4, RecordID: 1, EmployeeID: 9, PatientCount: 2, RecordDate: "2024-03-10"},
	}

	w := Workload(1, "Ana", completions)

	assert.Equal(t, 4, w.TotalPatients)
	assert.Equal(t, 3, w.TotalCompletions)
	require.Len(t, w.Days, 2)

	assert.Equal(t, "2024-03-10", w.Days[0].Date)
	assert.Equal(t, 3, w.Days[0].Patients)
	require.Len(t, w.Days[0].Completions, 2)
	assert.Equal(t, "08:30", w.Days[0].Completions[0].Time)
	assert.Equal(t, "Maria", w.Days[0].Completions[1].ClientName)

	assert.Equal(t, "2024-03-11", w.Days[1].Date)
	assert.Equal(t, 1, w.Days[1].Patients)
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("")
	require.NoError(t, err)
	assert.Equal(t, PeriodMonth, p)

	p, err = ParsePeriod("year")
	require.NoError(t, err)
	assert.Equal(t, "2024", p.Key("2024-03-10"))

	_, err = ParsePeriod("week")
	assert.Error(t, err)
}

func TestAssembleReport(t *testing.T) {
	rep := AssembleReport(ReportInput{
		Start:  "2024-03-01",
		End:    "2024-04-30",
		Period: PeriodMonth,
		Records: []RecordRow{
			{ID: 1, Date: "2024-03-10", Status: "done", ClientID: uptr(10), ClientName: "Maria", ServiceName: "Consultation", ServicePrice: 100, PatientCount: 4, IncomeAmount: i64(400)},
			{ID: 2, Date: "2024-04-02", Status: "canceled", ClientID: uptr(11), ClientName: "Joao", ServiceName: "Therapy", ServicePrice: 250, PatientCount: 1},
		},
		Incomes: []IncomeRow{
			{ID: 1, Date: "2024-03-10", Amount: 400, RecordID: uptr(1)},
			{ID: 2, Date: "2024-04-05", Amount: 100},
		},
		Expenses: []ExpenseRow{
			{ID: 1, Date: "2024-04-01", Name: "Rent", Amount: 300},
		},
		Completions: []CompletionRow{
			{CompletionID: 1, RecordID: 1, EmployeeID: 1, EmployeeName: "Ana", PatientCount: 3, RecordPatientCount: 4, ServicePrice: 100, IncomeAmount: i64(400)},
			{CompletionID: 2, RecordID: 1, EmployeeID: 2, EmployeeName: "Bruno", PatientCount: 1, RecordPatientCount: 4, ServicePrice: 100, IncomeAmount: i64(400)},
		},
	})

	assert.Equal(t, Summary{TotalIncome: 500, TotalExpense: 300, Result: 200, IncomePercent: 63, UniqueClients: 1}, rep.Summary)

	require.Len(t, rep.Periods, 2)
	assert.Equal(t, PeriodRow{Label: "2024-03", Income: 400, Result: 400}, rep.Periods[0])
	assert.Equal(t, PeriodRow{Label: "2024-04", Income: 100, Expense: 300, Result: -200}, rep.Periods[1])

	assert.Equal(t, []Rollup{{Name: "Maria", Count: 1, PatientCount: 4, Total: 400}}, rep.Clients)
	assert.Equal(t, []Rollup{{Name: "Consultation", Count: 1, PatientCount: 4, Total: 400}}, rep.Services)
	assert.Equal(t, []Rollup{
		{Name: "Ana", Count: 1, PatientCount: 3, Total: 400},
		{Name: "Bruno", Count: 1, PatientCount: 1, Total: 0},
	}, rep.Employees)

	assert.Len(t, rep.Records, 2)
	assert.Len(t, rep.Incomes, 2)
}
