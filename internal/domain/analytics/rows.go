package analytics

// Row types are flat projections read by the analytics repository. They carry
// just enough of the joined entities for the aggregations in this package.

type CompletionRow struct {
	CompletionID uint
	RecordID     uint
	EmployeeID   uint
	EmployeeName string
	PatientCount int

	RecordDate         string
	RecordTime         string
	RecordPatientCount int

	ServiceID    uint
	ServiceName  string
	ServicePrice int64

	ClientName string

	// IncomeAmount is the record's generated income, when one exists.
	IncomeAmount *int64
}

// Revenue is what the record behind this completion is worth.
func (r CompletionRow) Revenue() int64 {
	return revenue(r.IncomeAmount, r.ServicePrice, r.RecordPatientCount)
}

type RecordRow struct {
	ID           uint   `json:"id"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Status       string `json:"status"`
	PatientCount int    `json:"patientCount"`

	ClientID    *uint  `json:"clientId"`
	ClientName  string `json:"clientName"`
	ClientPhone string `json:"clientPhone"`

	ServiceID    uint   `json:"serviceId"`
	ServiceName  string `json:"serviceName"`
	ServicePrice int64  `json:"servicePrice"`

	IncomeAmount *int64 `json:"incomeAmount"`
}

func (r RecordRow) Revenue() int64 {
	return revenue(r.IncomeAmount, r.ServicePrice, r.PatientCount)
}

type IncomeRow struct {
	ID       uint   `json:"id"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Name     string `json:"name"`
	Amount   int64  `json:"amount"`
	RecordID *uint  `json:"recordId"`

	// Filled for record-linked incomes only.
	ServiceName string `json:"serviceName,omitempty"`
	ClientID    *uint  `json:"clientId,omitempty"`
}

// Category is the service name for generated incomes and the entry name for
// manual ones.
func (r IncomeRow) Category() string {
	if r.ServiceName != "" {
		return r.ServiceName
	}
	return r.Name
}

type ExpenseRow struct {
	ID     uint   `json:"id"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

// The captured income wins over the current price so later price changes do
// not rewrite history.
func revenue(income *int64, price int64, patientCount int) int64 {
	if income != nil {
		return *income
	}
	return price * int64(patientCount)
}
