package analytics

import (
	"context"

	"github.com/BruksfildServices01/clinic-ledger/internal/models"
	"github.com/BruksfildServices01/clinic-ledger/internal/timezone"
)

// CompletionFilter narrows completion reads. Empty Start/End leave that side
// of the range open.
type CompletionFilter struct {
	Start      string
	End        string
	EmployeeID *uint
	ServiceID  *uint
}

type Repository interface {
	SumIncome(
		ctx context.Context,
		r timezone.Range,
	) (int64, error)

	SumExpense(
		ctx context.Context,
		r timezone.Range,
	) (int64, error)

	// CountDoneClients counts distinct clients of done records in range.
	CountDoneClients(
		ctx context.Context,
		r timezone.Range,
	) (int, error)

	// ListCompletions returns completions ordered by id, joined with their
	// record, service, client, employee and generated income.
	ListCompletions(
		ctx context.Context,
		f CompletionFilter,
	) ([]CompletionRow, error)

	// ListRecords returns records in range; an empty status means all.
	ListRecords(
		ctx context.Context,
		r timezone.Range,
		status string,
	) ([]RecordRow, error)

	ListIncomes(
		ctx context.Context,
		r timezone.Range,
	) ([]IncomeRow, error)

	ListExpenses(
		ctx context.Context,
		r timezone.Range,
	) ([]ExpenseRow, error)

	GetEmployee(
		ctx context.Context,
		id uint,
	) (*models.User, error)
}
