package analytics

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-ledger/internal/domain/analytics"
	"github.com/BruksfildServices01/clinic-ledger/internal/timezone"
)

type GetMonthlyAnalytics struct {
	repo domain.Repository
}

func NewGetMonthlyAnalytics(repo domain.Repository) *GetMonthlyAnalytics {
	return &GetMonthlyAnalytics{repo: repo}
}

func (uc *GetMonthlyAnalytics) Execute(
	ctx context.Context,
	start string,
	end string,
) (*domain.MonthlyAnalytics, error) {

	r, err := timezone.ParseRange(start, end)
	if err != nil {
		return nil, err
	}

	income, err := uc.repo.SumIncome(ctx, r)
	if err != nil {
		return nil, err
	}
	expense, err := uc.repo.SumExpense(ctx, r)
	if err != nil {
		return nil, err
	}
	clients, err := uc.repo.CountDoneClients(ctx, r)
	if err != nil {
		return nil, err
	}
	completions, err := uc.repo.ListCompletions(ctx, domain.CompletionFilter{
		Start: r.Start,
		End:   r.End,
	})
	if err != nil {
		return nil, err
	}

	out := domain.Monthly(income, expense, clients, completions)
	return &out, nil
}
