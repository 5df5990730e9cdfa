package analytics

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-ledger/internal/domain/analytics"
	"github.com/BruksfildServices01/clinic-ledger/internal/timezone"
)

// ======================================================
// INCOME
// ======================================================

type GetIncomeAnalytics struct {
	repo domain.Repository
}

func NewGetIncomeAnalytics(repo domain.Repository) *GetIncomeAnalytics {
	return &GetIncomeAnalytics{repo: repo}
}

func (uc *GetIncomeAnalytics) Execute(
	ctx context.Context,
	start string,
	end string,
) (*domain.IncomeAnalytics, error) {

	r, err := timezone.ParseRange(start, end)
	if err != nil {
		return nil, err
	}

	incomes, err := uc.repo.ListIncomes(ctx, r)
	if err != nil {
		return nil, err
	}
	expense, err := uc.repo.SumExpense(ctx, r)
	if err != nil {
		return nil, err
	}

	out := domain.IncomeBreakdown(incomes, expense)
	return &out, nil
}

// ======================================================
// EXPENSE
// ======================================================

type GetExpenseAnalytics struct {
	repo domain.Repository
}

func NewGetExpenseAnalytics(repo domain.Repository) *GetExpenseAnalytics {
	return &GetExpenseAnalytics{repo: repo}
}

func (uc *GetExpenseAnalytics) Execute(
	ctx context.Context,
	start string,
	end string,
) (*domain.ExpenseAnalytics, error) {

	r, err := timezone.ParseRange(start, end)
	if err != nil {
		return nil, err
	}

	expenses, err := uc.repo.ListExpenses(ctx, r)
	if err != nil {
		return nil, err
	}
	income, err := uc.repo.SumIncome(ctx, r)
	if err != nil {
		return nil, err
	}

	out := domain.ExpenseBreakdown(expenses, income)
	return &out, nil
}
