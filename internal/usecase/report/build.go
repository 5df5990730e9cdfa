package report

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-ledger/internal/domain/analytics"
	"github.com/BruksfildServices01/clinic-ledger/internal/httperr"
	"github.com/BruksfildServices01/clinic-ledger/internal/timezone"
)

type BuildReport struct {
	repo    domain.Repository
	maxDays int
}

// NewBuildReport bounds the range to maxDays; zero or less means unbounded.
func NewBuildReport(repo domain.Repository, maxDays int) *BuildReport {
	return &BuildReport{
		repo:    repo,
		maxDays: maxDays,
	}
}

func (uc *BuildReport) Execute(
	ctx context.Context,
	start string,
	end string,
	period string,
) (*domain.Report, error) {

	// --------------------------------------------------
	// 1️⃣ Input
	// --------------------------------------------------
	r, err := timezone.ParseRange(start, end)
	if err != nil {
		return nil, err
	}
	if uc.maxDays > 0 && r.Days() > uc.maxDays {
		return nil, httperr.ErrBusiness("report_range_too_large")
	}
	p, err := domain.ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Rows
	// --------------------------------------------------
	records, err := uc.repo.ListRecords(ctx, r, "")
	if err != nil {
		return nil, err
	}
	incomes, err := uc.repo.ListIncomes(ctx, r)
	if err != nil {
		return nil, err
	}
	expenses, err := uc.repo.ListExpenses(ctx, r)
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

	// --------------------------------------------------
	// 3️⃣ Assemble
	// --------------------------------------------------
	rep := domain.AssembleReport(domain.ReportInput{
		Start:       r.Start,
		End:         r.End,
		Period:      p,
		Records:     records,
		Incomes:     incomes,
		Expenses:    expenses,
		Completions: completions,
	})
	return &rep, nil
}
