package analytics

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-ledger/internal/domain/analytics"
	"github.com/BruksfildServices01/clinic-ledger/internal/domain/record"
	"github.com/BruksfildServices01/clinic-ledger/internal/timezone"
)

type GetClientAnalytics struct {
	repo domain.Repository
}

func NewGetClientAnalytics(repo domain.Repository) *GetClientAnalytics {
	return &GetClientAnalytics{repo: repo}
}

func (uc *GetClientAnalytics) Execute(
	ctx context.Context,
	start string,
	end string,
) (*domain.ClientAnalytics, error) {

	r, err := timezone.ParseRange(start, end)
	if err != nil {
		return nil, err
	}

	records, err := uc.repo.ListRecords(ctx, r, string(record.StatusDone))
	if err != nil {
		return nil, err
	}

	out := domain.Clients(records)
	return &out, nil
}
