package record

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-ledger/internal/domain/record"
	"github.com/BruksfildServices01/clinic-ledger/internal/models"
	"github.com/BruksfildServices01/clinic-ledger/internal/timezone"
)

type ListRecords struct {
	repo domain.Repository
}

func NewListRecords(repo domain.Repository) *ListRecords {
	return &ListRecords{repo: repo}
}

func (uc *ListRecords) Execute(
	ctx context.Context,
	start string,
	end string,
) ([]models.Record, error) {

	r, err := timezone.ParseRange(start, end)
	if err != nil {
		return nil, err
	}
	return uc.repo.ListRecords(ctx, r)
}

type GetRecord struct {
	repo domain.Repository
}

func NewGetRecord(repo domain.Repository) *GetRecord {
	return &GetRecord{repo: repo}
}

func (uc *GetRecord) Execute(ctx context.Context, id uint) (*models.Record, error) {
	return uc.repo.GetRecord(ctx, id)
}

type ListRecordCompletions struct {
	repo domain.Repository
}

func NewListRecordCompletions(repo domain.Repository) *ListRecordCompletions {
	return &ListRecordCompletions{repo: repo}
}

func (uc *ListRecordCompletions) Execute(
	ctx context.Context,
	recordID uint,
) ([]models.RecordCompletion, error) {

	if _, err := uc.repo.GetRecord(ctx, recordID); err != nil {
		return nil, err
	}
	return uc.repo.ListCompletions(ctx, recordID)
}
