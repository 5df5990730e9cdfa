package record

import (
	"context"

	"github.com/BruksfildServices01/clinic-ledger/internal/audit"
	domain "github.com/BruksfildServices01/clinic-ledger/internal/domain/record"
)

type DeleteRecord struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteRecord(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteRecord {
	return &DeleteRecord{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteRecord) Execute(
	ctx context.Context,
	actorID uint,
	recordID uint,
) error {

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if _, err := tx.GetRecordForUpdate(ctx, recordID); err != nil {
			return err
		}
		return tx.DeleteRecordCascade(ctx, recordID)
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "record_deleted",
		Entity:   "record",
		EntityID: &recordID,
	})

	return nil
}
