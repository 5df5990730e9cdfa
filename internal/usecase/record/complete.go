package record

import (
	"context"

	"github.com/BruksfildServices01/clinic-ledger/internal/audit"
	domain "github.com/BruksfildServices01/clinic-ledger/internal/domain/record"
	"github.com/BruksfildServices01/clinic-ledger/internal/metrics"
	"github.com/BruksfildServices01/clinic-ledger/internal/models"
	"github.com/BruksfildServices01/clinic-ledger/internal/timezone"
	"github.com/BruksfildServices01/clinic-ledger/internal/usecase/ledger"
)

type CompleteRecord struct {
	repo   domain.Repository
	ledger *ledger.Generator
	audit  *audit.Dispatcher
}

func NewCompleteRecord(
	repo domain.Repository,
	gen *ledger.Generator,
	audit *audit.Dispatcher,
) *CompleteRecord {
	return &CompleteRecord{
		repo:   repo,
		ledger: gen,
		audit:  audit,
	}
}

// Execute appends a completion for employeeID. The record row stays locked
// for the whole transaction, so concurrent completions of the same record
// run one after the other; the income insert is constraint-backed as well.
func (uc *CompleteRecord) Execute(
	ctx context.Context,
	recordID uint,
	employeeID uint,
	patientCount int,
) (*models.RecordCompletion, error) {

	var (
		completion *models.RecordCompletion
		generated  bool
	)

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		rec, err := tx.GetRecordForUpdate(ctx, recordID)
		if err != nil {
			return err
		}

		if err := domain.ValidateCompletion(rec, patientCount); err != nil {
			return err
		}

		employee, err := tx.GetUser(ctx, employeeID)
		if err != nil {
			return err
		}

		completion = &models.RecordCompletion{
			RecordID:     rec.ID,
			EmployeeID:   employee.ID,
			PatientCount: patientCount,
		}
		if err := tx.CreateCompletion(ctx, completion); err != nil {
			return err
		}
		completion.Employee = *employee

		if domain.ApplyCompletion(rec, timezone.Now()) {
			if err := tx.SaveRecord(ctx, rec); err != nil {
				return err
			}
		}

		_, generated, err = uc.ledger.EnsureRecordIncome(ctx, tx, rec, &rec.Service)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordCompletions.Inc()

	uc.audit.Dispatch(audit.Event{
		UserID:   &employeeID,
		Action:   "record_completed",
		Entity:   "record",
		EntityID: &completion.RecordID,
		Metadata: map[string]any{
			"completion_id":    completion.ID,
			"patient_count":    patientCount,
			"income_generated": generated,
		},
	})

	return completion, nil
}
