package record

import (
	"context"

	"github.com/BruksfildServices01/clinic-ledger/internal/audit"
	domain "github.com/BruksfildServices01/clinic-ledger/internal/domain/record"
	"github.com/BruksfildServices01/clinic-ledger/internal/httperr"
	"github.com/BruksfildServices01/clinic-ledger/internal/models"
	"github.com/BruksfildServices01/clinic-ledger/internal/timezone"
	"github.com/BruksfildServices01/clinic-ledger/internal/usecase/ledger"
)

// UpdateRecordInput carries a partial update; nil fields are left alone.
type UpdateRecordInput struct {
	ActorID  uint
	RecordID uint

	Date         *string
	Time         *string
	ClientID     *uint
	ClearClient  bool
	ServiceID    *uint
	PatientCount *int
	Reminder     *bool
	Status       *string
}

type UpdateRecord struct {
	repo   domain.Repository
	ledger *ledger.Generator
	audit  *audit.Dispatcher
}

func NewUpdateRecord(
	repo domain.Repository,
	gen *ledger.Generator,
	audit *audit.Dispatcher,
) *UpdateRecord {
	return &UpdateRecord{
		repo:   repo,
		ledger: gen,
		audit:  audit,
	}
}

// Execute applies the update. Income is only touched when the status moves
// to done, and then only through the generator's exactly-once insert.
func (uc *UpdateRecord) Execute(
	ctx context.Context,
	in UpdateRecordInput,
) (*models.Record, error) {

	var (
		updated   *models.Record
		generated bool
	)

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		rec, err := tx.GetRecordForUpdate(ctx, in.RecordID)
		if err != nil {
			return err
		}

		scheduleChanged := false

		if in.Date != nil && *in.Date != rec.Date {
			if _, err := timezone.ParseDay(*in.Date); err != nil {
				return err
			}
			rec.Date = *in.Date
			scheduleChanged = true
		}

		if in.Time != nil && *in.Time != rec.Time {
			if err := timezone.ParseClock(*in.Time); err != nil {
				return err
			}
			rec.Time = *in.Time
			scheduleChanged = true
		}

		if in.ClearClient {
			rec.ClientID = nil
			rec.Client = nil
		} else if in.ClientID != nil {
			client, err := tx.GetClient(ctx, *in.ClientID)
			if err != nil {
				return err
			}
			rec.ClientID = &client.ID
			rec.Client = client
		}

		if in.ServiceID != nil && *in.ServiceID != rec.ServiceID {
			svc, err := tx.GetService(ctx, *in.ServiceID)
			if err != nil {
				return err
			}
			if !svc.Active {
				return httperr.ErrBusiness("service_inactive")
			}
			rec.ServiceID = svc.ID
			rec.Service = *svc
		}

		if in.PatientCount != nil {
			if err := uc.applyPatientCount(ctx, tx, rec, *in.PatientCount); err != nil {
				return err
			}
		}

		if in.Reminder != nil {
			rec.Reminder = *in.Reminder
		}

		// a rescheduled record gets a fresh reminder
		if scheduleChanged {
			rec.NotificationSentAt = nil
		}

		becameDone := false
		if in.Status != nil {
			to, err := domain.ParseStatus(*in.Status)
			if err != nil {
				return err
			}
			if becameDone, err = domain.ApplyStatus(rec, to, timezone.Now()); err != nil {
				return err
			}
		}

		if err := tx.SaveRecord(ctx, rec); err != nil {
			return err
		}

		if becameDone {
			_, created, err := uc.ledger.EnsureRecordIncome(ctx, tx, rec, &rec.Service)
			if err != nil {
				return err
			}
			generated = created
		}

		updated = rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "record_updated",
		Entity:   "record",
		EntityID: &updated.ID,
		Metadata: map[string]any{
			"status":           updated.Status,
			"income_generated": generated,
		},
	})

	return updated, nil
}

// The booked count may not drop below what a single employee already
// reported for this record.
func (uc *UpdateRecord) applyPatientCount(
	ctx context.Context,
	tx domain.Repository,
	rec *models.Record,
	n int,
) error {
	if err := domain.ValidatePatientCount(n); err != nil {
		return err
	}
	if n < rec.PatientCount {
		completions, err := tx.ListCompletions(ctx, rec.ID)
		if err != nil {
			return err
		}
		if domain.MaxCompletion(completions) > n {
			return httperr.ErrBusiness("patient_count_below_completions")
		}
	}
	rec.PatientCount = n
	return nil
}
