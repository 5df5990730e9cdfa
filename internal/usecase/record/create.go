package record

import (
	"context"

	"github.com/BruksfildServices01/clinic-ledger/internal/audit"
	domain "github.com/BruksfildServices01/clinic-ledger/internal/domain/record"
	"github.com/BruksfildServices01/clinic-ledger/internal/httperr"
	"github.com/BruksfildServices01/clinic-ledger/internal/models"
	"github.com/BruksfildServices01/clinic-ledger/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateRecordInput struct {
	ActorID uint

	ClientID  *uint
	ServiceID uint

	Date string
	Time string

	Reminder     bool
	PatientCount int
}

// ======================================================
// USE CASE
// ======================================================

type CreateRecord struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateRecord(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateRecord {
	return &CreateRecord{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateRecord) Execute(
	ctx context.Context,
	in CreateRecordInput,
) (*models.Record, error) {

	// --------------------------------------------------
	// 1️⃣ Input
	// --------------------------------------------------
	if in.ServiceID == 0 {
		return nil, httperr.ErrBusiness("service_required")
	}
	if err := domain.ValidatePatientCount(in.PatientCount); err != nil {
		return nil, err
	}
	if _, err := timezone.ParseDay(in.Date); err != nil {
		return nil, err
	}
	if err := timezone.ParseClock(in.Time); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ References
	// --------------------------------------------------
	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if !svc.Active {
		return nil, httperr.ErrBusiness("service_inactive")
	}

	var client *models.Client
	if in.ClientID != nil {
		if client, err = uc.repo.GetClient(ctx, *in.ClientID); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 3️⃣ Record (no employee: work is claimed via completions)
	// --------------------------------------------------
	rec := &models.Record{
		Date:         in.Date,
		Time:         in.Time,
		ClientID:     in.ClientID,
		ServiceID:    svc.ID,
		Status:       string(domain.InitialStatus()),
		Reminder:     in.Reminder,
		PatientCount: in.PatientCount,
	}

	if err := uc.repo.CreateRecord(ctx, rec); err != nil {
		return nil, err
	}

	rec.Service = *svc
	rec.Client = client

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "record_created",
		Entity:   "record",
		EntityID: &rec.ID,
	})

	return rec, nil
}
