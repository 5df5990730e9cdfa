package ledger

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/clinic-ledger/internal/metrics"
	"github.com/BruksfildServices01/clinic-ledger/internal/models"
)

// Store is the part of the record repository the generator writes through.
// Pass the transaction-bound repository so the insert commits together with
// the status change or completion that triggered it.
type Store interface {
	InsertRecordIncome(ctx context.Context, inc *models.Income) (bool, error)
	GetRecordIncome(ctx context.Context, recordID uint) (*models.Income, error)
}

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func Amount(price int64, patientCount int) int64 {
	return price * int64(patientCount)
}

func IncomeName(serviceName string, patientCount int) string {
	if patientCount == 1 {
		return fmt.Sprintf("%s (1 patient)", serviceName)
	}
	return fmt.Sprintf("%s (%d patients)", serviceName, patientCount)
}

// EnsureRecordIncome makes sure the record has its generated income. The
// amount uses the record's booked patient count, never a completion's.
// Returns the income and whether this call created it.
func (g *Generator) EnsureRecordIncome(
	ctx context.Context,
	store Store,
	rec *models.Record,
	svc *models.Service,
) (*models.Income, bool, error) {

	recordID := rec.ID
	inc := &models.Income{
		Date:     rec.Date,
		Time:     rec.Time,
		Name:     IncomeName(svc.Name, rec.PatientCount),
		Amount:   Amount(svc.Price, rec.PatientCount),
		RecordID: &recordID,
	}

	created, err := store.InsertRecordIncome(ctx, inc)
	if err != nil {
		return nil, false, err
	}

	if created {
		metrics.IncomesGenerated.Inc()
		log.Info().
			Uint("record_id", rec.ID).
			Int64("amount", inc.Amount).
			Msg("record income generated")
		return inc, true, nil
	}

	existing, err := store.GetRecordIncome(ctx, rec.ID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}
