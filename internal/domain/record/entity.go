package record

import (
	"time"

	"github.com/BruksfildServices01/clinic-ledger/internal/httperr"
	"github.com/BruksfildServices01/clinic-ledger/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func ValidatePatientCount(n int) error {
	if n < 1 {
		return httperr.ErrBusiness("invalid_patient_count")
	}
	return nil
}

// ValidateCompletion checks 1 ≤ patientCount ≤ record.PatientCount.
func ValidateCompletion(rec *models.Record, patientCount int) error {
	if err := CanComplete(Status(rec.Status)); err != nil {
		return err
	}
	if err := ValidatePatientCount(patientCount); err != nil {
		return err
	}
	if patientCount > rec.PatientCount {
		return httperr.ErrBusiness("patient_count_exceeds_record")
	}
	return nil
}

// ApplyStatus moves rec to the target status. It reports whether the record
// has just become done, which is when the ledger must be consulted.
func ApplyStatus(rec *models.Record, to Status, now time.Time) (bool, error) {
	from := Status(rec.Status)
	if err := CanTransition(from, to); err != nil {
		return false, err
	}
	if from == to {
		return false, nil
	}

	rec.Status = string(to)
	switch to {
	case StatusDone:
		rec.CompletedAt = &now
		return true, nil
	case StatusCanceled:
		rec.CancelledAt = &now
	}
	return false, nil
}

// ApplyCompletion marks a pending record done on its first completion.
func ApplyCompletion(rec *models.Record, now time.Time) bool {
	if Status(rec.Status) != StatusPending {
		return false
	}
	rec.Status = string(StatusDone)
	rec.CompletedAt = &now
	return true
}

// MaxCompletion returns the largest patient count among completions.
func MaxCompletion(completions []models.RecordCompletion) int {
	max := 0
	for _, c := range completions {
		if c.PatientCount > max {
			max = c.PatientCount
		}
	}
	return max
}
