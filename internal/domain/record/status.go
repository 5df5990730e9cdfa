package record

import "github.com/BruksfildServices01/clinic-ledger/internal/httperr"

// ===============================
// Record Status
// ===============================

type Status string

const (
	StatusPending  Status = "pending"
	StatusDone     Status = "done"
	StatusCanceled Status = "canceled"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusDone, StatusCanceled:
		return Status(s), nil
	}
	return "", httperr.ErrBusiness("invalid_status")
}

func InitialStatus() Status {
	return StatusPending
}

// ===============================
// Validations
// ===============================

// CanTransition allows pending → done and pending → canceled. Terminal
// states cannot be left; setting the current status again is a no-op.
func CanTransition(from, to Status) error {
	if from == to {
		return nil
	}
	if from == StatusPending && (to == StatusDone || to == StatusCanceled) {
		return nil
	}
	return httperr.ErrBusiness("invalid_status_transition")
}

// CanComplete rejects completions on canceled records. Done records keep
// accepting completions from other employees.
func CanComplete(current Status) error {
	if current == StatusCanceled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}
