package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-ledger/internal/httperr"
)

// Postgres error codes the API reports as something other than a 500.
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
)

// translate turns driver errors into domain errors. notFound is the code used
// for gorm.ErrRecordNotFound; business errors pass through unchanged.
func translate(err error, notFound string) error {
	if err == nil {
		return nil
	}

	var be httperr.BusinessError
	if errors.As(err, &be) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrNotFound(notFound)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return httperr.ErrBusiness("duplicate_entry")
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return httperr.ErrReferential("referenced_row", nil)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return httperr.ErrBusiness("duplicate_entry")
		case pgForeignKeyViolation:
			return httperr.ErrReferential("referenced_row", map[string]any{
				"constraint": pgErr.ConstraintName,
			})
		case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
			return httperr.ErrConcurrency("concurrent_update")
		}
	}

	return err
}
