package record

import (
	"context"

	"github.com/BruksfildServices01/clinic-ledger/internal/models"
	"github.com/BruksfildServices01/clinic-ledger/internal/timezone"
)

type Repository interface {
	// Transaction runs fn against a repository bound to one database
	// transaction. Returning an error rolls back.
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// -------- Catalog --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	GetClient(
		ctx context.Context,
		id uint,
	) (*models.Client, error)

	GetUser(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Record --------
	CreateRecord(
		ctx context.Context,
		rec *models.Record,
	) error

	GetRecord(
		ctx context.Context,
		id uint,
	) (*models.Record, error)

	// GetRecordForUpdate loads the record with a row lock held until the
	// surrounding transaction ends.
	GetRecordForUpdate(
		ctx context.Context,
		id uint,
	) (*models.Record, error)

	SaveRecord(
		ctx context.Context,
		rec *models.Record,
	) error

	ListRecords(
		ctx context.Context,
		r timezone.Range,
	) ([]models.Record, error)

	// DeleteRecordCascade removes completions and linked incomes, then the
	// record itself.
	DeleteRecordCascade(
		ctx context.Context,
		id uint,
	) error

	// -------- Completion --------
	CreateCompletion(
		ctx context.Context,
		c *models.RecordCompletion,
	) error

	ListCompletions(
		ctx context.Context,
		recordID uint,
	) ([]models.RecordCompletion, error)

	// -------- Ledger --------
	// InsertRecordIncome inserts inc unless an income already exists for
	// inc.RecordID. It reports whether a row was written.
	InsertRecordIncome(
		ctx context.Context,
		inc *models.Income,
	) (bool, error)

	GetRecordIncome(
		ctx context.Context,
		recordID uint,
	) (*models.Income, error)
}
