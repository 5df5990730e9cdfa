package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/clinic-ledger/internal/domain/record"
	"github.com/BruksfildServices01/clinic-ledger/internal/models"
	"github.com/BruksfildServices01/clinic-ledger/internal/timezone"
)

type RecordGormRepository struct {
	db *gorm.DB
}

func NewRecordGormRepository(db *gorm.DB) *RecordGormRepository {
	return &RecordGormRepository{db: db}
}

var _ domain.Repository = (*RecordGormRepository)(nil)

func (r *RecordGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&RecordGormRepository{db: tx})
	})
	return translate(err, "record_not_found")
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *RecordGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, translate(err, "service_not_found")
	}
	return &svc, nil
}

func (r *RecordGormRepository) GetClient(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, translate(err, "client_not_found")
	}
	return &client, nil
}

func (r *RecordGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err, "user_not_found")
	}
	return &user, nil
}

// --------------------------------------------------
// Record
// --------------------------------------------------

func (r *RecordGormRepository) CreateRecord(
	ctx context.Context,
	rec *models.Record,
) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(rec).Error
	return translate(err, "record_not_found")
}

func (r *RecordGormRepository) GetRecord(
	ctx context.Context,
	id uint,
) (*models.Record, error) {

	var rec models.Record
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		First(&rec, id).Error; err != nil {
		return nil, translate(err, "record_not_found")
	}
	return &rec, nil
}

// GetRecordForUpdate locks only the record row; service and client are read
// without a lock.
func (r *RecordGormRepository) GetRecordForUpdate(
	ctx context.Context,
	id uint,
) (*models.Record, error) {

	var rec models.Record
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&rec, id).Error; err != nil {
		return nil, translate(err, "record_not_found")
	}

	svc, err := r.GetService(ctx, rec.ServiceID)
	if err != nil {
		return nil, err
	}
	rec.Service = *svc

	if rec.ClientID != nil {
		if rec.Client, err = r.GetClient(ctx, *rec.ClientID); err != nil {
			return nil, err
		}
	}
	return &rec, nil
}

func (r *RecordGormRepository) SaveRecord(
	ctx context.Context,
	rec *models.Record,
) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(rec).Error
	return translate(err, "record_not_found")
}

func (r *RecordGormRepository) ListRecords(
	ctx context.Context,
	rg timezone.Range,
) ([]models.Record, error) {

	var out []models.Record
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where("date BETWEEN ? AND ?", rg.Start, rg.End).
		Order("date ASC, time ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *RecordGormRepository) DeleteRecordCascade(
	ctx context.Context,
	id uint,
) error {
	db := r.db.WithContext(ctx)

	if err := db.Where("record_id = ?", id).Delete(&models.RecordCompletion{}).Error; err != nil {
		return translate(err, "record_not_found")
	}
	if err := db.Where("record_id = ?", id).Delete(&models.Income{}).Error; err != nil {
		return translate(err, "record_not_found")
	}
	return translate(db.Delete(&models.Record{}, id).Error, "record_not_found")
}

// --------------------------------------------------
// Completion
// --------------------------------------------------

func (r *RecordGormRepository) CreateCompletion(
	ctx context.Context,
	c *models.RecordCompletion,
) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error
	return translate(err, "record_not_found")
}

func (r *RecordGormRepository) ListCompletions(
	ctx context.Context,
	recordID uint,
) ([]models.RecordCompletion, error) {

	var out []models.RecordCompletion
	if err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("record_id = ?", recordID).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// --------------------------------------------------
// Ledger
// --------------------------------------------------

// InsertRecordIncome relies on the unique index on incomes.record_id, so two
// racing inserts for one record leave exactly one row.
func (r *RecordGormRepository) InsertRecordIncome(
	ctx context.Context,
	inc *models.Income,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "record_id"}},
			DoNothing: true,
		}).
		Create(inc)
	if res.Error != nil {
		return false, translate(res.Error, "income_not_found")
	}
	return res.RowsAffected == 1, nil
}

func (r *RecordGormRepository) GetRecordIncome(
	ctx context.Context,
	recordID uint,
) (*models.Income, error) {

	var inc models.Income
	if err := r.db.WithContext(ctx).
		Where("record_id = ?", recordID).
		First(&inc).Error; err != nil {
		return nil, translate(err, "income_not_found")
	}
	return &inc, nil
}
