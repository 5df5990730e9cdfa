package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/clinic-ledger/internal/httperr"
	"github.com/BruksfildServices01/clinic-ledger/internal/models"
)

// CatalogGormRepository covers clients and services. Both are referenced by
// records, so deletes either refuse or cascade explicitly.
type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

// ======================================================
// CLIENTS
// ======================================================

func (r *CatalogGormRepository) ListClients(
	ctx context.Context,
	query string,
) ([]models.Client, error) {

	q := r.db.WithContext(ctx)

	query = strings.ToLower(strings.TrimSpace(query))
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR phone LIKE ?", like, like)
	}

	var out []models.Client
	if err := q.Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CatalogGormRepository) CreateClient(
	ctx context.Context,
	c *models.Client,
) error {
	return translate(r.db.WithContext(ctx).Create(c).Error, "client_not_found")
}

func (r *CatalogGormRepository) UpdateClient(
	ctx context.Context,
	id uint,
	fields map[string]any,
) (*models.Client, error) {

	var c models.Client
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&c, id).Error; err != nil {
			return err
		}
		if len(fields) == 0 {
			return nil
		}
		return tx.Model(&c).Updates(fields).Error
	})
	if err != nil {
		return nil, translate(err, "client_not_found")
	}
	return &c, nil
}

// DeleteClient removes the client. With records attached it fails unless
// cascade is set, in which case the records go too.
func (r *CatalogGormRepository) DeleteClient(
	ctx context.Context,
	id uint,
	cascade bool,
) (int64, error) {
	return r.deleteReferenced(ctx, &models.Client{}, id, "client_id", cascade,
		"client_not_found", "client_has_records")
}

// ======================================================
// SERVICES
// ======================================================

func (r *CatalogGormRepository) ListServices(
	ctx context.Context,
	activeOnly bool,
) ([]models.Service, error) {

	q := r.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var out []models.Service
	if err := q.Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CatalogGormRepository) CreateService(
	ctx context.Context,
	s *models.Service,
) error {
	return translate(r.db.WithContext(ctx).Create(s).Error, "service_not_found")
}

// UpdateService never touches incomes: they keep the price captured when
// they were generated.
func (r *CatalogGormRepository) UpdateService(
	ctx context.Context,
	id uint,
	fields map[string]any,
) (*models.Service, error) {

	var s models.Service
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&s, id).Error; err != nil {
			return err
		}
		if len(fields) == 0 {
			return nil
		}
		return tx.Model(&s).Updates(fields).Error
	})
	if err != nil {
		return nil, translate(err, "service_not_found")
	}
	return &s, nil
}

func (r *CatalogGormRepository) DeleteService(
	ctx context.Context,
	id uint,
	cascade bool,
) (int64, error) {
	return r.deleteReferenced(ctx, &models.Service{}, id, "service_id", cascade,
		"service_not_found", "service_has_records")
}

// --------------------------------------------------
// Shared cascade
// --------------------------------------------------

func (r *CatalogGormRepository) deleteReferenced(
	ctx context.Context,
	model any,
	id uint,
	column string,
	cascade bool,
	notFound string,
	blocked string,
) (int64, error) {

	var removed int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(model, id).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Record{}).
			Where(column+" = ?", id).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 && !cascade {
			return httperr.ErrReferential(blocked, map[string]any{
				"has_records":  true,
				"record_count": count,
			})
		}

		if count > 0 {
			records := tx.Model(&models.Record{}).Select("id").Where(column+" = ?", id)

			if err := tx.Where("record_id IN (?)", records).
				Delete(&models.RecordCompletion{}).Error; err != nil {
				return err
			}
			if err := tx.Where("record_id IN (?)", records).
				Delete(&models.Income{}).Error; err != nil {
				return err
			}
			res := tx.Where(column+" = ?", id).Delete(&models.Record{})
			if res.Error != nil {
				return res.Error
			}
			removed = res.RowsAffected
		}

		return tx.Delete(model, id).Error
	})
	if err != nil {
		return 0, translate(err, notFound)
	}
	return removed, nil
}
