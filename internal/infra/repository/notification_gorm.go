package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/clinic-ledger/internal/domain/notification"
	"github.com/BruksfildServices01/clinic-ledger/internal/domain/record"
	"github.com/BruksfildServices01/clinic-ledger/internal/models"
	"github.com/BruksfildServices01/clinic-ledger/internal/timezone"
)

type NotificationGormRepository struct {
	db *gorm.DB
}

func NewNotificationGormRepository(db *gorm.DB) *NotificationGormRepository {
	return &NotificationGormRepository{db: db}
}

var _ domain.Repository = (*NotificationGormRepository)(nil)

func (r *NotificationGormRepository) ListReminderCandidates(
	ctx context.Context,
	rg timezone.Range,
) ([]models.Record, error) {

	var out []models.Record
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where("reminder = ? AND status = ? AND notification_sent_at IS NULL",
			true, string(record.StatusPending)).
		Where("date BETWEEN ? AND ?", rg.Start, rg.End).
		Order("date ASC, time ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ClaimReminder is a conditional update, so only one caller can win it.
func (r *NotificationGormRepository) ClaimReminder(
	ctx context.Context,
	recordID uint,
	at time.Time,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Record{}).
		Where("id = ? AND notification_sent_at IS NULL", recordID).
		Update("notification_sent_at", at)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *NotificationGormRepository) ReleaseReminder(
	ctx context.Context,
	recordID uint,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Record{}).
		Where("id = ?", recordID).
		Update("notification_sent_at", nil).Error
}

func (r *NotificationGormRepository) ListSubscriptions(
	ctx context.Context,
) ([]models.PushSubscription, error) {

	var out []models.PushSubscription
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *NotificationGormRepository) PruneSubscriptions(
	ctx context.Context,
	endpoints []string,
) (int64, error) {

	if len(endpoints) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Where("endpoint IN ?", endpoints).
		Delete(&models.PushSubscription{})
	return res.RowsAffected, res.Error
}
