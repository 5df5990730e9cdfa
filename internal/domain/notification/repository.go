package notification

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-ledger/internal/models"
	"github.com/BruksfildServices01/clinic-ledger/internal/timezone"
)

type Repository interface {
	// ListReminderCandidates returns pending, opted-in, not yet notified
	// records dated within r, with service and client loaded.
	ListReminderCandidates(
		ctx context.Context,
		r timezone.Range,
	) ([]models.Record, error)

	// ClaimReminder sets notification_sent_at when it is still null and
	// reports whether this caller won the claim.
	ClaimReminder(
		ctx context.Context,
		recordID uint,
		at time.Time,
	) (bool, error)

	ReleaseReminder(
		ctx context.Context,
		recordID uint,
	) error

	ListSubscriptions(
		ctx context.Context,
	) ([]models.PushSubscription, error)

	PruneSubscriptions(
		ctx context.Context,
		endpoints []string,
	) (int64, error)
}

// Notifier delivers one reminder. It returns the push endpoints that are
// permanently gone so the caller can prune them.
type Notifier interface {
	Notify(
		ctx context.Context,
		r Reminder,
		subs []models.PushSubscription,
	) (stale []string, err error)
}
