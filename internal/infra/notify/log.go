package notify

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/clinic-ledger/internal/domain/notification"
	"github.com/BruksfildServices01/clinic-ledger/internal/models"
)

// LogNotifier writes reminders to the log. It is the fallback when no mail
// transport is configured, and the place push delivery hooks in.
type LogNotifier struct{}

func (LogNotifier) Notify(
	ctx context.Context,
	r notification.Reminder,
	subs []models.PushSubscription,
) ([]string, error) {

	log.Info().
		Uint("record_id", r.RecordID).
		Time("starts_at", r.StartsAt).
		Int("subscriptions", len(subs)).
		Msg(r.Body())
	return nil, nil
}
