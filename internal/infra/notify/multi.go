package notify

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/clinic-ledger/internal/domain/notification"
	"github.com/BruksfildServices01/clinic-ledger/internal/models"
)

// Multi sends through every notifier. The reminder counts as delivered when
// at least one of them succeeds.
type Multi []notification.Notifier

func (m Multi) Notify(
	ctx context.Context,
	r notification.Reminder,
	subs []models.PushSubscription,
) ([]string, error) {

	var (
		stale []string
		errs  []error
	)
	for _, n := range m {
		gone, err := n.Notify(ctx, r, subs)
		stale = append(stale, gone...)
		if err != nil {
			errs = append(errs, err)
		}
	}

	if len(m) > 0 && len(errs) == len(m) {
		return stale, errors.Join(errs...)
	}
	return stale, nil
}
