package notification

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	domain "github.com/BruksfildServices01/clinic-ledger/internal/domain/notification"
	"github.com/BruksfildServices01/clinic-ledger/internal/metrics"
	"github.com/BruksfildServices01/clinic-ledger/internal/timezone"
)

// Locker keeps two instances from running the same check at once.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (release func(), ok bool, err error)
}

const lockKey = "clinic:reminder-check"

type ReminderCheck struct {
	repo     domain.Repository
	notifier domain.Notifier
	locker   Locker

	lead     time.Duration
	interval time.Duration
	now      func() time.Time
}

// NewReminderCheck builds the job. locker may be nil for single-instance
// deployments; the per-record claim still prevents duplicates.
func NewReminderCheck(
	repo domain.Repository,
	notifier domain.Notifier,
	locker Locker,
	lead time.Duration,
	interval time.Duration,
) *ReminderCheck {
	return &ReminderCheck{
		repo:     repo,
		notifier: notifier,
		locker:   locker,
		lead:     lead,
		interval: interval,
		now:      timezone.Now,
	}
}

func (j *ReminderCheck) Name() string            { return "reminder_check" }
func (j *ReminderCheck) Interval() time.Duration { return j.interval }

func (j *ReminderCheck) Execute(ctx context.Context) error {
	_, err := j.Check(ctx)
	return err
}

// Check sends every due reminder once and returns how many went out.
func (j *ReminderCheck) Check(ctx context.Context) (int, error) {
	if j.locker != nil {
		release, ok, err := j.locker.TryLock(ctx, lockKey, j.interval)
		if err != nil {
			return 0, err
		}
		if !ok {
			log.Debug().Msg("reminder check already running elsewhere")
			return 0, nil
		}
		defer release()
	}

	now := j.now()
	window := timezone.Range{
		Start: timezone.Day(now),
		End:   timezone.Day(now.Add(j.lead)),
	}

	candidates, err := j.repo.ListReminderCandidates(ctx, window)
	if err != nil {
		return 0, err
	}
	if len(candidates) == 0 {
		return 0, nil
	}

	subs, err := j.repo.ListSubscriptions(ctx)
	if err != nil {
		return 0, err
	}

	sent := 0
	stale := map[string]struct{}{}

	for i := range candidates {
		rem, due := domain.Due(&candidates[i], now, j.lead)
		if !due {
			continue
		}

		claimed, err := j.repo.ClaimReminder(ctx, rem.RecordID, now)
		if err != nil {
			return sent, err
		}
		if !claimed {
			continue
		}

		gone, err := j.notifier.Notify(ctx, rem, subs)
		for _, ep := range gone {
			stale[ep] = struct{}{}
		}
		if err != nil {
			metrics.RemindersSent.WithLabelValues("failed").Inc()
			log.Error().Err(err).Uint("record_id", rem.RecordID).Msg("reminder delivery failed")
			if rerr := j.repo.ReleaseReminder(ctx, rem.RecordID); rerr != nil {
				log.Error().Err(rerr).Uint("record_id", rem.RecordID).Msg("reminder claim release failed")
			}
			continue
		}

		metrics.RemindersSent.WithLabelValues("sent").Inc()
		sent++
	}

	if len(stale) > 0 {
		endpoints := make([]string, 0, len(stale))
		for ep := range stale {
			endpoints = append(endpoints, ep)
		}
		removed, err := j.repo.PruneSubscriptions(ctx, endpoints)
		if err != nil {
			log.Error().Err(err).Msg("push subscription prune failed")
		} else {
			log.Info().Int64("removed", removed).Msg("stale push subscriptions pruned")
		}
	}

	return sent, nil
}
