package notification

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/clinic-ledger/internal/domain/record"
	"github.com/BruksfildServices01/clinic-ledger/internal/models"
	"github.com/BruksfildServices01/clinic-ledger/internal/timezone"
)

// DefaultClock is the start assumed for records booked without a time.
const DefaultClock = "09:00"

type Reminder struct {
	RecordID     uint
	StartsAt     time.Time
	ServiceName  string
	ClientName   string
	ClientPhone  string
	PatientCount int
}

func (r Reminder) Title() string {
	return fmt.Sprintf("Upcoming: %s", r.ServiceName)
}

func (r Reminder) Body() string {
	who := r.ClientName
	if who == "" {
		who = "walk-in"
	}
	return fmt.Sprintf("%s at %s for %s (%d)",
		r.ServiceName, r.StartsAt.Format("2006-01-02 15:04"), who, r.PatientCount)
}

// Due reports whether rec needs a reminder at now: opted in, still pending,
// not yet notified, and starting within [now, now+lead].
func Due(rec *models.Record, now time.Time, lead time.Duration) (Reminder, bool) {
	if !rec.Reminder || rec.Status != string(record.StatusPending) || rec.NotificationSentAt != nil {
		return Reminder{}, false
	}

	start, err := timezone.At(rec.Date, rec.Time, DefaultClock)
	if err != nil {
		return Reminder{}, false
	}
	if start.Before(now) || start.After(now.Add(lead)) {
		return Reminder{}, false
	}

	r := Reminder{
		RecordID:     rec.ID,
		StartsAt:     start,
		ServiceName:  rec.Service.Name,
		PatientCount: rec.PatientCount,
	}
	if rec.Client != nil {
		r.ClientName = rec.Client.Name
		r.ClientPhone = rec.Client.Phone
	}
	return r, true
}
