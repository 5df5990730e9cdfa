package notify

import (
	"context"

	"gopkg.in/gomail.v2"

	"github.com/BruksfildServices01/clinic-ledger/internal/config"
	"github.com/BruksfildServices01/clinic-ledger/internal/domain/notification"
	"github.com/BruksfildServices01/clinic-ledger/internal/models"
)

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// MailNotifier e-mails each reminder to the front-desk addresses.
type MailNotifier struct {
	from   string
	to     []string
	dialer sender
}

func NewMailNotifier(smtp config.SMTPConfig, to []string) *MailNotifier {
	from := smtp.From
	if from == "" {
		from = smtp.User
	}
	return &MailNotifier{
		from:   from,
		to:     to,
		dialer: gomail.NewDialer(smtp.Host, smtp.Port, smtp.User, smtp.Password),
	}
}

func (n *MailNotifier) Notify(
	ctx context.Context,
	r notification.Reminder,
	subs []models.PushSubscription,
) ([]string, error) {

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.to...)
	m.SetHeader("Subject", r.Title())
	m.SetBody("text/plain", r.Body())

	return nil, n.dialer.DialAndSend(m)
}
