package mail

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"termbase/internal/logging"
)

// AlertNotifier mails the operator when an abnormal login is detected.
// Sending is fire-and-forget relative to the login request: transport
// failures are logged, never surfaced to the caller.
type AlertNotifier struct {
	mailer Mailer
	from   string
	to     string
	log    zerolog.Logger
}

func NewAlertNotifier(mailer Mailer, from, to string) *AlertNotifier {
	return &AlertNotifier{
		mailer: mailer,
		from:   from,
		to:     to,
		log:    logging.NewLogger("notifier"),
	}
}

func (n *AlertNotifier) NotifyAbnormalLogin(username, ip, location, reason string) {
	if n.to == "" {
		n.log.Debug().Msg("no alert recipient configured, skipping abnormal login notification")
		return
	}

	email := Email{
		Subject: fmt.Sprintf("Abnormal login detected for %s", username),
		Body: fmt.Sprintf(
			"An abnormal login was detected.\n\nUser: %s\nIP address: %s\nLocation: %s\nReason: %s\nTime: %s\n",
			username, ip, location, reason, time.Now().Format(time.RFC3339)),
		From: n.from,
		To:   []string{n.to},
	}

	go func() {
		if err := n.mailer.SendMail(&email); err != nil {
			n.log.Error().Err(err).Str("username", username).Msg("failed to send abnormal login alert")
		}
	}()
}
