package mail

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type stubMailer struct {
	sent chan *Email
}

func (s *stubMailer) SendMail(e *Email) error {
	s.sent <- e
	return nil
}

func TestNotifyAbnormalLogin(t *testing.T) {
	mailer := &stubMailer{sent: make(chan *Email, 1)}
	notifier := NewAlertNotifier(mailer, "noreply@termbase.local", "ops@termbase.local")

	notifier.NotifyAbnormalLogin("alice", "8.8.8.8", "United States", "login location changed")

	select {
	case email := <-mailer.sent:
		assert.Equal(t, "Abnormal login detected for alice", email.Subject)
		assert.Equal(t, []string{"ops@termbase.local"}, email.To)
		assert.Contains(t, email.Body, "8.8.8.8")
		assert.Contains(t, email.Body, "United States")
		assert.Contains(t, email.Body, "login location changed")
	case <-time.After(time.Second):
		t.Fatal("no alert was sent")
	}
}

func TestNotifyAbnormalLoginNoRecipient(t *testing.T) {
	mailer := &stubMailer{sent: make(chan *Email, 1)}
	notifier := NewAlertNotifier(mailer, "noreply@termbase.local", "")

	notifier.NotifyAbnormalLogin("alice", "8.8.8.8", "United States", "login location changed")

	select {
	case <-mailer.sent:
		t.Fatal("alert sent without a configured recipient")
	case <-time.After(50 * time.Millisecond):
	}
}
