// internal/notification/notifier_test.go
package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"matchpoint/internal/common/config"
	"matchpoint/internal/common/logger"
)

type fakeEmail struct {
	to, subject, body string
	err               error
}

func (f *fakeEmail) SendText(_ context.Context, to, subject, body string) error {
	f.to, f.subject, f.body = to, subject, body
	return f.err
}

type fakeSMS struct {
	phone, message string
	err            error
}

func (f *fakeSMS) SendSMS(_ context.Context, phone, message string) error {
	f.phone, f.message = phone, message
	return f.err
}

func testNotifier(email *fakeEmail, sms *fakeSMS) *notifier {
	var cfg config.NotificationConfig
	cfg.Email.OpsEmail = "ops@matchpoint.example"
	n := &notifier{cfg: cfg, log: logger.NewNoOpLogger()}
	if email != nil {
		n.email = email
	}
	if sms != nil {
		n.sms = sms
	}
	return n
}

func TestNotifier_PromotedSendsSMSAndAuditCopy(t *testing.T) {
	email := &fakeEmail{}
	sms := &fakeSMS{}
	n := testNotifier(email, sms)

	n.PromotedFromWaitlist(context.Background(), "010-1234-5678", "김선수", "봄 대회")

	assert.Equal(t, "010-1234-5678", sms.phone)
	assert.Contains(t, sms.message, "김선수님")
	assert.Contains(t, sms.message, "대기가 해제")
	assert.Equal(t, "ops@matchpoint.example", email.to)
	assert.Equal(t, "[봄 대회] 대기 해제", email.subject)
	assert.Equal(t, sms.message, email.body)
}

func TestNotifier_SMSFailureStillSendsAudit(t *testing.T) {
	email := &fakeEmail{}
	sms := &fakeSMS{err: errors.New("throttled")}
	n := testNotifier(email, sms)

	n.RegistrationCanceled(context.Background(), "010-1234-5678", "김선수", "봄 대회")

	assert.Equal(t, "ops@matchpoint.example", email.to)
	assert.Contains(t, email.body, "취소되었습니다")
}

func TestNotifier_NoChannelsIsSilent(t *testing.T) {
	n := testNotifier(nil, nil)

	// No senders configured; must not panic.
	n.PaymentConfirmed(context.Background(), "010-1234-5678", "김선수", "봄 대회")
}

func TestNotifier_SkipsAuditWithoutOpsEmail(t *testing.T) {
	email := &fakeEmail{}
	n := testNotifier(email, nil)
	n.cfg.Email.OpsEmail = ""

	n.PaymentConfirmed(context.Background(), "010-1234-5678", "김선수", "봄 대회")

	assert.Empty(t, email.to)
}
