// internal/notification/notifier.go
package notification

import (
	"context"
	"fmt"

	awsclient "matchpoint/internal/common/aws"
	"matchpoint/internal/common/config"
	"matchpoint/internal/common/logger"
)

// Notifier delivers applicant-facing messages. Channels are config-gated;
// a disabled channel is silently skipped so business flows never block on
// delivery.
type Notifier interface {
	PaymentConfirmed(ctx context.Context, phone, name, competitionName string)
	RegistrationCanceled(ctx context.Context, phone, name, competitionName string)
	PromotedFromWaitlist(ctx context.Context, phone, name, competitionName string)
}

type emailSender interface {
	SendText(ctx context.Context, to, subject, body string) error
}

type smsSender interface {
	SendSMS(ctx context.Context, phone, message string) error
}

type notifier struct {
	cfg   config.NotificationConfig
	email emailSender
	sms   smsSender
	log   logger.Logger
}

// New builds a Notifier from config. AWS clients are only created for
// enabled channels.
func New(ctx context.Context, cfg config.NotificationConfig, log logger.Logger) (Notifier, error) {
	n := &notifier{cfg: cfg, log: log}

	if cfg.Email.Enabled {
		client, err := awsclient.NewSESClient(ctx, cfg.AWS.Region, cfg.Email.FromEmail)
		if err != nil {
			return nil, fmt.Errorf("failed to create ses client: %w", err)
		}
		n.email = client
	}
	if cfg.SMS.Enabled {
		client, err := awsclient.NewSNSClient(ctx, cfg.AWS.Region, cfg.SMS.SenderID)
		if err != nil {
			return nil, fmt.Errorf("failed to create sns client: %w", err)
		}
		n.sms = client
	}
	return n, nil
}

func (n *notifier) PaymentConfirmed(ctx context.Context, phone, name, competitionName string) {
	n.deliver(ctx, phone,
		fmt.Sprintf("[%s] 입금 확인", competitionName),
		fmt.Sprintf("%s님, %s 참가비 입금이 확인되었습니다.", name, competitionName))
}

func (n *notifier) RegistrationCanceled(ctx context.Context, phone, name, competitionName string) {
	n.deliver(ctx, phone,
		fmt.Sprintf("[%s] 신청 취소", competitionName),
		fmt.Sprintf("%s님, %s 대회 신청이 취소되었습니다.", name, competitionName))
}

func (n *notifier) PromotedFromWaitlist(ctx context.Context, phone, name, competitionName string) {
	n.deliver(ctx, phone,
		fmt.Sprintf("[%s] 대기 해제", competitionName),
		fmt.Sprintf("%s님, %s 대기가 해제되어 참가 신청이 가능합니다. 입금 기한을 확인해주세요.", name, competitionName))
}

// deliver sends the SMS to the applicant and an audit copy to the ops
// mailbox when one is configured.
func (n *notifier) deliver(ctx context.Context, phone, subject, body string) {
	if n.sms != nil {
		if err := n.sms.SendSMS(ctx, phone, body); err != nil {
			n.log.Warn("sms delivery failed", map[string]interface{}{
				"phone": phone,
				"error": err.Error(),
			})
		}
	}

	if n.email != nil && n.cfg.Email.OpsEmail != "" {
		if err := n.email.SendText(ctx, n.cfg.Email.OpsEmail, subject, body); err != nil {
			n.log.Warn("email delivery failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}

// NewNoOp returns a Notifier that drops every message. Tests and setups
// without AWS credentials use this.
func NewNoOp() Notifier {
	return &noopNotifier{}
}

type noopNotifier struct{}

func (*noopNotifier) PaymentConfirmed(context.Context, string, string, string)     {}
func (*noopNotifier) RegistrationCanceled(context.Context, string, string, string) {}
func (*noopNotifier) PromotedFromWaitlist(context.Context, string, string, string) {}
