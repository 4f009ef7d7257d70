package notify

import (
	"context"
	"fmt"

	"github.com/oceaniadigital/lead-relay/pkg/logging"
)

// LeadAlerts emails operators about submission outcomes. Delivery is
// best-effort: failures are logged and never reach the request path.
type LeadAlerts struct {
	email      EmailSender
	recipients []string
	onLead     bool
	onError    bool
	logger     *logging.Logger
}

// AlertsConfig wires a LeadAlerts service.
type AlertsConfig struct {
	Recipients    []string
	NotifyOnLead  bool
	NotifyOnError bool
}

// NewLeadAlerts creates the alert service. Returns nil when there is nothing
// to deliver to, so callers can wire it unconditionally.
func NewLeadAlerts(email EmailSender, cfg AlertsConfig, logger *logging.Logger) *LeadAlerts {
	if email == nil || len(cfg.Recipients) == 0 {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &LeadAlerts{
		email:      email,
		recipients: cfg.Recipients,
		onLead:     cfg.NotifyOnLead,
		onError:    cfg.NotifyOnError,
		logger:     logger,
	}
}

// LeadSubmitted alerts operators that a lead was forwarded to the CRM.
func (a *LeadAlerts) LeadSubmitted(ctx context.Context, name, email, phone, source string) {
	if a == nil || !a.onLead {
		return
	}
	subject := fmt.Sprintf("New lead: %s", name)
	body := fmt.Sprintf(`A new lead was submitted and forwarded to the CRM.

Name: %s
Email: %s
Phone: %s
Lead Source: %s
`, name, email, phone, source)
	a.send(ctx, subject, body)
}

// ForwardFailed alerts operators that a validated lead could not be
// delivered to the CRM.
func (a *LeadAlerts) ForwardFailed(ctx context.Context, name, source string, err error) {
	if a == nil || !a.onError {
		return
	}
	subject := fmt.Sprintf("Lead forward FAILED: %s", name)
	body := fmt.Sprintf(`A validated lead could not be forwarded to the CRM.

Name: %s
Lead Source: %s
Error: %v

The submission was rejected with a 500; the caller may retry.
`, name, source, err)
	a.send(ctx, subject, body)
}

func (a *LeadAlerts) send(ctx context.Context, subject, body string) {
	for _, recipient := range a.recipients {
		msg := EmailMessage{
			To:      recipient,
			Subject: subject,
			Body:    body,
		}
		if err := a.email.Send(ctx, msg); err != nil {
			a.logger.Error("alert delivery failed", "error", err, "to", recipient)
		}
	}
}
