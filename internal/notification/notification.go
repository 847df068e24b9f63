package notification

import (
	"context"
	"log/slog"
)

const (
	// KindInterestExpressed tells a homeowner a tradesperson wants their job.
	KindInterestExpressed = "interest_expressed"
	// KindContactShared tells a tradesperson the homeowner shared contact access.
	KindContactShared = "contact_shared"
	// KindAccessPaid tells a homeowner the tradesperson unlocked their contact.
	KindAccessPaid = "access_paid"
	// KindFundingConfirmed tells a user their wallet was credited.
	KindFundingConfirmed = "funding_confirmed"
	// KindFundingRejected tells a user their funding claim was declined.
	KindFundingRejected = "funding_rejected"
)

// Message describes a notification payload.
type Message struct {
	Kind        string
	Destination string
	Body        string
}

// Notifier delivers notifications to downstream systems. Delivery is
// fire-and-forget: a failed send never rolls back the triggering transition.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// LoggerNotifier is a stub implementation that writes notifications to the logger.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier stub.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger.
func (n *LoggerNotifier) Send(_ context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("notification", "kind", message.Kind, "destination", message.Destination, "body", message.Body)
	return nil
}
