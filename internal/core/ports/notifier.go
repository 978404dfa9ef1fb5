package ports

import "context"

// Notifier delivers a message to a set of recipients. Delivery is best-effort:
// implementations log failures and never propagate them to the caller.
type Notifier interface {
	Send(ctx context.Context, recipients []string, subject, body string)
}
