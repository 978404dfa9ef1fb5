// Package notify implements the notification boundary: best-effort email
// delivery fanned out concurrently per recipient. Failures are logged, never
// surfaced to the caller, and a single failed recipient does not affect the
// others.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskgrid/task-tracker-api/internal/api/metrics"
)

// Sender delivers one message to one recipient.
type Sender interface {
	SendOne(ctx context.Context, recipient, subject, body string) error
}

// Dedup suppresses repeat deliveries of the same message to the same
// recipient within a time window. Implementations live in the redis package.
type Dedup interface {
	IsDuplicate(ctx context.Context, recipient, subject, body string) (bool, error)
	Mark(ctx context.Context, recipient, subject, body string) error
}

// Notifier fans a message out to all recipients concurrently and waits for
// every send to finish before returning.
type Notifier struct {
	sender Sender
	dedup  Dedup // optional
	log    zerolog.Logger
}

// NewNotifier creates a Notifier. dedup may be nil, in which case every send
// is attempted.
func NewNotifier(sender Sender, dedup Dedup, log zerolog.Logger) *Notifier {
	return &Notifier{sender: sender, dedup: dedup, log: log}
}

// Send delivers the message to every recipient. One goroutine per recipient;
// the call returns once all sends have completed. Errors are logged only.
func (n *Notifier) Send(ctx context.Context, recipients []string, subject, body string) {
	if len(recipients) == 0 {
		return
	}

	start := time.Now()
	var wg sync.WaitGroup
	for _, recipient := range recipients {
		wg.Add(1)
		go func(recipient string) {
			defer wg.Done()
			n.sendOne(ctx, recipient, subject, body)
		}(recipient)
	}
	wg.Wait()

	metrics.NotificationBatchDuration.Observe(time.Since(start).Seconds())
}

func (n *Notifier) sendOne(ctx context.Context, recipient, subject, body string) {
	if n.dedup != nil {
		// Dedup errors are treated as a miss: better a repeat email than a
		// dropped one.
		dup, err := n.dedup.IsDuplicate(ctx, recipient, subject, body)
		if err != nil {
			n.log.Warn().Err(err).Str("recipient", recipient).Msg("notification dedup check failed")
		} else if dup {
			metrics.NotificationsTotal.WithLabelValues("deduped").Inc()
			return
		}
	}

	if err := n.sender.SendOne(ctx, recipient, subject, body); err != nil {
		metrics.NotificationsTotal.WithLabelValues("failed").Inc()
		n.log.Error().Err(err).
			Str("recipient", recipient).
			Str("subject", subject).
			Msg("notification send failed")
		return
	}
	metrics.NotificationsTotal.WithLabelValues("sent").Inc()

	if n.dedup != nil {
		if err := n.dedup.Mark(ctx, recipient, subject, body); err != nil {
			n.log.Warn().Err(err).Str("recipient", recipient).Msg("notification dedup mark failed")
		}
	}
}
