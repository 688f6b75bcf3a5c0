package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/yukikurage/service-task-manager/internal/notification"
)

// EmailRecorder is an EmailSender that records what it was asked to send.
// Err and Delay must be set before the sender is used.
type EmailRecorder struct {
	Err   error
	Delay time.Duration

	mu       sync.Mutex
	attempts []notification.EmailMessage
}

func (r *EmailRecorder) SendEmail(ctx context.Context, msg *notification.EmailMessage) error {
	if err := wait(ctx, r.Delay); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts = append(r.attempts, *msg)
	return r.Err
}

// Attempts returns every message passed to SendEmail, failed ones included.
func (r *EmailRecorder) Attempts() []notification.EmailMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notification.EmailMessage(nil), r.attempts...)
}

// SMSRecorder is an SMSSender that records what it was asked to send.
// Err and Delay must be set before the sender is used.
type SMSRecorder struct {
	Err   error
	Delay time.Duration

	mu       sync.Mutex
	attempts []notification.SMSMessage
}

func (r *SMSRecorder) SendSMS(ctx context.Context, msg *notification.SMSMessage) error {
	if err := wait(ctx, r.Delay); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts = append(r.attempts, *msg)
	return r.Err
}

// Attempts returns every message passed to SendSMS, failed ones included.
func (r *SMSRecorder) Attempts() []notification.SMSMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notification.SMSMessage(nil), r.attempts...)
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
