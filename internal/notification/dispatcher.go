package notification

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// EmailSender delivers a rendered email.
type EmailSender interface {
	SendEmail(ctx context.Context, msg *EmailMessage) error
}

// SMSSender delivers a rendered text message.
type SMSSender interface {
	SendSMS(ctx context.Context, msg *SMSMessage) error
}

// Dispatcher sends email and SMS concurrently and settles both.
type Dispatcher struct {
	email EmailSender
	sms   SMSSender
}

// NewDispatcher creates a Dispatcher over the given transports.
func NewDispatcher(email EmailSender, sms SMSSender) *Dispatcher {
	return &Dispatcher{
		email: email,
		sms:   sms,
	}
}

// Dispatch attempts each channel whose message is non-nil. Both attempts run
// concurrently and Dispatch returns once both have settled. Channel failures
// are logged and reported in the Report, never returned.
func (d *Dispatcher) Dispatch(ctx context.Context, taskID uint64, email *EmailMessage, sms *SMSMessage) Report {
	report := Report{
		DispatchID: uuid.NewString(),
		TaskID:     taskID,
		Email:      Outcome{Channel: ChannelEmail, Status: OutcomeSkipped},
		SMS:        Outcome{Channel: ChannelSMS, Status: OutcomeSkipped},
	}

	// Plain group: no shared context, so one channel failing never cancels the other.
	var g errgroup.Group

	if email != nil {
		report.Email.Recipient = email.To
		g.Go(func() error {
			report.Email = d.attempt(ctx, taskID, ChannelEmail, email.To, func(ctx context.Context) error {
				return d.email.SendEmail(ctx, email)
			})
			return report.Email.Err
		})
	}

	if sms != nil {
		report.SMS.Recipient = sms.To
		g.Go(func() error {
			report.SMS = d.attempt(ctx, taskID, ChannelSMS, sms.To, func(ctx context.Context) error {
				return d.sms.SendSMS(ctx, sms)
			})
			return report.SMS.Err
		})
	}

	if err := g.Wait(); err != nil {
		log.Printf("Notification dispatch incomplete: task=%d dispatch=%s errors=%v", taskID, report.DispatchID, report.Err())
	}

	return report
}

func (d *Dispatcher) attempt(ctx context.Context, taskID uint64, channel Channel, recipient string, send func(context.Context) error) (outcome Outcome) {
	start := time.Now()
	outcome = Outcome{Channel: channel, Recipient: recipient}

	defer func() {
		if r := recover(); r != nil {
			outcome.Status = OutcomeFailed
			outcome.Err = &ChannelError{TaskID: taskID, Channel: channel, Err: fmt.Errorf("panic: %v", r)}
			outcome.Duration = time.Since(start)
			log.Printf("Notification failed: task=%d channel=%s dispatch panic: %v", taskID, channel, r)
		}
	}()

	err := send(ctx)
	outcome.Duration = time.Since(start)
	if err != nil {
		outcome.Status = OutcomeFailed
		outcome.Err = &ChannelError{TaskID: taskID, Channel: channel, Err: err}
		log.Printf("Notification failed: task=%d channel=%s recipient=%s error=%v", taskID, channel, recipient, err)
		return outcome
	}

	outcome.Status = OutcomeSent
	log.Printf("Notification sent: task=%d channel=%s recipient=%s took=%s", taskID, channel, recipient, outcome.Duration)
	return outcome
}
