package notification

import (
	"errors"
	"fmt"
	"time"
)

// Channel identifies a notification transport.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// EmailMessage is a fully rendered customer email.
type EmailMessage struct {
	To                 string
	Subject            string
	CustomerName       string
	ServiceName        string
	ServiceDescription string
	PropertyLine       string
	StatusName         string
	ScheduledFor       string
	Notes              string
	ImageURLs          []string

	HTMLBody string
	TextBody string
}

// SMSMessage is a fully rendered customer text message.
type SMSMessage struct {
	To   string // E.164
	Body string
}

// OutcomeStatus is the settled state of one channel attempt.
type OutcomeStatus string

const (
	OutcomeSent    OutcomeStatus = "sent"
	OutcomeFailed  OutcomeStatus = "failed"
	OutcomeSkipped OutcomeStatus = "skipped"
)

// Outcome describes what happened on one channel.
type Outcome struct {
	Channel   Channel
	Recipient string
	Status    OutcomeStatus
	Err       error
	Duration  time.Duration
}

// Report is the joined result of one dispatch.
type Report struct {
	DispatchID string
	TaskID     uint64
	Email      Outcome
	SMS        Outcome
}

// Failed reports whether any attempted channel failed.
func (r Report) Failed() bool {
	return r.Email.Status == OutcomeFailed || r.SMS.Status == OutcomeFailed
}

// Err joins the channel errors of the report, or returns nil when nothing failed.
func (r Report) Err() error {
	return errors.Join(r.Email.Err, r.SMS.Err)
}

// ChannelError is a transport failure on a single channel.
type ChannelError struct {
	TaskID  uint64
	Channel Channel
	Err     error
}

func (e *ChannelError) Error() string {
	return fmt.Sprintf("notification %s for task %d failed: %v", e.Channel, e.TaskID, e.Err)
}

func (e *ChannelError) Unwrap() error {
	return e.Err
}
