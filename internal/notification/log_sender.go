package notification

import (
	"context"
	"log"
)

// LogSender stands in for an unconfigured transport: it logs the message and succeeds.
type LogSender struct{}

func (LogSender) SendEmail(_ context.Context, msg *EmailMessage) error {
	log.Printf("Email transport not configured, would send to=%s subject=%q", msg.To, msg.Subject)
	return nil
}

func (LogSender) SendSMS(_ context.Context, msg *SMSMessage) error {
	log.Printf("SMS transport not configured, would send to=%s body=%q", msg.To, msg.Body)
	return nil
}
