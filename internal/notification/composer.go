package notification

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"
	"unicode/utf8"

	"github.com/yukikurage/service-task-manager/internal/models"
)

// MaxSMSLength keeps texts within two concatenated GSM segments.
const MaxSMSLength = 320

const (
	maxSMSNameLength    = 40
	maxSMSServiceLength = 60
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	htmlTemplate = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/task_update.html.tmpl"))
	textTemplate = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/task_update.txt.tmpl"))
)

// Composer turns a task with resolved relations into channel payloads.
type Composer struct {
	BusinessName string
	ContactLine  string
}

// NewComposer creates a Composer signing messages with the given business name and contact line.
func NewComposer(businessName, contactLine string) *Composer {
	return &Composer{
		BusinessName: businessName,
		ContactLine:  contactLine,
	}
}

type emailView struct {
	*EmailMessage
	BusinessName string
	ContactLine  string
}

// ComposeEmail builds the customer email. It returns false when the customer
// has no email address.
func (c *Composer) ComposeEmail(task models.Task) (*EmailMessage, bool, error) {
	to := strings.TrimSpace(task.Customer.EmailAddress())
	if to == "" {
		return nil, false, nil
	}

	msg := &EmailMessage{
		To:                 to,
		Subject:            "Service Update: " + task.Service.Name,
		CustomerName:       task.Customer.FullName,
		ServiceName:        task.Service.Name,
		ServiceDescription: task.Service.Description,
		PropertyLine:       PropertyLine(task.Property),
		StatusName:         task.Status.Name,
		Notes:              task.Notes,
		ImageURLs:          task.MediaURLs(),
	}
	if task.ScheduledFor != nil {
		msg.ScheduledFor = task.ScheduledFor.UTC().Format(time.RFC3339)
	}

	view := emailView{EmailMessage: msg, BusinessName: c.BusinessName, ContactLine: c.ContactLine}

	var html bytes.Buffer
	if err := htmlTemplate.Execute(&html, view); err != nil {
		return nil, false, fmt.Errorf("render html email: %w", err)
	}
	var text bytes.Buffer
	if err := textTemplate.Execute(&text, view); err != nil {
		return nil, false, fmt.Errorf("render text email: %w", err)
	}
	msg.HTMLBody = html.String()
	msg.TextBody = text.String()

	return msg, true, nil
}

// ComposeSMS builds the customer text message. It returns false when the
// customer's phone cannot be normalized to a US E.164 number.
func (c *Composer) ComposeSMS(task models.Task) (*SMSMessage, bool) {
	to, ok := NormalizePhone(task.Customer.Phone)
	if !ok {
		return nil, false
	}

	return &SMSMessage{
		To:   to,
		Body: c.smsBody(task.Customer.FullName, task.Service.Name, task.Service.Description),
	}, true
}

func (c *Composer) smsBody(customerName, serviceName, description string) string {
	head := fmt.Sprintf("Hi %s, your %s service has been updated",
		truncate(strings.TrimSpace(customerName), maxSMSNameLength),
		truncate(strings.TrimSpace(serviceName), maxSMSServiceLength))
	tail := "."
	if c.ContactLine != "" {
		tail = ". " + c.ContactLine
	}

	body := head + tail
	description = strings.TrimSpace(description)
	if description != "" {
		budget := MaxSMSLength - utf8.RuneCountInString(head) - utf8.RuneCountInString(tail) - len(": ")
		if budget > 3 {
			body = head + ": " + truncate(description, budget) + tail
		}
	}

	// a long contact line can still overflow
	return truncate(body, MaxSMSLength)
}

// PropertyLine formats a property as "{address}, {city}, {state} {zip}".
func PropertyLine(p models.Property) string {
	return fmt.Sprintf("%s, %s, %s %s", p.Address, p.City, p.State, p.Zip)
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:max-3])) + "..."
}
