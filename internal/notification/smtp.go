package notification

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
)

// SMTPSender delivers email through an SMTP relay using STARTTLS when offered.
type SMTPSender struct {
	host     string
	port     string
	username string
	password string
	from     *mail.Address

	sendMail func(ctx context.Context, addr string, a sasl.Client, from string, to []string, r io.Reader) error
	now      func() time.Time
}

// NewSMTPSender creates an SMTPSender. Authentication is skipped when username is empty.
func NewSMTPSender(host, port, username, password, fromAddress, fromName string) *SMTPSender {
	s := &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     &mail.Address{Name: fromName, Address: fromAddress},
		now:      time.Now,
	}
	s.sendMail = s.deliver
	return s
}

// SendEmail renders msg as multipart/alternative and hands it to the relay.
func (s *SMTPSender) SendEmail(ctx context.Context, msg *EmailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := s.buildMessage(msg)
	if err != nil {
		return err
	}

	var auth sasl.Client
	if s.username != "" {
		auth = sasl.NewPlainClient("", s.username, s.password)
	}

	addr := net.JoinHostPort(s.host, s.port)
	if err := s.sendMail(ctx, addr, auth, s.from.Address, []string{msg.To}, bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("smtp send to %s via %s: %w", msg.To, addr, err)
	}
	return nil
}

// deliver runs one SMTP session bounded by ctx. The connection is closed as
// soon as ctx is done.
func (s *SMTPSender) deliver(ctx context.Context, addr string, a sasl.Client, from string, to []string, r io.Reader) (err error) {
	defer func() {
		if err != nil && ctx.Err() != nil {
			err = fmt.Errorf("%w (%v)", ctx.Err(), err)
		}
	}()

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}

	c := smtp.NewClient(conn)
	defer c.Close()

	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		c.CommandTimeout = remaining
		c.SubmissionTimeout = remaining
	}

	stop := context.AfterFunc(ctx, func() {
		conn.Close()
	})
	defer stop()

	if err := c.Hello("localhost"); err != nil {
		return err
	}

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: s.host}); err != nil {
			return err
		}
	}

	if a != nil {
		if ok, _ := c.Extension("AUTH"); !ok {
			return errors.New("smtp: server doesn't support AUTH")
		}
		if err := c.Auth(a); err != nil {
			return err
		}
	}

	if err := c.SendMail(from, to, r); err != nil {
		return err
	}
	return c.Quit()
}

func (s *SMTPSender) buildMessage(msg *EmailMessage) ([]byte, error) {
	var h mail.Header
	h.SetDate(s.now())
	h.SetAddressList("From", []*mail.Address{s.from})
	h.SetAddressList("To", []*mail.Address{{Name: msg.CustomerName, Address: msg.To}})
	h.SetSubject(msg.Subject)
	if err := h.GenerateMessageID(); err != nil {
		return nil, fmt.Errorf("generate message id: %w", err)
	}

	var buf bytes.Buffer
	mw, err := mail.CreateWriter(&buf, h)
	if err != nil {
		return nil, fmt.Errorf("create mail writer: %w", err)
	}

	tw, err := mw.CreateInline()
	if err != nil {
		return nil, fmt.Errorf("create inline writer: %w", err)
	}

	if err := writePart(tw, "text/plain", msg.TextBody); err != nil {
		return nil, err
	}
	if err := writePart(tw, "text/html", msg.HTMLBody); err != nil {
		return nil, err
	}

	if err := tw.Close(); err != nil {
		return nil, fmt.Errorf("close inline writer: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close mail writer: %w", err)
	}

	return buf.Bytes(), nil
}

func writePart(tw *mail.InlineWriter, contentType, body string) error {
	var ph mail.InlineHeader
	ph.SetContentType(contentType, map[string]string{"charset": "utf-8"})

	w, err := tw.CreatePart(ph)
	if err != nil {
		return fmt.Errorf("create %s part: %w", contentType, err)
	}
	if _, err := io.WriteString(w, body); err != nil {
		w.Close()
		return fmt.Errorf("write %s part: %w", contentType, err)
	}
	return w.Close()
}
