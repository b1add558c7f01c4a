package send

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/wneessen/go-mail"
)

// connectTimeout bounds the SMTP connection attempt; an accepted send then
// runs to completion or failure without cancellation.
const connectTimeout = 30 * time.Second

// EmailRequest describes one outgoing message with a file attachment.
type EmailRequest struct {
	// Addr is the SMTP server in host:port form, e.g. smtp.gmail.com:587.
	Addr     string
	Sender   string
	Password string
	To       []string
	Subject  string
	Body     string
	// AttachmentPath is the file to attach, snapshotted at launch time.
	AttachmentPath string
}

// Validate checks the request before any network activity.
func (r *EmailRequest) Validate() error {
	if _, _, err := splitAddr(r.Addr); err != nil {
		return err
	}
	if r.Sender == "" {
		return errors.New("sender address is required")
	}
	if len(r.To) == 0 {
		return errors.New("at least one recipient is required")
	}
	return nil
}

// Email connects over STARTTLS, authenticates, and sends the message with
// its attachment. Failures come back as TransportError.
func Email(ctx context.Context, req EmailRequest) error {
	if err := req.Validate(); err != nil {
		return &TransportError{Op: "email", Err: err}
	}
	host, port, _ := splitAddr(req.Addr)

	msg := mail.NewMsg()
	if err := msg.From(req.Sender); err != nil {
		return &TransportError{Op: "email", Err: err}
	}
	if err := msg.To(req.To...); err != nil {
		return &TransportError{Op: "email", Err: err}
	}
	msg.Subject(req.Subject)
	msg.SetBodyString(mail.TypeTextPlain, req.Body)
	if req.AttachmentPath != "" {
		msg.AttachFile(req.AttachmentPath)
	}

	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(req.Sender),
		mail.WithPassword(req.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTimeout(connectTimeout),
	)
	if err != nil {
		return &TransportError{Op: "email", Err: err}
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return &TransportError{Op: "email", Err: err}
	}
	return nil
}

func splitAddr(addr string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(strings.TrimSpace(addr))
	if err != nil {
		return "", 0, fmt.Errorf("smtp address must be host:port: %w", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid smtp port %q", portStr)
	}
	return host, port, nil
}
