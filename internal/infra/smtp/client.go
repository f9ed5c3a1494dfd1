package smtp

import (
	"context"
	"errors"
	"net"
	"net/textproto"
	"strings"

	"playlist_tracker_bot/internal/domain/mail"

	"gopkg.in/gomail.v2"
)

// Client submits multipart messages over authenticated STARTTLS SMTP. Every
// failure is wrapped in a mail.SendError carrying its classification; the
// client itself never retries.
type Client struct {
	dialer *gomail.Dialer
	from   string
}

func NewClient(host string, port int, email, password string) *Client {
	return &Client{
		dialer: gomail.NewDialer(host, port, email, password),
		from:   email,
	}
}

var _ mail.Client = (*Client)(nil)

// Send implements mail.Client.
func (c *Client) Send(ctx context.Context, msg mail.Message) error {
	if err := ctx.Err(); err != nil {
		return &mail.SendError{Kind: mail.FailureOther, Err: err}
	}

	m := gomail.NewMessage()
	m.SetHeader("From", c.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	m.AddAlternative("text/html", msg.HTML)

	if err := c.dialer.DialAndSend(m); err != nil {
		return &mail.SendError{Kind: classify(err), Err: err}
	}
	return nil
}

func classify(err error) mail.FailureKind {
	var protoErr *textproto.Error
	if errors.As(err, &protoErr) {
		switch protoErr.Code {
		case 530, 534, 535, 538:
			return mail.FailureAuth
		default:
			return mail.FailureProtocol
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return mail.FailureOther
	}

	// smtp.Auth implementations surface some failures as plain errors.
	lower := strings.ToLower(err.Error())
	if strings.Contains(lower, "auth") || strings.Contains(lower, "username and password") {
		return mail.FailureAuth
	}
	return mail.FailureOther
}
