package email

import (
	"fmt"
	"mime"
	"net/smtp"
	"strings"
	"time"
)

// Message is a plain-text mail. FromName is optional.
type Message struct {
	FromName string
	To       []string
	Subject  string
	Body     string
	Date     time.Time
}

// Build renders the RFC 5322 headers and body. from is the SMTP sender
// address.
func (m Message) Build(from string) ([]byte, error) {
	if len(m.To) == 0 {
		return nil, fmt.Errorf("no recipients")
	}
	for _, to := range m.To {
		if !strings.Contains(to, "@") {
			return nil, fmt.Errorf("invalid email address: %s", to)
		}
	}
	sender := from
	if m.FromName != "" {
		sender = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", m.FromName), from)
	}
	date := m.Date
	if date.IsZero() {
		date = time.Now()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", sender)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(m.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", m.Subject))
	fmt.Fprintf(&b, "Date: %s\r\n", date.Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(strings.ReplaceAll(m.Body, "\n", "\r\n"))
	b.WriteString("\r\n")
	return []byte(b.String()), nil
}

func Send(server string, port int, username, password string, m Message) error {
	msg, err := m.Build(username)
	if err != nil {
		return err
	}
	auth := smtp.PlainAuth("", username, password, server)
	addr := fmt.Sprintf("%s:%d", server, port)
	return smtp.SendMail(addr, auth, username, m.To, msg)
}
