package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strconv"

	"github.com/jordan-wright/email"
	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.From != ""
}

// Mailer sends a single HTML message.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

type GomailMailer struct {
	cfg    SMTPConfig
	dialer *gomail.Dialer
}

func NewGomailMailer(cfg SMTPConfig) *GomailMailer {
	return &GomailMailer{cfg: cfg, dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)}
}

func (m *GomailMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

var notificationTemplate = template.Must(template.New("notification").Parse(
	`<h2>{{.Title}}</h2><p>{{.Message}}</p><p style="color:#888">{{.Restaurant}}</p>`))

type NotificationEmailData struct {
	Title      string
	Message    string
	Restaurant string
}

func RenderNotificationEmail(data NotificationEmailData) (string, error) {
	var body bytes.Buffer
	if err := notificationTemplate.Execute(&body, data); err != nil {
		return "", err
	}
	return body.String(), nil
}

// Attachment is a file sent along with a digest.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// DigestSender mails reports with attachments.
type DigestSender interface {
	SendDigest(to, subject, text string, attachments ...Attachment) error
}

type SMTPDigestSender struct {
	cfg SMTPConfig
}

func NewDigestSender(cfg SMTPConfig) *SMTPDigestSender {
	return &SMTPDigestSender{cfg: cfg}
}

func (s *SMTPDigestSender) SendDigest(to, subject, text string, attachments ...Attachment) error {
	e := email.NewEmail()
	e.From = s.cfg.From
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(text)
	for _, a := range attachments {
		if _, err := e.Attach(bytes.NewReader(a.Content), a.Filename, a.ContentType); err != nil {
			return fmt.Errorf("attach %s: %w", a.Filename, err)
		}
	}

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	return e.Send(s.cfg.Host+":"+strconv.Itoa(s.cfg.Port), auth)
}
