package services

import (
	"fmt"
	"net/smtp"

	"github.com/inkwell-hq/inkwell-api/internal/config"
)

type EmailService struct {
	cfg config.SMTPConfig
}

func NewEmailService(cfg config.SMTPConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

func (s *EmailService) IsConfigured() bool {
	return s.cfg.Host != "" && s.cfg.Username != "" && s.cfg.Password != "" && s.cfg.From != ""
}

func (s *EmailService) Send(to, subject, body string) error {
	if !s.IsConfigured() {
		return nil
	}

	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.cfg.From, to, subject, body)

	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg))
}

func (s *EmailService) SendCollaboratorAdded(to, documentTitle, ownerName, permission, documentURL string) error {
	subject := fmt.Sprintf("%s shared \"%s\" with you", ownerName, documentTitle)
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>Document shared with you</h2>
			<p>Hi,</p>
			<p><strong>%s</strong> added you as a collaborator on <strong>%s</strong> with <strong>%s</strong> access.</p>
			<p><a href="%s">Open the document</a></p>
		</body>
		</html>
	`, ownerName, documentTitle, permission, documentURL)

	return s.Send(to, subject, body)
}
