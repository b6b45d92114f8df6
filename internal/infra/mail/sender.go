package mail

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"gopkg.in/gomail.v2"
)

func NewEmailSender(host string, port int, user, password string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
	}
}

// SendFollowUp manda o lembrete para o email do lead, em nome do owner.
func (s *EmailSender) SendFollowUp(to, owner, leadName, company string, days int, suggestedAction string) error {
	data := FollowUpEmailData{
		Owner:           owner,
		LeadName:        leadName,
		Company:         company,
		DaysSince:       days,
		SuggestedAction: suggestedAction,
	}

	tmplPath := filepath.Join("templates", "followup.html")
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("erro ao ler template de email: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", "nao-responda@vendaflow.com")
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("%s, retomando nossa conversa 👋", leadName))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
