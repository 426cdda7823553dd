package services

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/gomail.v2"

	"amthub/internal/utils"
)

type MailService struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	SiteURL  string
	Enabled  bool
}

func NewMailService() *MailService {
	host := os.Getenv("SMTP_HOST")
	port := utils.StringToInt(os.Getenv("SMTP_PORT"))
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	from := os.Getenv("SMTP_FROM")
	siteURL := os.Getenv("SITE_URL")
	if siteURL == "" {
		siteURL = "http://localhost:8080"
	}

	enabled := host != "" && port != 0 && user != "" && pass != "" && from != ""
	if !enabled {
		log.Println("MailService disabled: missing SMTP environment variables")
	}

	return &MailService{
		Host:     host,
		Port:     port,
		Username: user,
		Password: pass,
		From:     from,
		SiteURL:  siteURL,
		Enabled:  enabled,
	}
}

func (s *MailService) sendAsync(to, subject, body string) {
	if !s.Enabled {
		return
	}

	go func() {
		m := gomail.NewMessage()
		m.SetHeader("From", m.FormatAddress(s.From, "AWIBI MedTech"))
		m.SetHeader("To", to)
		m.SetHeader("Subject", subject)
		m.SetBody("text/html", body)

		d := gomail.NewDialer(s.Host, s.Port, s.Username, s.Password)
		if err := d.DialAndSend(m); err != nil {
			log.Printf("Failed to send email to %s: %v", to, err)
		} else {
			log.Printf("Email sent to %s: %s", to, subject)
		}
	}()
}

func (s *MailService) parseTemplate(templateName string, data interface{}) (string, error) {
	path := filepath.Join("web", "templates", "email", templateName)
	t, err := template.ParseFiles(path)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", templateName, err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}
	return buf.String(), nil
}

// SendVerificationEmail delivers the email-verification link. The raw token
// leaves the system only through this message.
func (s *MailService) SendVerificationEmail(email, name, token string) {
	body, err := s.parseTemplate("verify.html", map[string]string{
		"Name": name,
		"Link": fmt.Sprintf("%s/verify-email/%s", s.SiteURL, token),
	})
	if err != nil {
		log.Printf("Error rendering verification email: %v", err)
		return
	}
	s.sendAsync(email, "Verify your AWIBI MedTech email", body)
}

// SendPasswordResetEmail delivers the reset link. The link expires with the token.
func (s *MailService) SendPasswordResetEmail(email, name, token string) {
	body, err := s.parseTemplate("reset.html", map[string]string{
		"Name": name,
		"Link": fmt.Sprintf("%s/reset-password/%s", s.SiteURL, token),
	})
	if err != nil {
		log.Printf("Error rendering reset email: %v", err)
		return
	}
	s.sendAsync(email, "AWIBI MedTech password reset", body)
}

// SendEventRegistrationEmail confirms an event registration with its code.
func (s *MailService) SendEventRegistrationEmail(email, name, eventTitle, code string) {
	body, err := s.parseTemplate("event_registration.html", map[string]string{
		"Name":  name,
		"Event": eventTitle,
		"Code":  code,
	})
	if err != nil {
		log.Printf("Error rendering registration email: %v", err)
		return
	}
	s.sendAsync(email, "You're registered: "+eventTitle, body)
}
