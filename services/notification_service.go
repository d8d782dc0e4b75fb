package services

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"ctfapi/config"
)

// NotificationService delivers best-effort email notifications. When no mail
// host is configured, messages are logged instead of sent so the platform
// keeps working without an SMTP relay.
type NotificationService struct {
	host     string
	port     string
	username string
	password string
}

func NewNotificationService() *NotificationService {
	return &NotificationService{
		host:     config.MailHost,
		port:     config.MailPort,
		username: config.MailUsername,
		password: config.MailPassword,
	}
}

// SendSessionExpiredEmail informs a user their challenge session ran out of time
func (s *NotificationService) SendSessionExpiredEmail(to, name string) error {
	subject := "Your CTF challenge session has expired"
	body := fmt.Sprintf("Hi %s,\n\nYour challenge session has run out of time. Contact an admin if you believe you should be granted a reset.\n", name)
	return s.send(to, subject, body)
}

// SendApprovalEmail informs a user their account was approved
func (s *NotificationService) SendApprovalEmail(to, name string) error {
	subject := "Your account has been approved"
	body := fmt.Sprintf("Hi %s,\n\nYour account has been approved. You can now log in and start the challenge.\n", name)
	return s.send(to, subject, body)
}

// SendPasswordResetEmail sends a password reset link carrying the reset token
func (s *NotificationService) SendPasswordResetEmail(to, resetToken string) error {
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", config.ClientURL, resetToken)
	subject := "Reset your password"
	body := fmt.Sprintf("Click the link below to reset your password. It expires in 1 hour.\n\n%s\n\nIf you didn't request this reset, ignore this email.\n", resetLink)
	return s.send(to, subject, body)
}

// SendSupportEmail forwards a support request to the configured support inbox
func (s *NotificationService) SendSupportEmail(name, email, issueType, subject, message string) error {
	body := fmt.Sprintf("From: %s <%s>\nIssue type: %s\n\n%s\n", name, email, issueType, message)
	return s.send(s.username, fmt.Sprintf("[Support] %s", subject), body)
}

func (s *NotificationService) send(to, subject, body string) error {
	if s.host == "" {
		log.Printf("Mail not configured, notification to %s: %s", to, subject)
		return nil
	}

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	msg := strings.Join([]string{
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-version: 1.0",
		`Content-Type: text/plain; charset="UTF-8"`,
		"",
		body,
	}, "\r\n")

	return smtp.SendMail(s.host+":"+s.port, auth, s.username, []string{to}, []byte(msg))
}
