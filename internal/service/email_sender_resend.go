package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"
)

// ResendEmailSender delivers verification and password-reset emails through
// the Resend API.
type ResendEmailSender struct {
	client     *resend.Client
	from       string
	appBaseURL string
	verifyPath string
	resetPath  string
}

func NewResendEmailSender(apiKey string, from string, appBaseURL string) *ResendEmailSender {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(from) == "" {
		return &ResendEmailSender{}
	}
	return &ResendEmailSender{
		client:     resend.NewClient(apiKey),
		from:       from,
		appBaseURL: strings.TrimRight(appBaseURL, "/"),
		verifyPath: "/auth/verify-email",
		resetPath:  "/auth/reset-password",
	}
}

func (s *ResendEmailSender) SendVerificationEmail(ctx context.Context, email string, token string) error {
	link := s.buildURL(s.verifyPath, token)
	subject := "Verify your email"
	html := fmt.Sprintf("<p>Click to verify your email:</p><p><a href=%q>Verify Email</a></p>", link)
	text := fmt.Sprintf("Verify your email: %s", link)
	return s.send(ctx, email, subject, html, text)
}

func (s *ResendEmailSender) SendPasswordResetEmail(ctx context.Context, email string, token string) error {
	link := s.buildURL(s.resetPath, token)
	subject := "Reset your password"
	html := fmt.Sprintf("<p>You have requested to reset your password.</p><p><a href=%q>Reset Password</a></p><p>If you did not request this, please ignore this email.</p>", link)
	text := fmt.Sprintf("Reset your password: %s\n\nIf you did not request this, please ignore this email.", link)
	return s.send(ctx, email, subject, html, text)
}

func (s *ResendEmailSender) buildURL(path string, token string) string {
	if s.appBaseURL == "" {
		return token
	}
	return fmt.Sprintf("%s%s?token=%s", s.appBaseURL, path, token)
}

func (s *ResendEmailSender) send(_ context.Context, to string, subject string, html string, text string) error {
	if s.client == nil {
		return errors.New("email sender not configured")
	}
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
		Text:    text,
	}
	if _, err := s.client.Emails.Send(params); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
