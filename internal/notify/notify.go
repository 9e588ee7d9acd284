// Package notify hands transactional emails to whatever delivers them. The
// service never renders or sends mail itself.
package notify

import (
	"context"

	"github.com/rs/zerolog"
)

const (
	TemplateWelcome = "welcome"
	TemplateOTP     = "otp"

	RoutingKeyWelcome = "email.welcome"
	RoutingKeyOTP     = "email.otp"
)

type Notifier interface {
	SendWelcome(ctx context.Context, email, name string) error
	SendOTP(ctx context.Context, email, name, otp string) error
}

// EmailMessage is the job body consumed by the mailer.
type EmailMessage struct {
	Template string `json:"template"`
	To       string `json:"to"`
	Name     string `json:"name"`
	From     string `json:"from,omitempty"`
	Subject  string `json:"subject"`
	OTP      string `json:"otp,omitempty"`
}

func WelcomeMessage(from, email, name string) EmailMessage {
	return EmailMessage{
		Template: TemplateWelcome,
		To:       email,
		Name:     name,
		From:     from,
		Subject:  "Welcome to The Golden Spoon",
	}
}

func OTPMessage(from, email, name, otp string) EmailMessage {
	return EmailMessage{
		Template: TemplateOTP,
		To:       email,
		Name:     name,
		From:     from,
		Subject:  "Your Password Reset OTP - The Golden Spoon",
		OTP:      otp,
	}
}

// LogNotifier records the request instead of delivering it. Used when no
// broker is configured.
type LogNotifier struct {
	Log zerolog.Logger
}

func (n *LogNotifier) SendWelcome(ctx context.Context, email, name string) error {
	n.Log.Info().Str("template", TemplateWelcome).Str("to", email).Msg("email not delivered: no broker configured")
	return nil
}

func (n *LogNotifier) SendOTP(ctx context.Context, email, name, otp string) error {
	n.Log.Info().Str("template", TemplateOTP).Str("to", email).Msg("email not delivered: no broker configured")
	return nil
}
