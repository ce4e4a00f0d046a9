package utils

import (
	"fmt"

	"github.com/raushankrgupta/glow-studio/config"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail sends an email using SendGrid
func SendEmail(toName, toEmail, subject, textContent, htmlContent string) error {
	if config.SendGridAPIKey == "" {
		return fmt.Errorf("SENDGRID_API_KEY is not set in environment variables")
	}

	from := mail.NewEmail("Glow Studio", config.MailFrom)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, textContent, htmlContent)
	client := sendgrid.NewSendClient(config.SendGridAPIKey)

	response, err := client.Send(message)
	if err != nil {
		Log.Error().Err(err).Str("to", toEmail).Msg("error sending email")
		return err
	}

	if response.StatusCode >= 400 {
		Log.Error().Int("status", response.StatusCode).Str("body", response.Body).Msg("SendGrid API error")
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	Log.Info().Str("to", toEmail).Int("status", response.StatusCode).Msg("email sent")
	return nil
}

// SendWelcomeEmail greets a newly registered user
func SendWelcomeEmail(name, email string) error {
	return SendEmail(name, email, "Welcome to Glow Studio",
		fmt.Sprintf("Hi %s, your studio is ready. Upload a portrait to start trying on looks.", name),
		fmt.Sprintf("<h1>Hi %s!</h1><p>Your studio is ready. Upload a portrait to start trying on looks.</p>", name))
}

// SendResetCodeEmail sends the one-time code for a password reset
func SendResetCodeEmail(name, email, code string) error {
	return SendEmail(name, email, "Reset Password OTP",
		fmt.Sprintf("Your OTP for password reset is: %s", code),
		fmt.Sprintf("<h1>Your OTP for password reset is: <strong>%s</strong></h1>", code))
}
