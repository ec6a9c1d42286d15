package utils

import (
	"fmt"
	"log"

	"lms/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendWelcomeEmail sends the post-registration welcome mail. Callers fire it
// from a goroutine; a failed send must never fail the registration itself.
func SendWelcomeEmail(toEmail, name string) error {
	if config.AppConfig.SendGridKey == "" {
		log.Println("SENDGRID_API_KEY not set, skipping welcome email")
		return nil
	}

	from := mail.NewEmail("LMS", config.AppConfig.EmailSender)
	to := mail.NewEmail(name, toEmail)
	subject := "Welcome to the platform"
	plain := fmt.Sprintf("Hi %s, your account has been created.", name)
	html := getEmailTemplate("Welcome!", fmt.Sprintf(
		"<h2>Hi %s,</h2><p>Your account has been created. You can now browse the course catalog and enroll.</p>", name))

	message := mail.NewSingleEmail(from, subject, to, plain, html)
	client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)

	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending welcome email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("Welcome email to %s rejected with status %d", toEmail, resp.StatusCode)
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}

	return nil
}

// getEmailTemplate wraps body content in the shared HTML layout
func getEmailTemplate(title, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #1A237E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; }
			.content { padding: 40px 30px; color: #1A237E; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>%s</h1></div>
			<div class="content">%s</div>
			<div class="footer">You received this email because an account was created with this address.</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}
