// File: /services/email_service.go
package services

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"garagehub-api/config"
	"garagehub-api/utils"
)

// Mailer is the notification surface the controllers and jobs depend on.
// EmailService is the SMTP-backed implementation; tests substitute a stub.
type Mailer interface {
	SendWelcomeEmail(email, name string) error
	SendServiceCompletedEmail(email, customerName, vehicleModel string) error
	SendPendingReminderEmail(email, customerName, vehicleModel string, daysPending int) error
}

type EmailService struct {
	config *config.Config
	dialer *gomail.Dialer
}

func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	return &EmailService{
		config: cfg,
		dialer: dialer,
	}
}

// SendWelcomeEmail greets a freshly registered shop owner.
func (es *EmailService) SendWelcomeEmail(email, name string) error {
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Welcome to GarageHub</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { text-align: center; background: #2980b9; color: white; padding: 30px; border-radius: 10px 10px 0 0; }
        .content { background: #f8f9fa; padding: 30px; border-radius: 0 0 10px 10px; }
        .footer { text-align: center; margin-top: 20px; color: #666; font-size: 14px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Welcome to GarageHub!</h1>
            <p>Your shop, organized</p>
        </div>
        <div class="content">
            <h2>Hello %s!</h2>
            <p>Your account is ready. Start by adding your first customer and their vehicle, then log services as they come in.</p>
        </div>
        <div class="footer">
            <p>GarageHub - workshop management</p>
        </div>
    </div>
</body>
</html>`, name)

	return es.send(email, "Welcome to GarageHub!", htmlBody)
}

// SendServiceCompletedEmail notifies a customer that their vehicle is ready
// for collection.
func (es *EmailService) SendServiceCompletedEmail(email, customerName, vehicleModel string) error {
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
    <h2>Hello %s,</h2>
    <p>Good news - the service on your <strong>%s</strong> is complete and the vehicle is ready for collection.</p>
    <p>Thank you for choosing us!</p>
</body>
</html>`, customerName, vehicleModel)

	return es.send(email, "Your vehicle is ready for collection", htmlBody)
}

// SendPendingReminderEmail nudges a customer whose vehicle has been sitting
// in the shop for a while.
func (es *EmailService) SendPendingReminderEmail(email, customerName, vehicleModel string, daysPending int) error {
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
    <h2>Hello %s,</h2>
    <p>A quick update: the service on your <strong>%s</strong> has been in progress for %d days. We will let you know as soon as it is ready.</p>
</body>
</html>`, customerName, vehicleModel, daysPending)

	return es.send(email, "Service update for your vehicle", htmlBody)
}

func (es *EmailService) send(to, subject, htmlBody string) error {
	if !utils.IsValidEmail(to) {
		return fmt.Errorf("invalid recipient address: %s", to)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	return nil
}
