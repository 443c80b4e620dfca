package utils

import (
	"coursehub/config"
	"fmt"
	"net/smtp"
	"strings"
	"time"
)

// SendEmail sends an HTML email through the configured SMTP account.
// A no-op when no sender is configured (local development, tests).
func SendEmail(to []string, subject string, htmlBody string) error {
	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password
	if from == "" {
		return nil
	}

	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: CourseHub <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg)); err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// getEmailTemplate wraps body content in the shared layout
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1B3A5C; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1B3A5C; line-height: 1.6; }
			.content h2 { color: #1B3A5C; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #4A90D9; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>COURSEHUB</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 CourseHub. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// SendPaymentReceipt confirms a completed course purchase
func SendPaymentReceipt(email, name, courseTitle, reference string, amount float64, expiresAt time.Time) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your payment for <b>%s</b> was successful.</p>
		<div class="info-box">
			Reference: %s<br>
			Amount: %.2f<br>
			Access until: %s
		</div>
		<p>You can start learning right away from your course page.</p>
	`, name, courseTitle, reference, amount, expiresAt.Format("02 Jan 2006"))

	go SendEmail([]string{email}, "Payment confirmation - "+courseTitle, getEmailTemplate("Payment Received", body))
}

// SendAccessExpiryReminder warns that course access is about to run out
func SendAccessExpiryReminder(email, name, courseTitle string, expiresAt time.Time) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your access to <b>%s</b> expires on <b>%s</b>.</p>
		<p>Make sure to finish the remaining materials before then.</p>
	`, name, courseTitle, expiresAt.Format("02 Jan 2006"))

	go SendEmail([]string{email}, "Your course access expires soon", getEmailTemplate("Access Expiry Reminder", body))
}
