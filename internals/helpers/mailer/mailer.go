package mailer

import (
	"fmt"
	"log"

	gomail "gopkg.in/gomail.v2"

	"maktabati_backend/internals/configs"
)

// SendResetCode emails a password-reset verification code. Best-effort:
// callers log the error but never roll anything back because of it.
func SendResetCode(to, code string) error {
	if configs.SMTPUser == "" || configs.SMTPPass == "" {
		return fmt.Errorf("smtp credentials not configured")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", configs.MailFrom)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Password Reset Request")
	m.SetBody("text/html", fmt.Sprintf(`
		<div style="max-width:500px;margin:auto;padding:20px;font-family:Arial,sans-serif;border:1px solid #eee;border-radius:10px;">
			<h2 style="text-align:center;color:#4CAF50;">Password Reset Request</h2>
			<p>You requested to reset your password. Use the verification code below to proceed:</p>
			<div style="text-align:center;margin:20px 0;">
				<span style="font-size:24px;font-weight:bold;background:#f0f0f0;padding:10px 20px;border-radius:5px;">%s</span>
			</div>
			<p style="color:#999;">If you did not request a password reset, you can ignore this email.</p>
		</div>`, code))

	d := gomail.NewDialer(configs.SMTPHost, configs.SMTPPort, configs.SMTPUser, configs.SMTPPass)
	if err := d.DialAndSend(m); err != nil {
		log.Printf("[MAILER] send reset code to %s failed: %v", to, err)
		return err
	}

	log.Printf("[MAILER] reset code sent to %s", to)
	return nil
}
