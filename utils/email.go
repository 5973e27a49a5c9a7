package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

func SendEmail(to, subject, body string) error {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("EMAIL_USER"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		port,
		os.Getenv("EMAIL_USER"),
		os.Getenv("EMAIL_PASS"),
	)

	return d.DialAndSend(m)
}

// SendOTPEmail mails a verification code to a newly registered user.
func SendOTPEmail(to, name, otp string) error {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your MedConnect verification code is:</p>
		<h2>%s</h2>
		<p>The code expires in 10 minutes.</p>
		<p>Best regards,<br>The MedConnect Team</p>
	`, name, otp)
	return SendEmail(to, "Verify your MedConnect account", body)
}

// SendApprovalEmail tells a doctor their registration was approved.
func SendApprovalEmail(to, name string) error {
	body := fmt.Sprintf(`
		<p>Dear Dr. %s,</p>
		<p>Your registration has been approved. Patients can now find your
		profile and book appointments during your availability hours.</p>
		<p>Best regards,<br>The MedConnect Team</p>
	`, name)
	return SendEmail(to, "Your MedConnect registration is approved", body)
}
