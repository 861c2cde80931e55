package models

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"gopkg.in/gomail.v2"
)

type EmailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(host, port, user, pass, from string) (*EmailService, error) {
	if host == "" || user == "" || pass == "" {
		return nil, fmt.Errorf("SMTP configuration missing")
	}

	p, err := strconv.Atoi(port)
	if err != nil {
		p = 587
	}

	return &EmailService{
		dialer: gomail.NewDialer(host, p, user, pass),
		from:   from,
	}, nil
}

func (s *EmailService) send(to, subject, text, html string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", text)
	m.AddAlternative("text/html", html)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *EmailService) SendActivationEmail(to, activationLink string) error {
	text := fmt.Sprintf("Click the link below to activate your account:\n%s", activationLink)
	html := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px; }
        .logo { font-size: 24px; font-weight: bold; color: #16a34a; text-align: center; }
        .button { display: inline-block; background-color: #16a34a; color: white; padding: 12px 30px; border-radius: 8px; text-decoration: none; }
        .footer { text-align: center; margin-top: 30px; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="logo">Gorilla Shop</div>
        <h2>Activate your account</h2>
        <p>Thanks for registering. Click the button below to activate your account:</p>
        <p style="text-align: center; margin: 30px 0;"><a class="button" href="%s">Activate Account</a></p>
        <p><strong>This link expires in 48 hours.</strong></p>
        <div class="footer">
            <p>This is an automated email. Please do not reply.</p>
        </div>
    </div>
</body>
</html>
	`, activationLink)

	return s.send(to, "Activate your Gorilla Shop account", text, html)
}

func (s *EmailService) SendPasswordResetEmail(to, resetLink string) error {
	text := fmt.Sprintf("Click the link below to reset your password:\n%s", resetLink)
	html := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px; }
        .logo { font-size: 24px; font-weight: bold; color: #16a34a; text-align: center; }
        .button { display: inline-block; background-color: #16a34a; color: white; padding: 12px 30px; border-radius: 8px; text-decoration: none; }
        .footer { text-align: center; margin-top: 30px; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="logo">Gorilla Shop</div>
        <h2>Password reset request</h2>
        <p>You requested a password reset. Click the button below to choose a new password:</p>
        <p style="text-align: center; margin: 30px 0;"><a class="button" href="%s">Reset Password</a></p>
        <p><strong>This link expires in 30 minutes.</strong> If you did not request a reset, ignore this email.</p>
        <div class="footer">
            <p>This is an automated email. Please do not reply.</p>
        </div>
    </div>
</body>
</html>
	`, resetLink)

	return s.send(to, "Reset your Gorilla Shop password", text, html)
}

func (s *EmailService) SendOrderConfirmationEmail(to, orderNumber string, total decimal.Decimal) error {
	text := fmt.Sprintf("Your order %s has been received.\nTotal: %s", orderNumber, total.String())
	html := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px; }
        .logo { font-size: 24px; font-weight: bold; color: #16a34a; text-align: center; }
        .order-box { background-color: #f0fdf4; padding: 20px; margin: 20px 0; border-radius: 8px; }
        .footer { text-align: center; margin-top: 30px; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="logo">Gorilla Shop</div>
        <h2>Order confirmation</h2>
        <p>Thank you for your order!</p>
        <div class="order-box">
            <p><strong>Order Number:</strong> %s</p>
            <p><strong>Total Amount:</strong> %s</p>
        </div>
        <p>Your order has been received and is awaiting payment verification.</p>
        <div class="footer">
            <p>This is an automated email. Please do not reply.</p>
        </div>
    </div>
</body>
</html>
	`, orderNumber, total.String())

	return s.send(to, fmt.Sprintf("Order Confirmation #%s - Gorilla Shop", orderNumber), text, html)
}

// SendContactNotification forwards a contact form submission to the shop
// inbox so it can be answered by replying directly.
func (s *EmailService) SendContactNotification(name, email, subject, message string) error {
	text := fmt.Sprintf("From: %s <%s>\n\n%s", name, email, message)

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.from)
	m.SetHeader("Reply-To", email)
	m.SetHeader("Subject", fmt.Sprintf("Contact form: %s", subject))
	m.SetBody("text/plain", text)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
