package services

import (
	"context"
	"fmt"
	"log"
	"net/smtp"

	"alowais/internal/config"
)

// EmailService handles sending emails
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// SendHTMLEmail sends an HTML email with plain text fallback
func (s *EmailService) SendHTMLEmail(to, subject, htmlBody, textBody string) error {
	if !s.cfg.Enabled {
		fmt.Printf("[EMAIL] Would send to %s: %s\n", to, subject)
		return nil
	}

	// Validate configuration
	if s.cfg.SMTPHost == "" || s.cfg.Username == "" || s.cfg.Password == "" {
		return fmt.Errorf("email service not properly configured")
	}

	// Set up authentication
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)

	from := s.cfg.FromEmail
	if s.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.cfg.FromName, s.cfg.FromEmail)
	}

	// Build multipart message
	boundary := "----=_NextPart_1234567890"

	headers := fmt.Sprintf("From: %s\r\n", from) +
		fmt.Sprintf("To: %s\r\n", to) +
		fmt.Sprintf("Subject: %s\r\n", subject) +
		"MIME-Version: 1.0\r\n" +
		fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n", boundary) +
		"\r\n"

	// Plain text part
	message := headers +
		fmt.Sprintf("--%s\r\n", boundary) +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"Content-Transfer-Encoding: quoted-printable\r\n" +
		"\r\n" +
		textBody + "\r\n"

	// HTML part (if provided)
	if htmlBody != "" {
		message += fmt.Sprintf("--%s\r\n", boundary) +
			"Content-Type: text/html; charset=UTF-8\r\n" +
			"Content-Transfer-Encoding: quoted-printable\r\n" +
			"\r\n" +
			htmlBody + "\r\n"
	}

	message += fmt.Sprintf("--%s--\r\n", boundary)

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	if err := smtp.SendMail(addr, auth, s.cfg.FromEmail, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// IsEnabled returns whether email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.cfg.Enabled
}

// EmailChannel delivers inquiry alerts to the configured admin address
type EmailChannel struct {
	svc        *EmailService
	adminEmail string
	timezone   string
}

// NewEmailChannel creates the email notification channel
func NewEmailChannel(svc *EmailService, cfg *config.NotifyConfig) *EmailChannel {
	return &EmailChannel{
		svc:        svc,
		adminEmail: cfg.AdminEmail,
		timezone:   cfg.Timezone,
	}
}

// Name implements Channel
func (c *EmailChannel) Name() string {
	return "email"
}

// Send implements Channel. net/smtp has no context support; the dispatcher
// timeout bounds the wait.
func (c *EmailChannel) Send(ctx context.Context, alert *InquiryAlert) error {
	if c.adminEmail == "" {
		log.Printf("[EMAIL] Admin email not configured, cannot deliver inquiry alert")
		return fmt.Errorf("admin email not configured")
	}

	subject := "New Inquiry"
	if alert.PropertyTitle != nil {
		subject = fmt.Sprintf("New Inquiry - %s", *alert.PropertyTitle)
	}

	return c.svc.SendHTMLEmail(c.adminEmail, subject, c.buildHTML(alert), c.buildText(alert))
}

// buildHTML renders the inquiry alert email
func (c *EmailChannel) buildHTML(alert *InquiryAlert) string {
	propertyBlock := ""
	if alert.PropertyTitle != nil {
		propertyBlock = fmt.Sprintf(`
        <div style="margin-bottom: 20px;">
            <div style="font-weight: bold; color: #0047FF; margin-bottom: 5px;">🏠 Property:</div>
            <div style="color: #333;"><strong>%s</strong></div>
        </div>`, *alert.PropertyTitle)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>New Property Inquiry</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; margin: 0; padding: 0;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f8f9fa;">
        <div style="background: linear-gradient(135deg, #0047FF 0%%, #001F3F 100%%); color: white; padding: 30px 20px; text-align: center; border-radius: 8px 8px 0 0;">
            <h1 style="margin: 0;">🔔 New Property Inquiry!</h1>
        </div>
        <div style="background: white; padding: 30px; border-radius: 0 0 8px 8px;">
            <div style="background: #FFF3CD; border-left: 4px solid #FF8C42; padding: 15px; margin-bottom: 20px; border-radius: 4px;">
                <strong>⚡ Quick Action Required!</strong><br>
                A potential customer is waiting for your response.
            </div>
            %s
            <div style="margin-bottom: 20px;">
                <div style="font-weight: bold; color: #0047FF; margin-bottom: 5px;">👤 Name:</div>
                <div style="color: #333;">%s</div>
            </div>
            <div style="margin-bottom: 20px;">
                <div style="font-weight: bold; color: #0047FF; margin-bottom: 5px;">📧 Email:</div>
                <div style="color: #333;"><a href="mailto:%s">%s</a></div>
            </div>
            <div style="margin-bottom: 20px;">
                <div style="font-weight: bold; color: #0047FF; margin-bottom: 5px;">📱 Phone:</div>
                <div style="color: #333;"><a href="tel:%s">%s</a></div>
            </div>
            <div style="margin-bottom: 20px;">
                <div style="font-weight: bold; color: #0047FF; margin-bottom: 5px;">💬 Message:</div>
                <div style="color: #333; white-space: pre-wrap;">%s</div>
            </div>
            <div style="margin-bottom: 20px;">
                <div style="font-weight: bold; color: #0047FF; margin-bottom: 5px;">⏰ Submitted:</div>
                <div style="color: #333;">%s</div>
            </div>
            <div style="text-align: center; margin-top: 30px;">
                <a href="%s" style="display: inline-block; background: #25D366; color: white; padding: 15px 30px; text-decoration: none; border-radius: 8px; font-weight: bold;">
                    📱 Reply via WhatsApp
                </a>
            </div>
            <div style="text-align: center; margin-top: 10px; color: #718096; font-size: 14px;">
                Click the button above to start a WhatsApp conversation instantly!
            </div>
        </div>
        <div style="text-align: center; margin-top: 20px; color: #718096; font-size: 14px;">
            <p>Alowais Estates - Sharjah, UAE</p>
            <p style="font-size: 12px;">This is an automated notification from your website</p>
        </div>
    </div>
</body>
</html>`,
		propertyBlock,
		alert.Name,
		alert.Email, alert.Email,
		alert.Phone, alert.Phone,
		alert.Message,
		FormatLocalTime(alert.SubmittedAt, c.timezone),
		WhatsAppLink(alert.Phone))
}

// buildText renders the plain text fallback
func (c *EmailChannel) buildText(alert *InquiryAlert) string {
	propertyLine := ""
	if alert.PropertyTitle != nil {
		propertyLine = fmt.Sprintf("Property: %s\n", *alert.PropertyTitle)
	}

	return fmt.Sprintf(`New Property Inquiry

%sName: %s
Email: %s
Phone: %s
Submitted: %s

Message:
%s

Reply via WhatsApp: %s

Inquiry ID: %s`,
		propertyLine,
		alert.Name,
		alert.Email,
		alert.Phone,
		FormatLocalTime(alert.SubmittedAt, c.timezone),
		alert.Message,
		WhatsAppLink(alert.Phone),
		alert.InquiryID)
}
