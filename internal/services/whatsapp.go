package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"alowais/internal/config"
)

// WhatsAppService delivers inquiry alerts to the business owner's number.
// The console provider only logs the formatted payload; a real gateway is
// plugged in via the "gateway" provider.
type WhatsAppService struct {
	cfg    *config.NotifyConfig
	client *http.Client
}

// NewWhatsAppService creates a new WhatsApp notification channel
func NewWhatsAppService(cfg *config.NotifyConfig) *WhatsAppService {
	return &WhatsAppService{
		cfg:    cfg,
		client: &http.Client{},
	}
}

// Name implements Channel
func (s *WhatsAppService) Name() string {
	return "whatsapp"
}

// Send implements Channel
func (s *WhatsAppService) Send(ctx context.Context, alert *InquiryAlert) error {
	if s.cfg.OwnerPhone == "" {
		log.Printf("[WHATSAPP] Owner number not configured, alert for inquiry id=%s not sent", alert.InquiryID)
		return fmt.Errorf("owner WhatsApp number not configured")
	}

	message := s.FormatAlert(alert)

	switch strings.ToLower(s.cfg.Provider) {
	case "gateway":
		return s.sendViaGateway(ctx, s.cfg.OwnerPhone, message)
	case "console", "dev", "development", "":
		// Reference behavior: log the payload and target only
		log.Printf("[WHATSAPP] Alert for %s:\n%s", s.cfg.OwnerPhone, message)
		return nil
	default:
		return fmt.Errorf("unsupported WhatsApp provider: %s", s.cfg.Provider)
	}
}

// FormatAlert renders the plain-text alert sent to the owner
func (s *WhatsAppService) FormatAlert(alert *InquiryAlert) string {
	propertyInfo := ""
	if alert.PropertyTitle != nil {
		propertyInfo = fmt.Sprintf("\n🏠 Property: %s", *alert.PropertyTitle)
	}

	return fmt.Sprintf(`🔔 *NEW INQUIRY ALERT!*

👤 *Customer Details:*
Name: %s
Phone: %s
Email: %s%s

💬 *Message:*
%s

⏰ *Time:* %s

📱 *Quick Reply:*
%s`,
		alert.Name,
		alert.Phone,
		alert.Email,
		propertyInfo,
		alert.Message,
		FormatLocalTime(alert.SubmittedAt, s.cfg.Timezone),
		WhatsAppLink(alert.Phone))
}

// sendViaGateway posts the alert to an external messaging gateway
func (s *WhatsAppService) sendViaGateway(ctx context.Context, to, message string) error {
	if s.cfg.GatewayURL == "" {
		return fmt.Errorf("WhatsApp gateway not properly configured")
	}

	payload := map[string]string{
		"to":      to,
		"message": message,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal gateway payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.GatewayURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create gateway request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if s.cfg.GatewayAPIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.GatewayAPIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send gateway request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errorResp map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorResp)
		return fmt.Errorf("gateway error (status %d): %v", resp.StatusCode, errorResp)
	}

	return nil
}
