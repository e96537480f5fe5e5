package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Nihalturkar/Event-System-backend/pkg/config"
	"github.com/Nihalturkar/Event-System-backend/pkg/logger"
)

// Client sends SMS messages through the configured gateway. In dev
// mode messages are logged instead of sent.
type Client struct {
	cfg        config.SMSConfig
	httpClient *http.Client
}

func NewClient(cfg config.SMSConfig) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// DevMode reports whether the gateway is bypassed.
func (c *Client) DevMode() bool {
	return c.cfg.DevMode
}

type sendRequest struct {
	To       string `json:"to"`
	Message  string `json:"message"`
	SenderID string `json:"sender_id"`
}

// SendOTP delivers the one-time password to the phone number.
func (c *Client) SendOTP(ctx context.Context, phone, otp string) error {
	message := fmt.Sprintf("Your verification code is %s. Valid for 5 minutes.", otp)

	if c.cfg.DevMode {
		logger.Auth("sms_dev_mode", "OTP not sent, dev mode active", map[string]interface{}{
			"phone": phone,
		})
		return nil
	}

	body, err := json.Marshal(sendRequest{
		To:       phone,
		Message:  message,
		SenderID: c.cfg.SenderID,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal sms request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.cfg.APIURL+"/send", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call sms gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sms gateway error (status %d)", resp.StatusCode)
	}
	return nil
}
