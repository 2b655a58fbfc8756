package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrSendFailed is what callers see when the provider rejects a send; the
// status and body only go to the log.
var ErrSendFailed = errors.New("send failed")

// BrevoClient talks to the transactional messaging provider.
type BrevoClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *zap.Logger

	// The provider throttles API calls; pacing outbound requests keeps a
	// burst of bookings from turning into 429s.
	pace *rate.Limiter
}

func NewBrevoClient(baseURL, apiKey string, logger *zap.Logger) *BrevoClient {
	return &BrevoClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
		pace:    rate.NewLimiter(rate.Limit(5), 5),
	}
}

type brevoContact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type brevoEmailPayload struct {
	Sender      brevoContact   `json:"sender"`
	To          []brevoContact `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
}

type brevoSMSPayload struct {
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Content   string `json:"content"`
	Type      string `json:"type"`
}

func (c *BrevoClient) SendEmail(
	ctx context.Context,
	senderName, senderEmail string,
	toName, toEmail string,
	subject, htmlBody string,
) error {

	payload := brevoEmailPayload{
		Sender:      brevoContact{Name: senderName, Email: senderEmail},
		To:          []brevoContact{{Name: toName, Email: toEmail}},
		Subject:     subject,
		HTMLContent: htmlBody,
	}

	return c.post(ctx, "/v3/smtp/email", payload)
}

func (c *BrevoClient) SendSMS(
	ctx context.Context,
	sender, recipient, content string,
) error {

	payload := brevoSMSPayload{
		Sender:    sender,
		Recipient: recipient,
		Content:   content,
		Type:      "transactional",
	}

	return c.post(ctx, "/v3/transactionalSMS/sms", payload)
}

func (c *BrevoClient) post(ctx context.Context, path string, payload any) error {
	if err := c.pace.Wait(ctx); err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal provider payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+path,
		bytes.NewReader(body),
	)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("provider request failed",
			zap.String("path", path),
			zap.Error(err),
		)
		return ErrSendFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Keep enough of the body to diagnose, never the whole thing.
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.logger.Error("provider rejected send",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", respBody),
		)
		return ErrSendFailed
	}

	return nil
}
