package tiendanube

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// WebhookSignatureHeader carries hex(HMAC_SHA256(body, app secret)).
const WebhookSignatureHeader = "X-Linkedstore-HMAC-SHA256"

// Webhook events the app subscribes to on install.
const (
	EventAppUninstalled = "app/uninstalled"
	EventOrderPaid      = "order/paid"
)

// VerifyWebhook checks the signature of a webhook body.
func VerifyWebhook(body []byte, signature, secret string) bool {
	if signature == "" || secret == "" {
		return false
	}
	return hmac.Equal([]byte(SignWebhook(body, secret)), []byte(strings.ToLower(strings.TrimSpace(signature))))
}

// SignWebhook computes the signature the platform sends for body.
func SignWebhook(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// WebhookEvent is the notification body: which store, what happened, to what.
type WebhookEvent struct {
	StoreID json.Number `json:"store_id" validate:"required"`
	Event   string      `json:"event" validate:"required"`
	ID      json.Number `json:"id"`
}

var validate = validator.New()

func ParseWebhookEvent(body []byte) (*WebhookEvent, error) {
	var ev WebhookEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, fmt.Errorf("decode webhook event: %w", err)
	}
	if err := validate.Struct(ev); err != nil {
		return nil, fmt.Errorf("invalid webhook event: %w", err)
	}
	return &ev, nil
}
