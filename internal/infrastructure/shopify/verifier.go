package shopify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"

	"github.com/rs/zerolog"
)

// WebhookVerifier validates inbound Shopify webhook signatures.
//
// The contract is a bare boolean: the verifier never surfaces why a
// verification failed, so a webhook sender cannot use it as an
// oracle. Internal problems (such as an empty secret) are logged with
// full detail server-side and reported as "invalid".
type WebhookVerifier struct {
	secret []byte
	logger zerolog.Logger
}

// NewWebhookVerifier creates a verifier keyed with the shared API secret.
func NewWebhookVerifier(secret string, logger zerolog.Logger) *WebhookVerifier {
	return &WebhookVerifier{
		secret: []byte(secret),
		logger: logger,
	}
}

// Verify computes HMAC-SHA256 over the raw request body and compares
// the base64 encoding against the X-Shopify-Hmac-Sha256 header value
// in constant time. A missing header is invalid without any HMAC
// being computed.
func (v *WebhookVerifier) Verify(body []byte, hmacHeader string) bool {
	if hmacHeader == "" {
		return false
	}
	if len(v.secret) == 0 {
		v.logger.Error().Msg("Webhook verification attempted without a configured API secret")
		return false
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(hmacHeader))
}
