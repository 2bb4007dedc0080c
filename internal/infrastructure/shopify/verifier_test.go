package shopify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, secret string, body []byte) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestVerifyAcceptsValidSignature(t *testing.T) {
	secret := "shhh-webhook-secret"
	body := []byte(`{"id":123456,"financial_status":"paid"}`)

	v := NewWebhookVerifier(secret, zerolog.Nop())
	require.True(t, v.Verify(body, sign(t, secret, body)))
}

func TestVerifyRejectsTamperedBody(t *testing.T) {
	secret := "shhh-webhook-secret"
	body := []byte(`{"id":123456,"financial_status":"paid"}`)
	header := sign(t, secret, body)

	v := NewWebhookVerifier(secret, zerolog.Nop())

	tampered := []byte(`{"id":123456,"financial_status":"refunded"}`)
	require.False(t, v.Verify(tampered, header))
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	body := []byte(`{"id":1}`)
	header := sign(t, "the-real-secret", body)

	v := NewWebhookVerifier("a-different-secret", zerolog.Nop())
	require.False(t, v.Verify(body, header))
}

func TestVerifyRejectsMissingHeader(t *testing.T) {
	v := NewWebhookVerifier("secret", zerolog.Nop())
	require.False(t, v.Verify([]byte(`{}`), ""))
}

func TestVerifyRejectsWhenSecretUnconfigured(t *testing.T) {
	body := []byte(`{}`)
	v := NewWebhookVerifier("", zerolog.Nop())
	require.False(t, v.Verify(body, sign(t, "", body)))
}

func TestVerifyRejectsMalformedHeader(t *testing.T) {
	v := NewWebhookVerifier("secret", zerolog.Nop())
	require.False(t, v.Verify([]byte(`{}`), "not-base64-at-all!!!"))
}
