package utils

import (
	"errors"
	"fl350-gear-hub/models"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestIdentityToken_RoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	token, err := GenerateIdentityToken(secret, models.Identity{ID: "user_2abc", Email: "pilot@fl350.example"}, time.Hour)
	require.NoError(t, err)

	identity, err := ParseIdentityToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "user_2abc", identity.ID)
	assert.Equal(t, "pilot@fl350.example", identity.Email)
}

func TestIdentityToken_Rejected(t *testing.T) {
	secret := []byte("test-secret")
	expired, err := GenerateIdentityToken(secret, models.Identity{ID: "user_1"}, -time.Minute)
	require.NoError(t, err)
	valid, err := GenerateIdentityToken(secret, models.Identity{ID: "user_1"}, time.Hour)
	require.NoError(t, err)

	tests := map[string]struct {
		secret []byte
		token  string
	}{
		"expired":      {secret, expired},
		"wrong secret": {[]byte("other"), valid},
		"no secret":    {nil, valid},
		"garbage":      {secret, "not-a-token"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseIdentityToken(tt.secret, tt.token)
			assert.ErrorIs(t, err, ErrInvalidIdentityToken)
		})
	}
}

type recordingSender struct {
	from, to, subject, body string
	err                     error
}

func (s *recordingSender) Send(from, toEmail, subject, htmlContent string) error {
	s.from, s.to, s.subject, s.body = from, toEmail, subject, htmlContent
	return s.err
}

func TestSendOrderConfirmationEmail(t *testing.T) {
	sender := &recordingSender{}
	svc := NewEmailServiceWithSender(sender, "dispatch@fl350.example")

	err := svc.SendOrderConfirmationEmail(models.Order{
		SessionID:   "cs_test_1",
		Customer:    models.CustomerDetails{Name: "Maverick", Email: "mav@example.com"},
		AmountTotal: 9000,
		Currency:    "usd",
		Items:       "2x V-SPEEDS TECH TEE (M)",
		Status:      models.OrderPreFlight,
	})
	require.NoError(t, err)

	assert.Equal(t, "dispatch@fl350.example", sender.from)
	assert.Equal(t, "mav@example.com", sender.to)
	assert.Contains(t, sender.body, "Dear Maverick")
	assert.Contains(t, sender.body, "cs_test_1")
	assert.Contains(t, sender.body, "90.00 usd")
	assert.Contains(t, sender.body, "2x V-SPEEDS TECH TEE (M)")
}

func TestSendEmail_Errors(t *testing.T) {
	sender := &recordingSender{err: errors.New("smtp down")}
	svc := NewEmailServiceWithSender(sender, "dispatch@fl350.example")

	err := svc.SendEmail("", "subject", "body")
	assert.Error(t, err)

	err = svc.SendEmail("mav@example.com", "subject", "body")
	assert.ErrorContains(t, err, "smtp down")
}

func TestNewEmailService_SelectsProvider(t *testing.T) {
	logger := zap.NewNop()

	svc := NewEmailService(&Config{}, logger)
	assert.IsType(t, &LogSender{}, svc.sender)

	svc = NewEmailService(&Config{PostmarkToken: "pm"}, logger)
	assert.IsType(t, &PostmarkSender{}, svc.sender)

	svc = NewEmailService(&Config{PostmarkToken: "pm", SendGridAPIKey: "sg"}, logger)
	assert.IsType(t, &SendGridSender{}, svc.sender)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PUBLIC_ORIGIN", "https://fl350.example/")
	t.Setenv("CHECKOUT_CURRENCY", "USD")
	t.Setenv("CHECKOUT_TIMEOUT", "3s")
	t.Setenv("LEDGER_TTL", "garbage")
	t.Setenv("CATALOG_SOURCE", "Mongo")

	cfg, _ := LoadConfig()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "https://fl350.example", cfg.PublicOrigin)
	assert.Equal(t, "usd", cfg.CheckoutCurrency)
	assert.Equal(t, 3*time.Second, cfg.CheckoutTimeout)
	assert.Equal(t, 72*time.Hour, cfg.LedgerTTL)
	assert.Equal(t, "mongo", cfg.CatalogSource)
	assert.False(t, strings.HasSuffix(cfg.PublicOrigin, "/"))
}
