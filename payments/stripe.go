// Package payments talks to the hosted payment processor: it opens checkout
// sessions and verifies the webhook events sent back on completion.
package payments

import (
	"context"
	"errors"
	"fl350-gear-hub/models"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"
	"go.uber.org/zap"
)

// Gateway opens hosted payment sessions
type Gateway interface {
	CreateSession(ctx context.Context, req models.SessionRequest) (models.PaymentSession, error)
}

// StripeConfig configures the Stripe gateway
type StripeConfig struct {
	SecretKey string
	APIURL    string // optional, used to point at a local stub
	Timeout   time.Duration
}

// StripeGateway creates Stripe Checkout sessions behind a circuit breaker
type StripeGateway struct {
	sessions *session.Client
	breaker  *gobreaker.CircuitBreaker[*stripe.CheckoutSession]
	timeout  time.Duration
	logger   *zap.Logger
}

func NewStripeGateway(cfg StripeConfig, logger *zap.Logger) *StripeGateway {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	g := &StripeGateway{
		timeout: cfg.Timeout,
		logger:  logger,
	}
	if cfg.SecretKey != "" {
		backendCfg := &stripe.BackendConfig{
			HTTPClient:        &http.Client{Timeout: cfg.Timeout},
			MaxNetworkRetries: stripe.Int64(0),
		}
		if cfg.APIURL != "" {
			backendCfg.URL = stripe.String(cfg.APIURL)
		}
		g.sessions = &session.Client{
			B:   stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg),
			Key: cfg.SecretKey,
		}
	}

	g.breaker = gobreaker.NewCircuitBreaker[*stripe.CheckoutSession](gobreaker.Settings{
		Name:        "stripe-checkout",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			// rejections of the request itself say nothing about processor health,
			// rate limiting does
			var serr *stripe.Error
			if !errors.As(err, &serr) || serr.HTTPStatusCode == http.StatusTooManyRequests {
				return false
			}
			return serr.HTTPStatusCode >= 400 && serr.HTTPStatusCode < 500
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return g
}

// CreateSession opens a one-time payment session. Any failure, including a
// session returned without a URL, is reported as an UpstreamError.
func (g *StripeGateway) CreateSession(ctx context.Context, req models.SessionRequest) (models.PaymentSession, error) {
	if g.sessions == nil {
		return models.PaymentSession{}, &UpstreamError{Op: "create session", Err: ErrNotConfigured}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := sessionParams(req)
	params.Context = ctx

	cs, err := g.breaker.Execute(func() (*stripe.CheckoutSession, error) {
		return g.sessions.New(params)
	})
	if err != nil {
		return models.PaymentSession{}, &UpstreamError{Op: "create session", Err: err}
	}
	if cs == nil || cs.URL == "" {
		return models.PaymentSession{}, &UpstreamError{Op: "create session", Err: ErrMissingURL}
	}

	g.logger.Info("checkout session created",
		zap.String("session_id", cs.ID),
		zap.String("user_id", req.ClientReferenceID),
	)
	return models.PaymentSession{ID: cs.ID, URL: cs.URL, Metadata: cs.Metadata}, nil
}

func sessionParams(req models.SessionRequest) *stripe.CheckoutSessionParams {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.LineItems))
	for _, item := range req.LineItems {
		product := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(item.Name),
		}
		if item.Image != "" {
			product.Images = stripe.StringSlice([]string{item.Image})
		}
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(req.Currency),
				ProductData: product,
				UnitAmount:  stripe.Int64(item.UnitAmount),
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		ClientReferenceID:  stripe.String(req.ClientReferenceID),
		SuccessURL:         stripe.String(req.SuccessURL),
		CancelURL:          stripe.String(req.CancelURL),
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	return params
}
