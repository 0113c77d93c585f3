package controllers

import (
	"context"
	"errors"
	"fl350-gear-hub/models"
	"fl350-gear-hub/payments"
	"fl350-gear-hub/store"
	"fl350-gear-hub/utils"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	maxWebhookBody = 1 << 20

	ledgerWriteTimeout = 2 * time.Second
)

// OrderNotifier is told about every newly recorded order
type OrderNotifier interface {
	SendOrderConfirmationEmail(order models.Order) error
}

// WebhookController receives payment processor events
type WebhookController struct {
	Verifier *payments.Verifier
	Ledger   store.Ledger
	Orders   store.OrderStore
	Notifier OrderNotifier
	Logger   *zap.Logger
}

// NewWebhookController creates a new WebhookController
func NewWebhookController(verifier *payments.Verifier, ledger store.Ledger, orders store.OrderStore, notifier OrderNotifier, logger *zap.Logger) *WebhookController {
	if verifier.Permissive() {
		logger.Warn("webhook signature verification disabled, no secret configured")
	}
	return &WebhookController{
		Verifier: verifier,
		Ledger:   ledger,
		Orders:   orders,
		Notifier: notifier,
		Logger:   logger,
	}
}

type webhookAck struct {
	Received bool `json:"received"`
}

// HandleEvent handles POST /api/webhook
func (wc *WebhookController) HandleEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.MethodNotAllowed(w, http.MethodPost)
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		webhookError(w, err)
		return
	}

	event, err := wc.Verifier.Parse(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		wc.Logger.Warn("webhook event rejected", zap.Error(err))
		webhookError(w, err)
		return
	}

	if event.Session == nil {
		wc.Logger.Debug("webhook event ignored",
			zap.String("event_id", event.ID),
			zap.String("event_type", event.Type),
		)
		utils.RespondJSON(w, http.StatusOK, webhookAck{Received: true})
		return
	}

	if err := wc.recordCompletedSession(r.Context(), event.Session); err != nil {
		wc.Logger.Error("failed to record completed session",
			zap.String("session_id", event.Session.ID),
			zap.Error(err),
		)
		utils.RespondError(w, http.StatusInternalServerError, "failed to record order")
		return
	}

	utils.RespondJSON(w, http.StatusOK, webhookAck{Received: true})
}

// recordCompletedSession stores the order and notifies the payer at most
// once per session id, however often the event is delivered. The order
// store's unique insert decides; the ledger only short-circuits redeliveries.
func (wc *WebhookController) recordCompletedSession(ctx context.Context, session *models.CompletedSession) error {
	if wc.alreadyProcessed(ctx, session.ID) {
		wc.Logger.Info("duplicate completed session ignored", zap.String("session_id", session.ID))
		return nil
	}

	order := models.Order{
		SessionID:   session.ID,
		UserID:      session.UserID,
		Customer:    session.Customer,
		AmountTotal: session.AmountTotal,
		Currency:    session.Currency,
		Items:       session.CartSummary,
		Status:      models.OrderPreFlight,
		CreatedAt:   time.Now().UTC(),
	}
	if err := wc.Orders.Create(ctx, order); err != nil {
		if errors.Is(err, store.ErrDuplicateOrder) {
			wc.Logger.Info("order already recorded", zap.String("session_id", session.ID))
			wc.markProcessed(ctx, session.ID)
			return nil
		}
		return fmt.Errorf("create order: %w", err)
	}
	wc.markProcessed(ctx, session.ID)

	wc.Logger.Info("successful expedition",
		zap.String("session_id", session.ID),
		zap.String("email", session.Customer.Email),
		zap.String("user_id", session.UserID),
		zap.Int64("amount_total", session.AmountTotal),
	)

	if session.Customer.Email == "" {
		return nil
	}
	if err := wc.Notifier.SendOrderConfirmationEmail(order); err != nil {
		wc.Logger.Warn("order confirmation email failed", zap.String("session_id", session.ID), zap.Error(err))
	}
	return nil
}

// alreadyProcessed treats a ledger outage as "not seen", the order store
// still rejects the duplicate
func (wc *WebhookController) alreadyProcessed(ctx context.Context, sessionID string) bool {
	done, err := wc.Ledger.Processed(ctx, sessionID)
	if err != nil {
		wc.Logger.Warn("ledger lookup failed", zap.String("session_id", sessionID), zap.Error(err))
		return false
	}
	return done
}

// markProcessed runs detached from the request so a cancelled delivery
// still leaves its mark
func (wc *WebhookController) markProcessed(ctx context.Context, sessionID string) {
	markCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ledgerWriteTimeout)
	defer cancel()
	if err := wc.Ledger.MarkProcessed(markCtx, sessionID); err != nil {
		wc.Logger.Warn("failed to mark session processed", zap.String("session_id", sessionID), zap.Error(err))
	}
}

func webhookError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)
	fmt.Fprintf(w, "Webhook Error: %s", err.Error())
}
