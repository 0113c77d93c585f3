package controllers

import (
	"encoding/json"
	"errors"
	"fl350-gear-hub/models"
	"fl350-gear-hub/payments"
	"fl350-gear-hub/utils"
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

const (
	maxCheckoutBody = 1 << 20

	checkoutFailedMessage = "unable to start checkout"
)

// CheckoutController converts a cart into a hosted payment session
type CheckoutController struct {
	Gateway  payments.Gateway
	Origin   string
	Currency string
	Logger   *zap.Logger
}

// NewCheckoutController creates a new CheckoutController
func NewCheckoutController(gateway payments.Gateway, cfg *utils.Config, logger *zap.Logger) *CheckoutController {
	return &CheckoutController{
		Gateway:  gateway,
		Origin:   cfg.PublicOrigin,
		Currency: cfg.CheckoutCurrency,
		Logger:   logger,
	}
}

// CreateSession handles POST /api/checkout
func (cc *CheckoutController) CreateSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.MethodNotAllowed(w, http.MethodPost)
		return
	}

	var req models.CheckoutRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCheckoutBody)).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lines, err := req.Normalize()
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			utils.RespondError(w, http.StatusBadRequest, verr.Error())
			return
		}
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sessionReq, err := payments.BuildSessionRequest(lines, req.UserID, cc.requestOrigin(r), cc.Currency)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := cc.Gateway.CreateSession(r.Context(), sessionReq)
	if err != nil {
		// detail stays in the log, the client only gets the safe message
		cc.Logger.Error("checkout session creation failed",
			zap.String("user_id", req.UserID),
			zap.Int("lines", len(lines)),
			zap.Error(err),
		)
		utils.RespondError(w, http.StatusInternalServerError, checkoutFailedMessage)
		return
	}

	utils.RespondJSON(w, http.StatusOK, models.CheckoutResponse{URL: session.URL})
}

// requestOrigin prefers the browser's Origin header over the configured origin
func (cc *CheckoutController) requestOrigin(r *http.Request) string {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return cc.Origin
	}
	u, err := url.Parse(origin)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return cc.Origin
	}
	return u.Scheme + "://" + u.Host
}
