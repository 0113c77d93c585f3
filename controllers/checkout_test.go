package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fl350-gear-hub/models"
	"fl350-gear-hub/payments"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type GatewayMock struct {
	session  models.PaymentSession
	err      error
	calls    int
	received models.SessionRequest
}

func (g *GatewayMock) CreateSession(ctx context.Context, req models.SessionRequest) (models.PaymentSession, error) {
	g.calls++
	g.received = req
	if g.err != nil {
		return models.PaymentSession{}, g.err
	}
	return g.session, nil
}

func newCheckoutController(gw payments.Gateway) *CheckoutController {
	return &CheckoutController{
		Gateway:  gw,
		Origin:   "http://localhost:3000",
		Currency: "usd",
		Logger:   zap.NewNop(),
	}
}

func checkoutRequest(t *testing.T, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

const exampleCheckoutBody = `{"cart":[{"id":"v-speeds-tee","name":"V-SPEEDS TECH TEE","size":"M","price":45,"image":"https://img.example/tee.jpg","quantity":2}],"userId":"user_2abc"}`

func TestCreateSession_Success(t *testing.T) {
	gw := &GatewayMock{session: models.PaymentSession{ID: "cs_test_1", URL: "https://checkout.stripe.com/c/pay/cs_test_1"}}
	handler := newCheckoutController(gw)

	recorder := httptest.NewRecorder()
	request := checkoutRequest(t, exampleCheckoutBody)
	request.Header.Set("Origin", "https://fl350.example")

	handler.CreateSession(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	var response models.CheckoutResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_1", response.URL)

	require.Equal(t, 1, gw.calls)
	require.Len(t, gw.received.LineItems, 1)
	assert.Equal(t, models.LineItem{
		Name:       "V-SPEEDS TECH TEE (M)",
		Image:      "https://img.example/tee.jpg",
		UnitAmount: 4500,
		Quantity:   2,
	}, gw.received.LineItems[0])
	assert.Equal(t, "user_2abc", gw.received.ClientReferenceID)
	assert.Equal(t, "https://fl350.example/?success=true&session_id={CHECKOUT_SESSION_ID}", gw.received.SuccessURL)
	assert.Equal(t, "https://fl350.example/?canceled=true", gw.received.CancelURL)
}

func TestCreateSession_FallsBackToConfiguredOrigin(t *testing.T) {
	gw := &GatewayMock{session: models.PaymentSession{URL: "https://checkout.example/x"}}
	handler := newCheckoutController(gw)

	request := checkoutRequest(t, exampleCheckoutBody)
	request.Header.Set("Origin", "null")
	handler.CreateSession(httptest.NewRecorder(), request)

	assert.Equal(t, "http://localhost:3000/?canceled=true", gw.received.CancelURL)
}

func TestCreateSession_RejectedBeforeProcessorCall(t *testing.T) {
	tests := map[string]string{
		"empty cart":     `{"cart":[],"userId":"user_2abc"}`,
		"missing cart":   `{"userId":"user_2abc"}`,
		"missing user":   `{"cart":[{"id":"v-speeds-tee","name":"TEE","size":"M","price":45,"quantity":1}]}`,
		"bad size":       `{"cart":[{"id":"v-speeds-tee","name":"TEE","size":"XS","price":45,"quantity":1}],"userId":"u"}`,
		"zero quantity":  `{"cart":[{"id":"v-speeds-tee","name":"TEE","size":"M","price":45,"quantity":0}],"userId":"u"}`,
		"negative price": `{"cart":[{"id":"v-speeds-tee","name":"TEE","size":"M","price":-1,"quantity":1}],"userId":"u"}`,
		"malformed":      `{"cart":`,
		"wrong shape":    `{"cart":"everything","userId":"u"}`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			gw := &GatewayMock{}
			handler := newCheckoutController(gw)
			recorder := httptest.NewRecorder()

			handler.CreateSession(recorder, checkoutRequest(t, body))

			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.Equal(t, 0, gw.calls)

			var response models.ErrorResponse
			require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
			assert.Equal(t, http.StatusBadRequest, response.StatusCode)
			assert.NotEmpty(t, response.Message)
		})
	}
}

func TestCreateSession_UpstreamFailureIsSafe(t *testing.T) {
	gw := &GatewayMock{err: &payments.UpstreamError{Op: "create session", Err: errors.New("secret key sk_live_leaky rejected")}}
	handler := newCheckoutController(gw)
	recorder := httptest.NewRecorder()

	handler.CreateSession(recorder, checkoutRequest(t, exampleCheckoutBody))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "sk_live_leaky")

	var response models.ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, http.StatusInternalServerError, response.StatusCode)
	assert.Equal(t, checkoutFailedMessage, response.Message)
}

func TestCreateSession_MethodNotAllowed(t *testing.T) {
	handler := newCheckoutController(&GatewayMock{})

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		recorder := httptest.NewRecorder()
		handler.CreateSession(recorder, httptest.NewRequest(method, "/api/checkout", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code, method)
		assert.Equal(t, http.MethodPost, recorder.Header().Get("Allow"), method)
	}
}
