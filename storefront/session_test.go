package storefront

import (
	"context"
	"errors"
	"fl350-gear-hub/models"
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type identityStub struct {
	user models.CurrentUser
	err  error
}

func (i identityStub) CurrentUser(context.Context) (models.CurrentUser, error) {
	return i.user, i.err
}

type checkoutAPIStub struct {
	url      string
	err      error
	calls    int
	received models.CheckoutRequest
	// observed is the session's in-flight flag while the call runs
	session  *Session
	observed bool
}

func (c *checkoutAPIStub) CreateCheckout(_ context.Context, req models.CheckoutRequest) (string, error) {
	c.calls++
	c.received = req
	if c.session != nil {
		c.observed = c.session.CheckoutInFlight()
	}
	return c.url, c.err
}

type navigatorStub struct{ urls []string }

func (n *navigatorStub) Navigate(u string) { n.urls = append(n.urls, u) }

type alerterStub struct{ messages []string }

func (a *alerterStub) Alert(m string) { a.messages = append(a.messages, m) }

var signedIn = models.CurrentUser{IsLoaded: true, IsSignedIn: true, ID: "user_2abc"}

func teeProduct() models.Product {
	return models.Product{ID: "v-speeds-tee", Name: "V-SPEEDS TECH TEE", Category: models.CategoryTShirt, Price: decimal.NewFromInt(45)}
}

func newTestSession(user models.CurrentUser, api *checkoutAPIStub) (*Session, *navigatorStub, *alerterStub) {
	nav := &navigatorStub{}
	alerts := &alerterStub{}
	s := NewSession(identityStub{user: user}, api, nav, alerts)
	api.session = s
	return s, nav, alerts
}

func TestCheckout_SignedOutGoesToLogin(t *testing.T) {
	api := &checkoutAPIStub{url: "https://checkout.example/x"}
	s, nav, _ := newTestSession(models.CurrentUser{IsLoaded: true}, api)
	s.AddToCart(teeProduct(), models.SizeM)
	require.True(t, s.CartOpen())

	err := s.Checkout(context.Background())

	assert.ErrorIs(t, err, ErrSignInRequired)
	assert.Equal(t, 0, api.calls)
	assert.Empty(t, nav.urls)
	assert.Equal(t, ViewLogin, s.View())
	assert.False(t, s.CartOpen())
	assert.False(t, s.CheckoutInFlight())
}

func TestCheckout_IdentityNotLoaded(t *testing.T) {
	api := &checkoutAPIStub{}
	s, _, _ := newTestSession(models.CurrentUser{IsLoaded: false, IsSignedIn: true, ID: "user_2abc"}, api)
	s.AddToCart(teeProduct(), models.SizeM)

	assert.ErrorIs(t, s.Checkout(context.Background()), ErrSignInRequired)
	assert.Equal(t, 0, api.calls)
}

func TestCheckout_SuccessNavigates(t *testing.T) {
	api := &checkoutAPIStub{url: "https://checkout.stripe.com/c/pay/cs_test_1"}
	s, nav, alerts := newTestSession(signedIn, api)
	s.AddToCart(teeProduct(), models.SizeM)
	s.AddToCart(teeProduct(), models.SizeM)

	require.NoError(t, s.Checkout(context.Background()))

	assert.Equal(t, []string{"https://checkout.stripe.com/c/pay/cs_test_1"}, nav.urls)
	assert.Empty(t, alerts.messages)
	assert.True(t, api.observed, "in-flight flag must be set during the call")
	assert.False(t, s.CheckoutInFlight())
	assert.Equal(t, "user_2abc", api.received.UserID)
	require.Len(t, api.received.Cart, 1)
	assert.Equal(t, 2, api.received.Cart[0].Quantity)
	// the cart is only cleared once the processor redirects back
	assert.Equal(t, 2, s.CartCount())
}

func TestCheckout_FailureAlertsAndAllowsRetry(t *testing.T) {
	api := &checkoutAPIStub{err: errors.New("connection reset")}
	s, nav, alerts := newTestSession(signedIn, api)
	s.AddToCart(teeProduct(), models.SizeL)

	err := s.Checkout(context.Background())

	assert.Error(t, err)
	assert.Empty(t, nav.urls)
	assert.Equal(t, []string{checkoutAlert}, alerts.messages)
	assert.False(t, s.CheckoutInFlight())
	assert.False(t, s.CheckoutDisabled())

	api.err = nil
	api.url = "https://checkout.example/retry"
	require.NoError(t, s.Checkout(context.Background()))
	assert.Equal(t, []string{"https://checkout.example/retry"}, nav.urls)
}

func TestCheckout_MissingURLIsFailure(t *testing.T) {
	api := &checkoutAPIStub{}
	s, nav, alerts := newTestSession(signedIn, api)
	s.AddToCart(teeProduct(), models.SizeL)

	assert.Error(t, s.Checkout(context.Background()))
	assert.Empty(t, nav.urls)
	assert.Len(t, alerts.messages, 1)
	assert.False(t, s.CheckoutInFlight())
}

func TestCheckout_EmptyCart(t *testing.T) {
	api := &checkoutAPIStub{url: "https://checkout.example/x"}
	s, _, _ := newTestSession(signedIn, api)

	assert.True(t, s.CheckoutDisabled())
	assert.ErrorIs(t, s.Checkout(context.Background()), models.ErrEmptyCart)
	assert.Equal(t, 0, api.calls)
}

func TestCheckout_RejectsDoubleSubmit(t *testing.T) {
	api := &checkoutAPIStub{url: "https://checkout.example/x"}
	s, _, _ := newTestSession(signedIn, api)
	s.AddToCart(teeProduct(), models.SizeL)
	s.inFlight = true

	assert.ErrorIs(t, s.Checkout(context.Background()), ErrCheckoutInFlight)
	assert.Equal(t, 0, api.calls)
	assert.True(t, s.CheckoutDisabled())
}

func TestHandleReturn(t *testing.T) {
	s, _, alerts := newTestSession(signedIn, &checkoutAPIStub{})
	s.AddToCart(teeProduct(), models.SizeM)

	s.HandleReturn(url.Values{})
	assert.Equal(t, 1, s.CartCount())
	assert.Empty(t, alerts.messages)

	s.HandleReturn(url.Values{"canceled": {"true"}})
	assert.Equal(t, 1, s.CartCount())
	assert.Equal(t, []string{canceledAlert}, alerts.messages)

	s.HandleReturn(url.Values{"success": {"true"}, "session_id": {"cs_test_1"}})
	assert.Equal(t, 0, s.CartCount())
	assert.Equal(t, []string{canceledAlert, successAlert}, alerts.messages)
}

func TestRemoveFromCart(t *testing.T) {
	s, _, _ := newTestSession(signedIn, &checkoutAPIStub{})
	s.AddToCart(teeProduct(), models.SizeM)
	s.AddToCart(teeProduct(), models.SizeS)

	s.RemoveFromCart("v-speeds-tee", models.SizeM)

	lines := s.CartLines()
	require.Len(t, lines, 1)
	assert.Equal(t, models.SizeS, lines[0].Size)
}
