// Package storefront is the browser-side controller of the shop: it owns the
// cart, gates checkout on sign-in and hands the browser to the payment page.
package storefront

import (
	"context"
	"errors"
	"fl350-gear-hub/models"
	"fmt"
	"net/url"
	"sync"
)

// View is the page currently shown
type View string

const (
	ViewHome        View = "home"
	ViewAll         View = "all"
	ViewHoodies     View = "hoodies"
	ViewTees        View = "tees"
	ViewAccessories View = "accessories"
	ViewLogin       View = "login"
	ViewProfile     View = "profile"
)

const (
	successAlert  = "MISSION ACCOMPLISHED: Cargo clearance granted."
	canceledAlert = "MISSION ABORTED: Transaction cancelled."
	checkoutAlert = "CHECKOUT ERROR: Communication with Stripe Terminal lost."
)

var (
	ErrSignInRequired   = errors.New("sign in required before checkout")
	ErrCheckoutInFlight = errors.New("checkout already in progress")
)

// IdentityProvider reports the signed-in user
type IdentityProvider interface {
	CurrentUser(ctx context.Context) (models.CurrentUser, error)
}

// CheckoutAPI opens a payment session and returns its redirect URL
type CheckoutAPI interface {
	CreateCheckout(ctx context.Context, req models.CheckoutRequest) (string, error)
}

// Navigator sends the browser to another location
type Navigator interface {
	Navigate(url string)
}

// Alerter shows a blocking message to the user
type Alerter interface {
	Alert(message string)
}

// Session is the top-level storefront state. The cart is only changed
// through Session and Cart methods.
type Session struct {
	identity IdentityProvider
	api      CheckoutAPI
	nav      Navigator
	alerts   Alerter

	mu       sync.Mutex
	cart     *models.Cart
	view     View
	cartOpen bool
	inFlight bool
}

func NewSession(identity IdentityProvider, api CheckoutAPI, nav Navigator, alerts Alerter) *Session {
	return &Session{
		identity: identity,
		api:      api,
		nav:      nav,
		alerts:   alerts,
		cart:     models.NewCart(),
		view:     ViewHome,
	}
}

// AddToCart adds one unit and opens the cart panel
func (s *Session) AddToCart(product models.Product, size models.Size) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Add(product, size)
	s.cartOpen = true
}

// RemoveFromCart ejects the whole line
func (s *Session) RemoveFromCart(productID string, size models.Size) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Remove(productID, size)
}

func (s *Session) SetView(v View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = v
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

func (s *Session) OpenCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartOpen = true
}

func (s *Session) CloseCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartOpen = false
}

func (s *Session) CartOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartOpen
}

// CartLines returns a snapshot of the cart
func (s *Session) CartLines() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Lines()
}

// CartCount is the badge number shown in the header
func (s *Session) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Count()
}

// CheckoutInFlight reports whether a checkout call is outstanding
func (s *Session) CheckoutInFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// CheckoutDisabled reports whether the checkout control should be disabled
func (s *Session) CheckoutDisabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight || s.cart.IsEmpty()
}

// Checkout sends a signed-in user to the hosted payment page. Signed-out
// users are sent to the login view without any network call.
func (s *Session) Checkout(ctx context.Context) error {
	user, err := s.identity.CurrentUser(ctx)
	if err != nil || !user.IsLoaded || !user.IsSignedIn || user.ID == "" {
		s.mu.Lock()
		s.view = ViewLogin
		s.cartOpen = false
		s.mu.Unlock()
		return ErrSignInRequired
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return ErrCheckoutInFlight
	}
	if s.cart.IsEmpty() {
		s.mu.Unlock()
		return models.ErrEmptyCart
	}
	s.inFlight = true
	req := models.CheckoutRequest{Cart: s.cart.CheckoutLines(), UserID: user.ID}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()

	redirect, err := s.api.CreateCheckout(ctx, req)
	if err == nil && redirect == "" {
		err = errors.New("checkout response has no url")
	}
	if err != nil {
		s.alerts.Alert(checkoutAlert)
		return fmt.Errorf("checkout: %w", err)
	}

	s.nav.Navigate(redirect)
	return nil
}

// HandleReturn interprets the query string the payment page redirects back with
func (s *Session) HandleReturn(query url.Values) {
	if query.Get("success") != "" {
		s.mu.Lock()
		s.cart.Clear()
		s.mu.Unlock()
		s.alerts.Alert(successAlert)
	}
	if query.Get("canceled") != "" {
		s.alerts.Alert(canceledAlert)
	}
}
