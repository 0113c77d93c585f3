package payments

import (
	"encoding/json"
	"fl350-gear-hub/models"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"
)

// EventCheckoutSessionCompleted is the only event type with side effects
const EventCheckoutSessionCompleted = "checkout.session.completed"

// Event is a verified processor event. Session is set only for completed
// checkout sessions.
type Event struct {
	ID      string
	Type    string
	Session *models.CompletedSession
}

// Verifier checks webhook signatures. Without a secret every payload is
// trusted as-is, which is only acceptable in local development.
type Verifier struct {
	secret    string
	tolerance time.Duration
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: secret, tolerance: webhook.DefaultTolerance}
}

// Permissive reports whether signatures are not checked
func (v *Verifier) Permissive() bool {
	return v.secret == ""
}

// Parse verifies the raw payload against the signature header and decodes it
func (v *Verifier) Parse(payload []byte, signature string) (Event, error) {
	var event stripe.Event
	if v.Permissive() {
		if err := json.Unmarshal(payload, &event); err != nil {
			return Event{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
		}
	} else {
		var err error
		event, err = webhook.ConstructEventWithOptions(payload, signature, v.secret, webhook.ConstructEventOptions{
			Tolerance:                v.tolerance,
			IgnoreAPIVersionMismatch: true,
		})
		if err != nil {
			return Event{}, &SignatureError{Err: err}
		}
	}

	out := Event{ID: event.ID, Type: string(event.Type)}
	if out.Type != EventCheckoutSessionCompleted {
		return out, nil
	}

	if event.Data == nil || len(event.Data.Raw) == 0 {
		return Event{}, fmt.Errorf("%w: event has no data object", ErrMalformedEvent)
	}
	var cs stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if cs.ID == "" {
		return Event{}, fmt.Errorf("%w: session has no id", ErrMalformedEvent)
	}
	out.Session = completedSession(&cs)
	return out, nil
}

func completedSession(cs *stripe.CheckoutSession) *models.CompletedSession {
	completed := &models.CompletedSession{
		ID:          cs.ID,
		UserID:      cs.ClientReferenceID,
		AmountTotal: cs.AmountTotal,
		Currency:    string(cs.Currency),
	}
	if cs.CustomerDetails != nil {
		completed.Customer = models.CustomerDetails{
			Name:  cs.CustomerDetails.Name,
			Email: cs.CustomerDetails.Email,
		}
	}
	if cs.Metadata != nil {
		completed.CartSummary = cs.Metadata[MetadataCartSummary]
		if completed.UserID == "" {
			completed.UserID = cs.Metadata[MetadataUserID]
		}
	}
	return completed
}
