package models

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// CheckoutLine is one cart entry as sent to the checkout endpoint
type CheckoutLine struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Size     string          `json:"size"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Quantity int             `json:"quantity"`
}

// CheckoutRequest is the body of POST /api/checkout
type CheckoutRequest struct {
	Cart   []CheckoutLine `json:"cart"`
	UserID string         `json:"userId"`
}

// CheckoutResponse carries the hosted payment page URL
type CheckoutResponse struct {
	URL string `json:"url"`
}

// ErrorResponse is the JSON error body shared by the API endpoints
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// Normalize validates the request and returns its lines with repeated
// (id, size) keys merged in first-seen order.
func (r CheckoutRequest) Normalize() ([]CheckoutLine, error) {
	if strings.TrimSpace(r.UserID) == "" {
		return nil, &ValidationError{Field: "userId", Message: "must not be empty", Err: ErrMissingUserID}
	}
	if len(r.Cart) == 0 {
		return nil, &ValidationError{Field: "cart", Message: "must contain at least one item", Err: ErrEmptyCart}
	}

	type key struct{ id, size string }
	seen := make(map[key]int, len(r.Cart))
	lines := make([]CheckoutLine, 0, len(r.Cart))
	for i, line := range r.Cart {
		if err := line.validate(i); err != nil {
			return nil, err
		}
		k := key{line.ID, line.Size}
		if at, ok := seen[k]; ok {
			lines[at].Quantity += line.Quantity
			continue
		}
		seen[k] = len(lines)
		lines = append(lines, line)
	}
	return lines, nil
}

func (l CheckoutLine) validate(i int) error {
	switch {
	case strings.TrimSpace(l.ID) == "":
		return invalid(lineField(i, "id"), "must not be empty")
	case strings.TrimSpace(l.Name) == "":
		return invalid(lineField(i, "name"), "must not be empty")
	case l.Price.IsNegative():
		return invalid(lineField(i, "price"), "must not be negative")
	case l.Quantity < 1:
		return invalid(lineField(i, "quantity"), "must be at least 1")
	}
	if _, err := ParseSize(l.Size); err != nil {
		return invalid(lineField(i, "size"), "%v", err)
	}
	return nil
}

func lineField(i int, name string) string {
	return "cart[" + strconv.Itoa(i) + "]." + name
}
