package payments

import (
	"fl350-gear-hub/models"
	"fmt"
	"strings"
)

const (
	successPath = "/?success=true&session_id={CHECKOUT_SESSION_ID}"
	cancelPath  = "/?canceled=true"

	MetadataUserID      = "user_id"
	MetadataCartSummary = "cart_summary"
)

// BuildSessionRequest maps validated checkout lines into a processor request.
// An empty line list is rejected so a degenerate session is never requested.
func BuildSessionRequest(lines []models.CheckoutLine, userID, origin, currency string) (models.SessionRequest, error) {
	if len(lines) == 0 {
		return models.SessionRequest{}, models.ErrEmptyCart
	}
	if userID == "" {
		return models.SessionRequest{}, models.ErrMissingUserID
	}

	items := make([]models.LineItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.LineItem{
			Name:       lineName(line),
			Image:      line.Image,
			UnitAmount: models.MinorUnits(line.Price),
			Quantity:   int64(line.Quantity),
		})
	}

	origin = strings.TrimRight(origin, "/")
	return models.SessionRequest{
		LineItems:         items,
		Currency:          currency,
		ClientReferenceID: userID,
		Metadata: map[string]string{
			MetadataUserID:      userID,
			MetadataCartSummary: CartSummary(lines),
		},
		SuccessURL: origin + successPath,
		CancelURL:  origin + cancelPath,
	}, nil
}

// CartSummary renders lines as "2x NAME (M), 1x OTHER (L)"
func CartSummary(lines []models.CheckoutLine) string {
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		parts = append(parts, fmt.Sprintf("%dx %s", line.Quantity, lineName(line)))
	}
	return strings.Join(parts, ", ")
}

func lineName(line models.CheckoutLine) string {
	return fmt.Sprintf("%s (%s)", line.Name, line.Size)
}
