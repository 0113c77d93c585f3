package models

import "github.com/shopspring/decimal"

// LineItem is a processor line item derived from one checkout line
type LineItem struct {
	Name       string
	Image      string
	UnitAmount int64 // minor units
	Quantity   int64
}

// SessionRequest is everything needed to open a hosted payment session
type SessionRequest struct {
	LineItems         []LineItem
	Currency          string
	ClientReferenceID string
	Metadata          map[string]string
	SuccessURL        string
	CancelURL         string
}

// PaymentSession is the processor-owned session returned on creation
type PaymentSession struct {
	ID       string
	URL      string
	Metadata map[string]string
}

// CompletedSession is the subset of a completed session the webhook needs
type CompletedSession struct {
	ID          string
	UserID      string
	Customer    CustomerDetails
	AmountTotal int64
	Currency    string
	CartSummary string
}

// MinorUnits converts a major-unit price into minor units, rounding half up
func MinorUnits(price decimal.Decimal) int64 {
	return price.Shift(2).Round(0).IntPart()
}
