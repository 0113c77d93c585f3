package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus tracks fulfilment of a paid order
type OrderStatus string

const (
	OrderPreFlight OrderStatus = "Pre-flight"
	OrderInTransit OrderStatus = "In Transit"
	OrderDelivered OrderStatus = "Delivered"
)

// CustomerDetails is the payer contact captured by the payment processor
type CustomerDetails struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
}

// Order is written once per completed payment session
type Order struct {
	SessionID   string          `bson:"session_id" json:"session_id"`
	UserID      string          `bson:"user_id" json:"user_id"`
	Customer    CustomerDetails `bson:"customer" json:"customer"`
	AmountTotal int64           `bson:"amount_total" json:"amount_total"` // minor units
	Currency    string          `bson:"currency" json:"currency"`
	Items       string          `bson:"items" json:"items"`
	Status      OrderStatus     `bson:"status" json:"status"`
	CreatedAt   time.Time       `bson:"created_at" json:"created_at"`
}

// Amount returns the order total in major units
func (o Order) Amount() decimal.Decimal {
	return decimal.New(o.AmountTotal, -2)
}
