package models

import (
	"github.com/shopspring/decimal"
)

// CartLine represents a product snapshot in a chosen size.
// The embedded Product is captured when the line is created and is not
// refreshed if the catalog changes afterwards.
type CartLine struct {
	Product
	Size     Size `json:"size"`
	Quantity int  `json:"quantity"`
}

// Subtotal returns price multiplied by quantity
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (l CartLine) matches(productID string, size Size) bool {
	return l.ID == productID && l.Size == size
}

// Cart is an ordered list of lines keyed by (product id, size).
// No two lines share a key and every quantity is at least one.
type Cart struct {
	lines []CartLine
}

// NewCart returns an empty cart
func NewCart() *Cart {
	return &Cart{}
}

// Add puts one unit of product in the given size into the cart
func (c *Cart) Add(product Product, size Size) {
	if i := c.index(product.ID, size); i >= 0 {
		c.lines[i].Quantity++
		return
	}
	c.lines = append(c.lines, CartLine{Product: product, Size: size, Quantity: 1})
}

// Remove deletes the line for the key. Unknown keys are ignored.
func (c *Cart) Remove(productID string, size Size) {
	i := c.index(productID, size)
	if i < 0 {
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
}

// Decrement takes one unit off the line, removing it when none remain
func (c *Cart) Decrement(productID string, size Size) {
	i := c.index(productID, size)
	if i < 0 {
		return
	}
	if c.lines[i].Quantity <= 1 {
		c.Remove(productID, size)
		return
	}
	c.lines[i].Quantity--
}

// Total returns the sum of price times quantity over all lines
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Count returns the number of units in the cart
func (c *Cart) Count() int {
	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.lines = nil
}

// Len returns the number of distinct lines
func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Lines returns a copy of the cart lines in insertion order
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// CheckoutLines projects the cart into the checkout wire schema
func (c *Cart) CheckoutLines() []CheckoutLine {
	out := make([]CheckoutLine, 0, len(c.lines))
	for _, line := range c.lines {
		out = append(out, CheckoutLine{
			ID:       line.ID,
			Name:     line.Name,
			Size:     string(line.Size),
			Price:    line.Price,
			Image:    line.Image,
			Quantity: line.Quantity,
		})
	}
	return out
}

func (c *Cart) index(productID string, size Size) int {
	for i, line := range c.lines {
		if line.matches(productID, size) {
			return i
		}
	}
	return -1
}
