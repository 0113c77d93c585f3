package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Category is the closed set of catalog categories
type Category string

const (
	CategoryHoodie      Category = "Hoodie"
	CategoryTShirt      Category = "T-Shirt"
	CategoryAccessories Category = "Accessories"
)

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	switch c {
	case CategoryHoodie, CategoryTShirt, CategoryAccessories:
		return true
	}
	return false
}

// Size is a garment size offered for every product
type Size string

const (
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)

// Sizes lists the sizes in display order
var Sizes = []Size{SizeS, SizeM, SizeL, SizeXL, SizeXXL}

// ParseSize converts a raw size string into a Size
func ParseSize(s string) (Size, error) {
	for _, size := range Sizes {
		if string(size) == s {
			return size, nil
		}
	}
	return "", fmt.Errorf("unknown size %q", s)
}

// Product represents a catalog entry. Products are never mutated after load.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    Category        `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Specs       []string        `json:"specs"`
	Features    []string        `json:"features"`
}
