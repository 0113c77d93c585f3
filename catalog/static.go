package catalog

import (
	"context"
	"fl350-gear-hub/models"
	"slices"

	"github.com/shopspring/decimal"
)

var staticProducts = []models.Product{
	{
		ID:          "fl350-stealth-hoodie",
		Name:        "CLEARED FL350 HOODIE",
		Category:    models.CategoryHoodie,
		Price:       decimal.RequireFromString("85.00"),
		Description: "Ultra-soft heavyweight fleece with technical mission markers. Featuring CLB -> CRZ transition specs.",
		Image:       "https://images.unsplash.com/photo-1556821840-3a63f95609a7?auto=format&fit=crop&q=80&w=800",
		Specs:       []string{"CRZ ALT: 35,000 FT", "SPD: MACH 0.78", "MODE: LNAV/VNAV"},
		Features:    []string{"Double-lined hood", "Internal cockpit pocket", "Reflective hem"},
	},
	{
		ID:          "v-speeds-tee",
		Name:        "V-SPEEDS TECH TEE",
		Category:    models.CategoryTShirt,
		Price:       decimal.RequireFromString("45.00"),
		Description: "V1, VR, V2 essentials. The fundamental parameters of every takeoff, printed on premium combed cotton.",
		Image:       "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?auto=format&fit=crop&q=80&w=800",
		Specs:       []string{"V1: GO/NO-GO", "VR: ROTATE", "V2: SAFETY"},
		Features:    []string{"100% organic cotton", "Reinforced neck tape", "Drop-shoulder fit"},
	},
	{
		ID:          "mach-cruise-hoodie",
		Name:        "MACH 0.82 CRUISE HOODIE",
		Category:    models.CategoryHoodie,
		Price:       decimal.RequireFromString("95.00"),
		Description: "Engineered for high-speed transit. Minimalist front with high-altitude aerodynamics on the rear.",
		Image:       "https://images.unsplash.com/photo-1530008051216-7517932c028c?auto=format&fit=crop&q=80&w=800",
		Specs:       []string{"MNO: 0.82", "MMO: 0.85", "TAT: -45C"},
		Features:    []string{"Wind-resistant weave", "Thumbhole cuffs", "GPS coordinates on sleeve"},
	},
	{
		ID:          "altitude-tee",
		Name:        "ALTITUDE OVER ATTITUDE",
		Category:    models.CategoryTShirt,
		Price:       decimal.RequireFromString("45.00"),
		Description: "Minimalist bone-white tee featuring the core pilot mantra. Designed for the long haul.",
		Image:       "https://images.unsplash.com/photo-1583743814966-8936f5b7be1a?auto=format&fit=crop&q=80&w=800",
		Specs:       []string{"MATERIAL: 240GSM", "FIT: RELAXED", "ORIGIN: FL350"},
		Features:    []string{"High-density print", "Breathable weave", "Flight-ready"},
	},
}

// StaticSource serves the bundled product list
type StaticSource struct{}

func NewStaticSource() StaticSource {
	return StaticSource{}
}

// FetchAll returns a deep copy so callers cannot mutate the bundled list
func (StaticSource) FetchAll(context.Context) ([]models.Product, error) {
	out := make([]models.Product, len(staticProducts))
	for i, p := range staticProducts {
		p.Specs = slices.Clone(p.Specs)
		p.Features = slices.Clone(p.Features)
		out[i] = p
	}
	return out, nil
}
