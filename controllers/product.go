package controllers

import (
	"context"
	"errors"
	"fl350-gear-hub/catalog"
	"fl350-gear-hub/models"
	"fl350-gear-hub/utils"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// ProductCatalog is the read side of the catalog used by the storefront
type ProductCatalog interface {
	FetchAll(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id string) (models.Product, error)
}

// ProductController handles product-related requests
type ProductController struct {
	Catalog ProductCatalog
}

// NewProductController creates a new ProductController
func NewProductController(c ProductCatalog) *ProductController {
	return &ProductController{Catalog: c}
}

// GetProducts retrieves all products
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	products, err := pc.Catalog.FetchAll(ctx)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error fetching products")
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	utils.RespondJSON(w, http.StatusOK, products)
}

// GetProductByID retrieves a single product by ID
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	product, err := pc.Catalog.Get(ctx, mux.Vars(r)["id"])
	if errors.Is(err, catalog.ErrProductNotFound) {
		utils.RespondError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error fetching product")
		return
	}

	utils.RespondJSON(w, http.StatusOK, product)
}
