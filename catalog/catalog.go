// Package catalog provides the product list from either the bundled static
// catalog or a remote content store, chosen once at startup.
package catalog

import (
	"context"
	"errors"
	"fl350-gear-hub/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var (
	ErrNotConfigured   = errors.New("catalog store is not configured")
	ErrProductNotFound = errors.New("product not found")
)

// Source lists catalog products
type Source interface {
	FetchAll(ctx context.Context) ([]models.Product, error)
}

// Kind names the variant a Source was resolved to
type Kind string

const (
	KindStatic Kind = "static"
	KindRemote Kind = "remote"
)

// Config selects the catalog variant
type Config struct {
	Source string // "static" or "mongo"
	DB     *mongo.Database
}

// Catalog is the resolved source. Remote failures widen to the static list.
type Catalog struct {
	kind     Kind
	primary  Source
	fallback Source
	logger   *zap.Logger
}

// Resolve picks the catalog variant. A remote source without a store
// degrades to static instead of failing.
func Resolve(cfg Config, logger *zap.Logger) *Catalog {
	static := NewStaticSource()
	if cfg.Source != "mongo" {
		return &Catalog{kind: KindStatic, primary: static, logger: logger}
	}
	if cfg.DB == nil {
		logger.Warn("remote catalog requested without a store, using static catalog", zap.Error(ErrNotConfigured))
		return &Catalog{kind: KindStatic, primary: static, logger: logger}
	}
	return New(NewMongoSource(cfg.DB), static, logger)
}

// New builds a remote catalog over primary with a static fallback
func New(primary, fallback Source, logger *zap.Logger) *Catalog {
	return &Catalog{kind: KindRemote, primary: primary, fallback: fallback, logger: logger}
}

func (c *Catalog) Kind() Kind {
	return c.kind
}

// FetchAll never fails for a remote catalog: errors and empty results
// fall back to the static list.
func (c *Catalog) FetchAll(ctx context.Context) ([]models.Product, error) {
	products, err := c.primary.FetchAll(ctx)
	if c.fallback == nil {
		return products, err
	}
	switch {
	case err != nil:
		c.logger.Warn("remote catalog unavailable, serving static catalog", zap.Error(err))
	case len(products) == 0:
		c.logger.Warn("remote catalog is empty, serving static catalog")
	default:
		return products, nil
	}
	return c.fallback.FetchAll(ctx)
}

// Get returns a single product by id
func (c *Catalog) Get(ctx context.Context, id string) (models.Product, error) {
	products, err := c.FetchAll(ctx)
	if err != nil {
		return models.Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}
