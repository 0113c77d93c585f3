package catalog

import (
	"context"
	"fl350-gear-hub/models"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// productDocument is the stored shape of a product in the content store
type productDocument struct {
	ID          string   `bson:"_id"`
	Name        string   `bson:"name"`
	Category    string   `bson:"category"`
	Price       float64  `bson:"price"`
	Description string   `bson:"description"`
	Image       string   `bson:"image"`
	Specs       []string `bson:"specs"`
	Features    []string `bson:"features"`
}

func (d productDocument) toProduct() models.Product {
	return models.Product{
		ID:          d.ID,
		Name:        d.Name,
		Category:    models.Category(d.Category),
		Price:       decimal.NewFromFloat(d.Price),
		Description: d.Description,
		Image:       d.Image,
		Specs:       d.Specs,
		Features:    d.Features,
	}
}

// MongoSource reads products from the "products" collection
type MongoSource struct {
	Collection *mongo.Collection
	Timeout    time.Duration
}

func NewMongoSource(db *mongo.Database) *MongoSource {
	return &MongoSource{
		Collection: db.Collection("products"),
		Timeout:    5 * time.Second,
	}
}

// FetchAll loads every product document, skipping entries in an unknown category
func (s *MongoSource) FetchAll(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []models.Product
	for cursor.Next(ctx) {
		var doc productDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode product: %w", err)
		}
		product := doc.toProduct()
		if !product.Category.Valid() || product.Price.IsNegative() {
			continue
		}
		products = append(products, product)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error reading products: %w", err)
	}
	return products, nil
}
