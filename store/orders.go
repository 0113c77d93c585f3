// Package store persists the outcome of completed payments.
package store

import (
	"context"
	"errors"
	"fl350-gear-hub/models"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrDuplicateOrder = errors.New("order already recorded for session")
	ErrOrderNotFound  = errors.New("order not found")
)

// OrderStore creates one order per payment session
type OrderStore interface {
	Create(ctx context.Context, order models.Order) error
	GetBySession(ctx context.Context, sessionID string) (models.Order, error)
}

// MongoOrderStore writes orders to the "orders" collection.
// A unique index on session_id makes Create an atomic insert-if-absent.
type MongoOrderStore struct {
	collection *mongo.Collection
}

func NewMongoOrderStore(db *mongo.Database) *MongoOrderStore {
	return &MongoOrderStore{collection: db.Collection("orders")}
}

// CreateIndexes must run once before the store is used
func (s *MongoOrderStore) CreateIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "session_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("session_id_unique"),
	})
	if err != nil {
		return fmt.Errorf("failed to create order indexes: %w", err)
	}
	return nil
}

func (s *MongoOrderStore) Create(ctx context.Context, order models.Order) error {
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	_, err := s.collection.InsertOne(ctx, order)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateOrder
	}
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (s *MongoOrderStore) GetBySession(ctx context.Context, sessionID string) (models.Order, error) {
	var order models.Order
	err := s.collection.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

// MemoryOrderStore keeps orders in process memory
type MemoryOrderStore struct {
	mu     sync.RWMutex
	orders map[string]models.Order
}

func NewMemoryOrderStore() *MemoryOrderStore {
	return &MemoryOrderStore{orders: make(map[string]models.Order)}
}

func (s *MemoryOrderStore) Create(_ context.Context, order models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[order.SessionID]; ok {
		return ErrDuplicateOrder
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	s.orders[order.SessionID] = order
	return nil
}

func (s *MemoryOrderStore) GetBySession(_ context.Context, sessionID string) (models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[sessionID]
	if !ok {
		return models.Order{}, ErrOrderNotFound
	}
	return order, nil
}

// Len returns the number of stored orders
func (s *MemoryOrderStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}
