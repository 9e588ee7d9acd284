// Package store holds the mongo-backed repositories. Everything is built from an
// explicit *mongo.Database handed in at startup.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"goldenspoon-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate key")
)

const (
	usersCollection   = "users"
	cartCollection    = "cartitems"
	ordersCollection  = "orders"
	catalogCollection = "categoryitems"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	SetOTP(ctx context.Context, id primitive.ObjectID, otp string, expires time.Time) error
	// UpdatePassword stores a new hash and clears any pending OTP.
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error
}

// CartDelta describes an atomic quantity change on the (UserID, ItemName) line.
type CartDelta struct {
	UserID    primitive.ObjectID
	ItemName  string
	ItemPrice float64
	ItemURL   string
	Delta     int
	// Upsert creates the line when it does not exist yet.
	Upsert bool
}

type CartRepository interface {
	// Increment applies the delta in one server-side operation and returns the
	// line as it is after the update. created is true when the line was inserted.
	Increment(ctx context.Context, d CartDelta) (item *models.CartItem, created bool, err error)
	// DeleteIfDepleted removes the line only while its quantity is <= 0.
	DeleteIfDepleted(ctx context.Context, id primitive.ObjectID) (bool, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.CartItem, error)
	DeleteByID(ctx context.Context, userID, itemID primitive.ObjectID) (*models.CartItem, error)
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	// FindByID only matches orders owned by userID.
	FindByID(ctx context.Context, userID, orderID primitive.ObjectID) (*models.Order, error)
	FindByPaymentID(ctx context.Context, userID primitive.ObjectID, paymentID string) (*models.Order, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
}

type CatalogRepository interface {
	List(ctx context.Context, skip, limit int64) ([]models.CategoryItem, error)
	Count(ctx context.Context) (int64, error)
	FindByCategory(ctx context.Context, category string) ([]models.CategoryItem, error)
	Create(ctx context.Context, item *models.CategoryItem) error
}

// Transactor runs fn so that every store call made with the ctx it receives
// commits or aborts together.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Store struct {
	Users   UserRepository
	Carts   CartRepository
	Orders  OrderRepository
	Catalog CatalogRepository
	Tx      Transactor

	db *mongo.Database
}

// New wires every repository onto db. Multi-document transactions need a
// replica set, so they are only used when transactions is true.
func New(client *mongo.Client, db *mongo.Database, transactions bool) *Store {
	return &Store{
		Users:   &mongoUserRepository{collection: db.Collection(usersCollection)},
		Carts:   &mongoCartRepository{collection: db.Collection(cartCollection)},
		Orders:  &mongoOrderRepository{collection: db.Collection(ordersCollection)},
		Catalog: &mongoCatalogRepository{collection: db.Collection(catalogCollection)},
		Tx:      &mongoTransactor{client: client, enabled: transactions},
		db:      db,
	}
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		cartCollection: {
			{
				Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "itemName", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		ordersCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "orderDate", Value: -1}}},
			{
				Keys: bson.D{{Key: "paymentId", Value: 1}},
				Options: options.Index().
					SetUnique(true).
					SetPartialFilterExpression(bson.M{"paymentId": bson.M{"$type": "string"}}),
			},
		},
		catalogCollection: {
			{Keys: bson.D{{Key: "itemCategory", Value: 1}}},
		},
	}

	for name, idx := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}
	return nil
}

type mongoTransactor struct {
	client  *mongo.Client
	enabled bool
}

func (t *mongoTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !t.enabled {
		return fn(ctx)
	}

	session, err := t.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(context.Background())

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
