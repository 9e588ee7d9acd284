package store

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"goldenspoon-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoCatalogRepository struct {
	collection *mongo.Collection
}

func (m *mongoCatalogRepository) List(ctx context.Context, skip, limit int64) ([]models.CategoryItem, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)
	return m.find(ctx, bson.M{}, opts)
}

func (m *mongoCatalogRepository) Count(ctx context.Context) (int64, error) {
	n, err := m.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}

// FindByCategory matches the whole category name, ignoring case.
func (m *mongoCatalogRepository) FindByCategory(ctx context.Context, category string) ([]models.CategoryItem, error) {
	filter := bson.M{"itemCategory": primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(category) + "$",
		Options: "i",
	}}
	return m.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

func (m *mongoCatalogRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.CategoryItem, error) {
	cur, err := m.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	items := []models.CategoryItem{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return items, nil
}

func (m *mongoCatalogRepository) Create(ctx context.Context, item *models.CategoryItem) error {
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	res, err := m.collection.InsertOne(ctx, item)
	if err != nil {
		return fmt.Errorf("failed to create category item: %w", err)
	}
	item.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}
