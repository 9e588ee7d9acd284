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

type mongoCartRepository struct {
	collection *mongo.Collection
}

func (m *mongoCartRepository) Increment(ctx context.Context, d CartDelta) (*models.CartItem, bool, error) {
	item, created, err := m.increment(ctx, d)
	// Two concurrent upserts on a fresh line can both miss the match; the loser
	// hits the unique index and simply retries as an update.
	if err != nil && mongo.IsDuplicateKeyError(err) {
		item, created, err = m.increment(ctx, d)
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to apply cart delta: %w", err)
	}
	return item, created, nil
}

// increment reads the line as it was before the update. No previous document
// means the upsert inserted it, so the new line is rebuilt from the delta.
func (m *mongoCartRepository) increment(ctx context.Context, d CartDelta) (*models.CartItem, bool, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	id := primitive.NewObjectID()

	filter := bson.M{"userId": d.UserID, "itemName": d.ItemName}
	update := bson.M{
		"$inc": bson.M{"quantity": d.Delta},
		"$set": bson.M{"updatedAt": now},
		"$setOnInsert": bson.M{
			"_id":       id,
			"itemPrice": d.ItemPrice,
			"itemUrl":   d.ItemURL,
			"createdAt": now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(d.Upsert).
		SetReturnDocument(options.Before)

	var before models.CartItem
	err := m.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&before)
	switch {
	case err == nil:
		before.Quantity += d.Delta
		before.UpdatedAt = now
		return &before, false, nil
	case !errors.Is(err, mongo.ErrNoDocuments):
		return nil, false, err
	case !d.Upsert:
		return nil, false, ErrNotFound
	}

	return &models.CartItem{
		ID:        id,
		UserID:    d.UserID,
		ItemName:  d.ItemName,
		ItemPrice: d.ItemPrice,
		ItemURL:   d.ItemURL,
		Quantity:  d.Delta,
		CreatedAt: now,
		UpdatedAt: now,
	}, true, nil
}

func (m *mongoCartRepository) DeleteIfDepleted(ctx context.Context, id primitive.ObjectID) (bool, error) {
	filter := bson.M{"_id": id, "quantity": bson.M{"$lte": 0}}
	result, err := m.collection.DeleteOne(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to delete depleted item: %w", err)
	}
	return result.DeletedCount == 1, nil
}

func (m *mongoCartRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.CartItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := m.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart: %w", err)
	}

	items := []models.CartItem{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return items, nil
}

func (m *mongoCartRepository) DeleteByID(ctx context.Context, userID, itemID primitive.ObjectID) (*models.CartItem, error) {
	var item models.CartItem
	err := m.collection.FindOneAndDelete(ctx, bson.M{"_id": itemID, "userId": userID}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete cart item: %w", err)
	}
	return &item, nil
}

func (m *mongoCartRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	result, err := m.collection.DeleteMany(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to clear cart: %w", err)
	}
	return result.DeletedCount, nil
}
