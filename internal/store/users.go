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
)

type mongoUserRepository struct {
	collection *mongo.Collection
}

func (m *mongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.findOne(ctx, bson.M{"email": email})
}

func (m *mongoUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return m.findOne(ctx, bson.M{"_id": id})
}

func (m *mongoUserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := m.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (m *mongoUserRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := m.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (m *mongoUserRepository) SetOTP(ctx context.Context, id primitive.ObjectID, otp string, expires time.Time) error {
	update := bson.M{"$set": bson.M{
		"otp":        otp,
		"otpExpires": expires,
		"updatedAt":  time.Now().UTC(),
	}}
	return m.updateByID(ctx, id, update)
}

func (m *mongoUserRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	update := bson.M{"$set": bson.M{
		"password":   hash,
		"otp":        nil,
		"otpExpires": nil,
		"updatedAt":  time.Now().UTC(),
	}}
	return m.updateByID(ctx, id, update)
}

func (m *mongoUserRepository) updateByID(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	result, err := m.collection.UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
