package service

import (
	"context"
	"errors"
	"fmt"

	"goldenspoon-backend/internal/apperr"
	"goldenspoon-backend/internal/models"
	"goldenspoon-backend/internal/store"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AddToCartInput struct {
	ItemName  string  `json:"itemName" validate:"required"`
	ItemPrice float64 `json:"itemPrice" validate:"gte=0"`
	ItemURL   string  `json:"itemUrl"`
	Quantity  int     `json:"quantity" validate:"ne=0"`
}

type CartResult struct {
	Item    *models.CartItem
	Created bool
	Removed bool
}

type CartService struct {
	carts store.CartRepository
}

func NewCartService(carts store.CartRepository) *CartService {
	return &CartService{carts: carts}
}

// ApplyDelta adds in.Quantity (which may be negative) to the user's line for
// in.ItemName. Lines that drop to zero or below are deleted.
func (s *CartService) ApplyDelta(ctx context.Context, userID string, in AddToCartInput) (*CartResult, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	item, created, err := s.carts.Increment(ctx, store.CartDelta{
		UserID:    uid,
		ItemName:  in.ItemName,
		ItemPrice: in.ItemPrice,
		ItemURL:   in.ItemURL,
		Delta:     in.Quantity,
		Upsert:    in.Quantity > 0,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("Item not in cart")
		}
		return nil, fmt.Errorf("apply cart delta: %w", err)
	}

	if item.Quantity <= 0 {
		if _, err := s.carts.DeleteIfDepleted(ctx, item.ID); err != nil {
			return nil, fmt.Errorf("remove depleted item: %w", err)
		}
		return &CartResult{Item: item, Removed: true}, nil
	}

	return &CartResult{Item: item, Created: created}, nil
}

func (s *CartService) ListCart(ctx context.Context, userID string) ([]models.CartItem, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	return s.carts.ListByUser(ctx, uid)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) (*models.CartItem, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	id, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		return nil, apperr.NotFound("Item not found")
	}

	item, err := s.carts.DeleteByID(ctx, uid, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("Item not found")
		}
		return nil, fmt.Errorf("remove cart item: %w", err)
	}
	return item, nil
}

func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	uid, err := parseUserID(userID)
	if err != nil {
		return err
	}
	if _, err := s.carts.DeleteByUser(ctx, uid); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// CartTotal sums price × quantity without float drift.
func CartTotal(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(decimal.NewFromFloat(it.ItemPrice).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}
