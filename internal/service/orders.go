package service

import (
	"context"
	"errors"
	"fmt"

	"goldenspoon-backend/internal/apperr"
	"goldenspoon-backend/internal/models"
	"goldenspoon-backend/internal/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PlaceOrderInput struct {
	Items       []models.OrderItem `json:"items"`
	TotalAmount float64            `json:"totalAmount"`
	PaymentID   string             `json:"paymentId"`
}

type OrderService struct {
	orders store.OrderRepository
	clock  clock
}

func NewOrderService(orders store.OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

// PlaceOrder records an order from client-supplied items. A payment id that
// was already used returns the existing order.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string, in PlaceOrderInput) (*models.Order, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, apperr.Validation("No items in order")
	}

	order := &models.Order{
		UserID:      uid,
		Items:       in.Items,
		TotalAmount: in.TotalAmount,
		PaymentID:   in.PaymentID,
		Status:      models.OrderStatusPlaced,
		OrderDate:   s.clock.now(),
	}
	if err := s.orders.Create(ctx, order); err != nil {
		if errors.Is(err, store.ErrDuplicate) && in.PaymentID != "" {
			return s.orders.FindByPaymentID(ctx, uid, in.PaymentID)
		}
		return nil, fmt.Errorf("place order: %w", err)
	}
	return order, nil
}

// ListOrders returns the user's orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	return s.orders.ListByUser(ctx, uid)
}

// GetOrder returns one of the user's orders. Orders of other users are
// reported as not found.
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID string) (*models.Order, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	id, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, apperr.NotFound("Order not found")
	}

	order, err := s.orders.FindByID(ctx, uid, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("Order not found")
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}
