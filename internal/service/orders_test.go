package service

import (
	"context"
	"testing"
	"time"

	"goldenspoon-backend/internal/apperr"
	"goldenspoon-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPlaceOrder(t *testing.T) {
	orders := &fakeOrders{}
	svc := NewOrderService(orders)
	user := primitive.NewObjectID().Hex()

	order, err := svc.PlaceOrder(context.Background(), user, PlaceOrderInput{
		Items:       []models.OrderItem{{ItemName: "A", ItemPrice: 100, Quantity: 2}},
		TotalAmount: 200,
		PaymentID:   "pay_1",
	})
	require.NoError(t, err)
	assert.False(t, order.ID.IsZero())
	assert.Equal(t, models.OrderStatusPlaced, order.Status)
	assert.False(t, order.OrderDate.IsZero())

	again, err := svc.PlaceOrder(context.Background(), user, PlaceOrderInput{
		Items:       []models.OrderItem{{ItemName: "A", ItemPrice: 100, Quantity: 2}},
		TotalAmount: 200,
		PaymentID:   "pay_1",
	})
	require.NoError(t, err)
	assert.Equal(t, order.ID, again.ID)
	assert.Len(t, orders.orders, 1)
}

func TestPlaceOrder_NoItems(t *testing.T) {
	svc := NewOrderService(&fakeOrders{})
	_, err := svc.PlaceOrder(context.Background(), primitive.NewObjectID().Hex(), PlaceOrderInput{TotalAmount: 10})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, "No items in order", apperr.PublicMessage(err))
}

func TestListOrders_NewestFirst(t *testing.T) {
	orders := &fakeOrders{}
	svc := NewOrderService(orders)
	user := primitive.NewObjectID()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for i, day := range []int{1, 3, 2} {
		require.NoError(t, orders.Create(context.Background(), &models.Order{
			UserID:      user,
			TotalAmount: float64(i),
			OrderDate:   base.AddDate(0, 0, day),
		}))
	}
	require.NoError(t, orders.Create(context.Background(), &models.Order{UserID: primitive.NewObjectID(), OrderDate: base}))

	list, err := svc.ListOrders(context.Background(), user.Hex())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.True(t, list[0].OrderDate.After(list[1].OrderDate))
	assert.True(t, list[1].OrderDate.After(list[2].OrderDate))
}

func TestGetOrder_OwnerOnly(t *testing.T) {
	orders := &fakeOrders{}
	svc := NewOrderService(orders)
	owner := primitive.NewObjectID().Hex()

	order, err := svc.PlaceOrder(context.Background(), owner, PlaceOrderInput{
		Items:       []models.OrderItem{{ItemName: "A", ItemPrice: 10, Quantity: 1}},
		TotalAmount: 10,
	})
	require.NoError(t, err)

	got, err := svc.GetOrder(context.Background(), owner, order.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	_, err = svc.GetOrder(context.Background(), primitive.NewObjectID().Hex(), order.ID.Hex())
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = svc.GetOrder(context.Background(), owner, "not-an-id")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
