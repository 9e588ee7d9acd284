package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"goldenspoon-backend/internal/apperr"
	"goldenspoon-backend/internal/models"
	"goldenspoon-backend/internal/payment"
	"goldenspoon-backend/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var minorUnitsPerMajor = decimal.NewFromInt(100)

type CreateGatewayOrderInput struct {
	Amount decimal.Decimal `json:"amount"`
}

// PaymentCallback is what the Razorpay checkout widget posts back.
type PaymentCallback struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

type CheckoutResult struct {
	Order *models.Order
	// Replayed is set when the payment had already been committed.
	Replayed bool
}

type PaymentCoordinator struct {
	gateway  payment.Gateway
	secret   string
	currency string
	carts    store.CartRepository
	orders   store.OrderRepository
	tx       store.Transactor
	log      zerolog.Logger

	clock      clock
	newReceipt func() string
}

func NewPaymentCoordinator(
	gateway payment.Gateway,
	keySecret, currency string,
	carts store.CartRepository,
	orders store.OrderRepository,
	tx store.Transactor,
	log zerolog.Logger,
) *PaymentCoordinator {
	return &PaymentCoordinator{
		gateway:    gateway,
		secret:     keySecret,
		currency:   currency,
		carts:      carts,
		orders:     orders,
		tx:         tx,
		log:        log,
		newReceipt: newReceipt,
	}
}

// newReceipt fits the 40 character receipt limit of the gateway.
func newReceipt() string {
	return "receipt_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// CreateGatewayOrder quotes amount (major units) to the gateway in minor units.
func (p *PaymentCoordinator) CreateGatewayOrder(ctx context.Context, in CreateGatewayOrderInput) (*payment.GatewayOrder, error) {
	if !in.Amount.IsPositive() {
		return nil, apperr.Validation("amount must be positive")
	}
	minor := in.Amount.Mul(minorUnitsPerMajor).Round(0).IntPart()

	order, err := p.gateway.CreateOrder(ctx, minor, p.currency, p.newReceipt())
	if err != nil {
		return nil, apperr.Gateway(err)
	}
	return order, nil
}

func (p *PaymentCoordinator) Verify(cb PaymentCallback) bool {
	return payment.VerifySignature(cb.OrderID, cb.PaymentID, cb.Signature, p.secret)
}

// Checkout verifies the callback, then snapshots the cart into an order and
// clears the cart in one transaction. The payment id makes it idempotent: a
// retry returns the order that was already written and leaves the current
// cart alone, since it may hold items added after that order.
func (p *PaymentCoordinator) Checkout(ctx context.Context, userID string, cb PaymentCallback) (*CheckoutResult, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	if !p.Verify(cb) {
		return nil, apperr.VerificationFailed("Payment verification failed")
	}

	var result *CheckoutResult
	err = p.tx.WithTransaction(ctx, func(ctx context.Context) error {
		existing, err := p.orders.FindByPaymentID(ctx, uid, cb.PaymentID)
		switch {
		case err == nil:
			result = &CheckoutResult{Order: existing, Replayed: true}
			return nil
		case !errors.Is(err, store.ErrNotFound):
			return fmt.Errorf("lookup order by payment: %w", err)
		}

		items, err := p.carts.ListByUser(ctx, uid)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return apperr.Validation("No items in order")
		}

		snapshot := make([]models.OrderItem, 0, len(items))
		for _, it := range items {
			snapshot = append(snapshot, it.Snapshot())
		}
		order := &models.Order{
			UserID:      uid,
			Items:       snapshot,
			TotalAmount: CartTotal(items).InexactFloat64(),
			PaymentID:   cb.PaymentID,
			Status:      models.OrderStatusPlaced,
			OrderDate:   p.clock.now(),
		}
		if err := p.orders.Create(ctx, order); err != nil {
			return fmt.Errorf("commit order: %w", err)
		}

		result = &CheckoutResult{Order: order}
		return p.clear(ctx, uid)
	})
	if errors.Is(err, store.ErrDuplicate) {
		// A concurrent retry of the same payment won. The duplicate key aborted
		// our transaction, so the winner is read outside of it.
		existing, ferr := p.orders.FindByPaymentID(ctx, uid, cb.PaymentID)
		if ferr != nil {
			return nil, fmt.Errorf("lookup duplicate order: %w", ferr)
		}
		result, err = &CheckoutResult{Order: existing, Replayed: true}, nil
	}
	if err != nil {
		return nil, err
	}

	p.log.Info().
		Str("user_id", userID).
		Str("order_id", result.Order.ID.Hex()).
		Str("payment_id", cb.PaymentID).
		Bool("replayed", result.Replayed).
		Msg("checkout committed")
	return result, nil
}

func (p *PaymentCoordinator) clear(ctx context.Context, uid primitive.ObjectID) error {
	if _, err := p.carts.DeleteByUser(ctx, uid); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
