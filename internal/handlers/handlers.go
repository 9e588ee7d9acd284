package handlers

import (
	"context"
	"net/http"

	"goldenspoon-backend/internal/apperr"
	"goldenspoon-backend/internal/models"
	"goldenspoon-backend/internal/payment"
	"goldenspoon-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const invalidInput = "Please give valid inputs"

type AuthService interface {
	Signup(ctx context.Context, in service.SignupInput) (*service.AuthResult, error)
	Signin(ctx context.Context, in service.SigninInput) (*service.AuthResult, error)
	ForgotPassword(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) error
	ResetPassword(ctx context.Context, in service.ResetPasswordInput) error
	UserDetails(ctx context.Context, userID string) (*models.User, error)
}

type CartService interface {
	ApplyDelta(ctx context.Context, userID string, in service.AddToCartInput) (*service.CartResult, error)
	ListCart(ctx context.Context, userID string) ([]models.CartItem, error)
	RemoveItem(ctx context.Context, userID, itemID string) (*models.CartItem, error)
	ClearCart(ctx context.Context, userID string) error
}

type OrderService interface {
	PlaceOrder(ctx context.Context, userID string, in service.PlaceOrderInput) (*models.Order, error)
	ListOrders(ctx context.Context, userID string) ([]models.Order, error)
	GetOrder(ctx context.Context, userID, orderID string) (*models.Order, error)
}

type CatalogService interface {
	ListProducts(ctx context.Context, page, limit int64) (*service.ProductPage, error)
	ItemsByCategory(ctx context.Context, category string) ([]models.CategoryItem, error)
	AddCategoryItem(ctx context.Context, in service.CategoryItemInput) (*models.CategoryItem, error)
}

type PaymentService interface {
	CreateGatewayOrder(ctx context.Context, in service.CreateGatewayOrderInput) (*payment.GatewayOrder, error)
	Verify(cb service.PaymentCallback) bool
	Checkout(ctx context.Context, userID string, cb service.PaymentCallback) (*service.CheckoutResult, error)
}

// Handler binds HTTP requests to the services.
type Handler struct {
	Auth     AuthService
	Cart     CartService
	Orders   OrderService
	Catalog  CatalogService
	Payments PaymentService
	Log      zerolog.Logger
}

// fail writes err as {"message": ...}. Server-side causes are logged, not returned.
func (h *Handler) fail(c *gin.Context, err error) {
	status := apperr.Status(apperr.KindOf(err))
	if status >= http.StatusInternalServerError {
		h.Log.Error().
			Err(err).
			Str("request_id", c.GetString(requestIDKey)).
			Str("route", c.FullPath()).
			Msg("request failed")
	}
	c.AbortWithStatusJSON(status, gin.H{"message": apperr.PublicMessage(err)})
}

func (h *Handler) badInput(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": invalidInput})
}

func currentUser(c *gin.Context) string {
	return c.GetString(userIDKey)
}
