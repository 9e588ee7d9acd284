package handlers

import (
	"net/http"

	"goldenspoon-backend/internal/apperr"
	"goldenspoon-backend/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreatePaymentOrder(c *gin.Context) {
	var req service.CreateGatewayOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badInput(c)
		return
	}

	order, err := h.Payments.CreateGatewayOrder(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) VerifyPayment(c *gin.Context) {
	var req service.PaymentCallback
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false})
		return
	}

	ok := h.Payments.Verify(req)
	observeVerification(ok)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Checkout verifies the payment and turns the cart into an order.
func (h *Handler) Checkout(c *gin.Context) {
	var req service.PaymentCallback
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badInput(c)
		return
	}

	res, err := h.Payments.Checkout(c.Request.Context(), currentUser(c), req)
	if apperr.Is(err, apperr.KindVerificationFailed) {
		observeVerification(false)
	} else if !apperr.Is(err, apperr.KindForbidden) {
		observeVerification(true)
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	status := http.StatusCreated
	if res.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{
		"message": "Order placed successfully",
		"orderId": res.Order.ID,
		"order":   res.Order,
	})
}
