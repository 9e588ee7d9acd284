package handlers

import (
	"net/http"

	"goldenspoon-backend/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) PlaceOrder(c *gin.Context) {
	var req service.PlaceOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badInput(c)
		return
	}

	order, err := h.Orders.PlaceOrder(c.Request.Context(), currentUser(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"orderId": order.ID,
	})
}

func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.Orders.ListOrders(c.Request.Context(), currentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Orders fetched successfully",
		"data":    orders,
	})
}

func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.Orders.GetOrder(c.Request.Context(), currentUser(c), c.Param("orderId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
