package handlers

import (
	"net/http"

	"goldenspoon-backend/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) AddToCart(c *gin.Context) {
	var req service.AddToCartInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badInput(c)
		return
	}

	res, err := h.Cart.ApplyDelta(c.Request.Context(), currentUser(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	switch {
	case res.Removed:
		c.JSON(http.StatusOK, gin.H{
			"message": "Item removed from cart (quantity 0)",
			"item":    res.Item,
			"removed": true,
		})
	case res.Created:
		c.JSON(http.StatusCreated, gin.H{
			"message": "Added to cart Succesfully",
			"data":    res.Item,
		})
	default:
		c.JSON(http.StatusCreated, gin.H{
			"message": "Quantity Updated",
			"item":    res.Item,
		})
	}
}

func (h *Handler) CartItems(c *gin.Context) {
	items, err := h.Cart.ListCart(c.Request.Context(), currentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "All items in cart",
		"fooditems": items,
	})
}

func (h *Handler) DeleteCartItem(c *gin.Context) {
	item, err := h.Cart.RemoveItem(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Item deleted successfully",
		"item":    item,
	})
}

func (h *Handler) ClearCart(c *gin.Context) {
	if err := h.Cart.ClearCart(c.Request.Context(), currentUser(c)); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared successfully"})
}
