package handlers

import (
	"net/http"
	"strconv"

	"goldenspoon-backend/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) AllProducts(c *gin.Context) {
	page, _ := strconv.ParseInt(c.Query("page"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit"), 10, 64)

	res, err := h.Catalog.ListProducts(c.Request.Context(), page, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ItemsByCategory(c *gin.Context) {
	items, err := h.Catalog.ItemsByCategory(c.Request.Context(), c.Param("item"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) AddCategoryItem(c *gin.Context) {
	var req service.CategoryItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	item, err := h.Catalog.AddCategoryItem(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Items Stored Succesfully",
		"data":    item,
	})
}
