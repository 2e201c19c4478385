package pantry

import (
	"net/http"
	"strconv"
	"time"

	"pantry-tracker/internal/api/handlers"
	"pantry-tracker/internal/core/inventory"
	"pantry-tracker/internal/core/product"
	"pantry-tracker/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the food item and category endpoints.
type Handler struct {
	inventory *inventory.Service
	lookup    *product.Lookup
}

// NewHandler creates a pantry handler.
func NewHandler(inv *inventory.Service, lookup *product.Lookup) *Handler {
	return &Handler{
		inventory: inv,
		lookup:    lookup,
	}
}

// AddItemRequest is the add-item payload.
type AddItemRequest struct {
	Name       string `json:"name" binding:"required"`
	Quantity   int    `json:"quantity"`
	ExpiryDate string `json:"expiry_date" binding:"required"`
	CategoryID string `json:"category_id"`
	Barcode    string `json:"barcode"`
	ImageURL   string `json:"image_url"`
}

// AddCategoryRequest is the add-category payload.
type AddCategoryRequest struct {
	Name string `json:"name" binding:"required"`
	Icon string `json:"icon"`
}

// ListItems returns all food items sorted by expiry.
func (h *Handler) ListItems(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": h.inventory.Items()})
}

// ExpiringItems returns items expiring within ?days (default 3).
func (h *Handler) ExpiringItems(c *gin.Context) {
	days := 3
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			handlers.RespondError(c, common.NewValidationError("days must be a non-negative integer"))
			return
		}
		days = parsed
	}

	c.JSON(http.StatusOK, gin.H{
		"days":  days,
		"items": h.inventory.ExpiringWithin(days, time.Now()),
	})
}

// AddItem creates a food item.
func (h *Handler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.RespondError(c, common.NewValidationError(err.Error()))
		return
	}

	expiry, err := inventory.ParseDate(req.ExpiryDate)
	if err != nil {
		handlers.RespondError(c, common.NewValidationError("expiry_date must be a YYYY-MM-DD date"))
		return
	}

	item, err := h.inventory.AddItem(inventory.AddItemRequest{
		Name:       req.Name,
		Quantity:   req.Quantity,
		ExpiryDate: expiry,
		CategoryID: req.CategoryID,
		Barcode:    req.Barcode,
		ImageURL:   req.ImageURL,
	})
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// DeleteItem removes a food item.
func (h *Handler) DeleteItem(c *gin.Context) {
	if err := h.inventory.DeleteItem(c.Param("id")); err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListCategories returns all categories, defaults first.
func (h *Handler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.inventory.Categories()})
}

// AddCategory creates a user-defined category.
func (h *Handler) AddCategory(c *gin.Context) {
	var req AddCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.RespondError(c, common.NewValidationError(err.Error()))
		return
	}

	category, err := h.inventory.AddCategory(req.Name, req.Icon)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// DeleteCategory removes a non-default category.
func (h *Handler) DeleteCategory(c *gin.Context) {
	if err := h.inventory.DeleteCategory(c.Param("id")); err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// LookupProduct resolves a barcode against the product database.
func (h *Handler) LookupProduct(c *gin.Context) {
	barcode := c.Param("barcode")

	found, err := h.lookup.Find(c.Request.Context(), barcode)
	if err != nil {
		if common.IsValidationError(err) {
			handlers.RespondError(c, err)
			return
		}
		common.LogError("product lookup failed", zap.String("barcode", barcode), zap.Error(err))
		handlers.RespondError(c, common.ErrServiceUnavailable)
		return
	}
	if found == nil {
		handlers.RespondError(c, common.ErrProductNotFound)
		return
	}

	c.JSON(http.StatusOK, found)
}
