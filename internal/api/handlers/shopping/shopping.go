package shopping

import (
	"net/http"

	"pantry-tracker/internal/api/handlers"
	"pantry-tracker/internal/core/recipe"
	"pantry-tracker/internal/core/shopping"
	"pantry-tracker/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// Handler serves the shopping list endpoints.
type Handler struct {
	list *shopping.Aggregator
}

// NewHandler creates a shopping list handler.
func NewHandler(list *shopping.Aggregator) *Handler {
	return &Handler{list: list}
}

// AddRequest is the add-entry payload.
type AddRequest struct {
	Name         string `json:"name" binding:"required"`
	Amount       string `json:"amount"`
	Category     string `json:"category"`
	CategoryIcon string `json:"category_icon"`
	Priority     string `json:"priority"`
	Essential    bool   `json:"essential"`
}

// List returns the grouped view plus stats.
func (h *Handler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"groups": h.list.GroupByCategory(),
		"stats":  h.list.Stats(),
	})
}

// Add creates or merges an entry.
func (h *Handler) Add(c *gin.Context) {
	var req AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.RespondError(c, common.NewValidationError(err.Error()))
		return
	}

	item, created, err := h.list.Add(shopping.AddRequest{
		Name:         req.Name,
		Amount:       req.Amount,
		Category:     req.Category,
		CategoryIcon: req.CategoryIcon,
		Priority:     shopping.Priority(req.Priority),
		Essential:    req.Essential,
		Source:       shopping.SourceManual,
	})
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"item": item, "created": created})
}

// AddFromRecipe imports a recipe's missing ingredients.
func (h *Handler) AddFromRecipe(c *gin.Context) {
	var req recipe.Recipe
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.RespondError(c, common.NewValidationError(err.Error()))
		return
	}

	result, err := h.list.AddFromRecipe(req)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Toggle flips an entry's checked flag.
func (h *Handler) Toggle(c *gin.Context) {
	if err := h.list.Toggle(c.Param("id")); err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Remove deletes an entry.
func (h *Handler) Remove(c *gin.Context) {
	if err := h.list.Remove(c.Param("id")); err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearChecked removes all checked entries.
func (h *Handler) ClearChecked(c *gin.Context) {
	if err := h.list.ClearChecked(); err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearAll empties the list.
func (h *Handler) ClearAll(c *gin.Context) {
	if err := h.list.ClearAll(); err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Stats returns list totals and progress.
func (h *Handler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.list.Stats())
}

// Export returns the plain-text rendering of the list.
func (h *Handler) Export(c *gin.Context) {
	c.String(http.StatusOK, h.list.ExportAsText())
}
