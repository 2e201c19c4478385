package recipes

import (
	"net/http"

	"pantry-tracker/internal/api/handlers"
	"pantry-tracker/internal/core/inventory"
	"pantry-tracker/internal/core/recipe"
	"pantry-tracker/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// Handler serves the recipe suggestion endpoint.
type Handler struct {
	orchestrator *recipe.Orchestrator
	inventory    *inventory.Service
}

// NewHandler creates a recipe handler.
func NewHandler(orch *recipe.Orchestrator, inv *inventory.Service) *Handler {
	return &Handler{
		orchestrator: orch,
		inventory:    inv,
	}
}

// SuggestRequest shapes the suggestion request.
type SuggestRequest struct {
	Difficulty string `json:"difficulty"`
	MaxRecipes int    `json:"max_recipes"`
}

// Suggest returns recipes for the current inventory.
func (h *Handler) Suggest(c *gin.Context) {
	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		handlers.RespondError(c, common.NewValidationError(err.Error()))
		return
	}

	prefs := recipe.Preferences{
		MaxRecipes: req.MaxRecipes,
	}
	if req.Difficulty != "" {
		prefs.Difficulty = recipe.NormalizeDifficulty(req.Difficulty)
	}

	suggestions, err := h.orchestrator.Suggest(c.Request.Context(), h.inventory.Items(), prefs)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": suggestions})
}
