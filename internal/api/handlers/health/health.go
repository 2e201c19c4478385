package health

import (
	"net/http"
	"runtime"
	"time"

	"pantry-tracker/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
}

// Handler serves the health endpoints.
type Handler struct {
	cfg     *config.Config
	started time.Time
}

// NewHandler creates a health handler.
func NewHandler(cfg *config.Config) *Handler {
	return &Handler{
		cfg:     cfg,
		started: time.Now(),
	}
}

// Check reports process health and runtime stats.
func (h *Handler) Check(c *gin.Context) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.cfg.App.Version,
		Runtime: map[string]interface{}{
			"goroutines":     runtime.NumGoroutine(),
			"alloc_bytes":    mem.Alloc,
			"uptime_seconds": int(time.Since(h.started).Seconds()),
		},
	})
}

// Live answers the liveness probe.
func (h *Handler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

// Ready answers the readiness probe.
func (h *Handler) Ready(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
