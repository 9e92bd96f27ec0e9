package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/troopdesk/troopdesk-backend/internal/response"
)

// HealthChecker reports the state of each backing service.
type HealthChecker interface {
	Check(ctx context.Context) (map[string]string, error)
}

// HealthHandler serves the liveness probe.
type HealthHandler struct {
	checker HealthChecker
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(checker HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Health godoc
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	deps, err := h.checker.Check(c.Request.Context())
	if err != nil {
		response.Partial(c, http.StatusServiceUnavailable, response.ErrStoreUnavailable,
			gin.H{"status": "degraded", "dependencies": deps})
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "ok", "dependencies": deps})
}
