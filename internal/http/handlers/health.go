package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store Pinger
}

// create a new instance of the health handler
func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// Healthz reports process liveness only. It must keep answering while the
// store is down.
func (h *HealthHandler) Healthz(ctx *gin.Context) {
	ctx.Status(http.StatusOK)
}

func (h *HealthHandler) Readyz(ctx *gin.Context) {
	if h.store != nil {
		cctx, cancel := context.WithTimeout(ctx.Request.Context(), 1*time.Second)
		defer cancel()

		if err := h.store.Ping(cctx); err != nil {
			slog.Default().WarnContext(cctx, "readiness check failed", "err", err)
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "store not ready"})
			return
		}
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ready"})
}
