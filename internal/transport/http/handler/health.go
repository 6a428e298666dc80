package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pensaai/internal/index"
)

// BackendPinger checks completion-backend reachability.
type BackendPinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	appName   string
	env       string
	startedAt time.Time
	backend   BackendPinger
	index     *index.Service
}

type dependencyStatus struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

func NewHealthHandler(appName, env string, startedAt time.Time, backend BackendPinger, indexService *index.Service) *HealthHandler {
	return &HealthHandler{
		appName:   appName,
		env:       env,
		startedAt: startedAt,
		backend:   backend,
		index:     indexService,
	}
}

// Check reports liveness flags only; it carries no business logic.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	backendStatus := dependencyStatus{OK: true}
	if err := h.backend.Ping(ctx); err != nil {
		backendStatus = dependencyStatus{OK: false, Message: err.Error()}
	}
	indexStatus := h.index.Status()

	statusCode := http.StatusOK
	if !backendStatus.OK {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, gin.H{
		"app":        h.appName,
		"env":        h.env,
		"uptime_sec": int(time.Since(h.startedAt).Seconds()),
		"backend":    backendStatus,
		"index":      indexStatus,
	})
}
