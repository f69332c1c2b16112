package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/finapp2p/backend/internal/infrastructure/logger"
	"github.com/finapp2p/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const healthPingTimeout = 2 * time.Second

// Pinger reports whether a backing store answers
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler handles health and system information endpoints
type SystemHandler struct {
	BaseHandler
	db        Pinger
	name      string
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler. db is nil when persons are
// not kept in a database, in which case health reports it as disabled.
func NewSystemHandler(name string, db Pinger) *SystemHandler {
	return &SystemHandler{
		db:        db,
		name:      name,
		startTime: time.Now(),
	}
}

// Health godoc
// @ID           getHealth
// @Summary      Health check
// @Description  Reports whether the server and its database answer
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.HealthResponse
// @Failure      503 {object} dto.HealthResponse
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	resp := dto.HealthResponse{
		Status:   "ok",
		Message:  "FINAPP2P backend is running",
		Database: "disabled",
	}
	if h.db == nil {
		c.JSON(http.StatusOK, resp)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		logger.L(c.Request.Context()).Warn("Database health check failed", zap.Error(err))
		resp.Status = "unhealthy"
		resp.Message = "Database is not reachable"
		resp.Database = "error"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	resp.Database = "ok"
	c.JSON(http.StatusOK, resp)
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name" example:"finapp2p-backend"`
	GoVersion string `json:"go_version" example:"go1.25.5"`
	Uptime    string `json:"uptime" example:"1h30m45s"`
}

// GetSystemInfo godoc
// @ID           getSystemInfo
// @Summary      Get system information
// @Description  Returns the service name, Go version and uptime
// @Tags         system
// @Produce      json
// @Success      200 {object} SystemInfoResponse
// @Router       /api/system/info [get]
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	c.JSON(http.StatusOK, SystemInfoResponse{
		Name:      h.name,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}
