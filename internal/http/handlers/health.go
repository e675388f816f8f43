package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/udeepa-des/StudyCountDown-backend/internal/db"
)

type DBStatus interface {
	State() db.ConnState
}

type HealthHandler struct {
	env string
	db  DBStatus
}

func NewHealthHandler(env string, db DBStatus) *HealthHandler {
	return &HealthHandler{env: env, db: db}
}

// Health always answers 200; dbState carries the supervisor's numeric state
// so the frontend can surface a degraded backend.
func (h *HealthHandler) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"dbState":     int(h.db.State()),
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": h.env,
	})
}
