package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/udeepa-des/StudyCountDown-backend/internal/config"
	"github.com/udeepa-des/StudyCountDown-backend/internal/domain/user"
	"github.com/udeepa-des/StudyCountDown-backend/internal/http/middlewares"
	"github.com/udeepa-des/StudyCountDown-backend/internal/utils"
)

type ProfileStore interface {
	FindByID(ctx context.Context, id string) (user.User, error)
	Save(ctx context.Context, u *user.User) error
}

type UsersHandler struct {
	users ProfileStore
}

func NewUsersHandler(users ProfileStore) *UsersHandler {
	return &UsersHandler{users: users}
}

// GetMe returns the caller's own document, already resolved by the auth
// middleware.
func (h *UsersHandler) GetMe(ctx *gin.Context) {
	u, ok := middlewares.UserFromContext(ctx)

	if !ok {
		RespondInternal(ctx, "Missing identity context")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, u)
}

// GetByID serves any profile to any authenticated caller; the password hash
// never leaves the struct. A malformed id behaves like an unknown one.
func (h *UsersHandler) GetByID(ctx *gin.Context) {
	id := ctx.Param("userId")

	if !utils.IsUUID(id) {
		RespondNotFound(ctx, "User not found")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	u, err := h.users.FindByID(cctx, id)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}
		RespondInternal(ctx, "Could not fetch user")
		return
	}

	ctx.JSON(http.StatusOK, u)
}

func (h *UsersHandler) UpdateSettings(ctx *gin.Context) {
	var req user.UpdateSettingsRequest

	if !BindJSON(ctx, &req) {
		return
	}

	u, ok := middlewares.UserFromContext(ctx)

	if !ok {
		RespondInternal(ctx, "Missing identity context")
		return
	}

	if req.Name != nil {
		u.Name = *req.Name
	}

	if req.Avatar != nil {
		u.Avatar = *req.Avatar
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.users.Save(cctx, u); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}
		RespondInternal(ctx, "Could not update settings")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Settings updated",
		"user":    u.Summary(),
	})
}

func (h *UsersHandler) UpdateTargetDate(ctx *gin.Context) {
	var req user.UpdateTargetDateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	u, ok := middlewares.UserFromContext(ctx)

	if !ok {
		RespondInternal(ctx, "Missing identity context")
		return
	}

	u.TargetDate = &req.TargetDate

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.users.Save(cctx, u); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}
		RespondInternal(ctx, "Could not update target date")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":    "Target date updated",
		"targetDate": u.TargetDate,
	})
}
