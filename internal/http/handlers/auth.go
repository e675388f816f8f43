package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/udeepa-des/StudyCountDown-backend/internal/auth"
	"github.com/udeepa-des/StudyCountDown-backend/internal/config"
	"github.com/udeepa-des/StudyCountDown-backend/internal/domain/user"
	"github.com/udeepa-des/StudyCountDown-backend/internal/security"
)

type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (user.User, error)
	Insert(ctx context.Context, u user.User) error
}

type AuthHandler struct {
	users CredentialStore
	jwt   *auth.Manager
}

func NewAuthHandler(users CredentialStore, jwtManager *auth.Manager) *AuthHandler {
	return &AuthHandler{
		users: users,
		jwt:   jwtManager,
	}
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req user.RegisterRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		RespondInternal(ctx, "Could not create user")
		return
	}

	u := user.NewFromRegisterRequest(req, hash)

	err = h.users.Insert(cctx, u)

	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			RespondError(ctx, http.StatusBadRequest, "email_taken", "Email is already in use.", nil)
			return
		}

		RespondInternal(ctx, "Could not create user")
		return
	}

	token, err := h.jwt.Sign(u.ID)

	if err != nil {
		RespondInternal(ctx, "Could not generate token")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"user":  u.Summary(),
		"token": token,
	})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req user.LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}
	// short timeout for DB lookup
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	foundUser, err := h.users.FindByEmail(cctx, req.Email)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondUnauthorized(ctx, "invalid_credentials", "Email or password is incorrect.")
			return
		}

		RespondInternal(ctx, "Could not log in")
		return
	}

	err = security.CheckPassword(foundUser.PasswordHash, req.Password)

	if err != nil {
		RespondUnauthorized(ctx, "invalid_credentials", "Email or password is incorrect.")
		return
	}

	token, err := h.jwt.Sign(foundUser.ID)

	if err != nil {
		RespondInternal(ctx, "Could not generate token")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user":  foundUser.Summary(),
		"token": token,
	})
}
