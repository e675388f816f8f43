package middlewares

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/udeepa-des/StudyCountDown-backend/internal/domain/user"
)

// Keep these small interfaces so tests can fake them easily.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

type UserResolver interface {
	FindByID(ctx context.Context, id string) (user.User, error)
}

type AuthMiddleware struct {
	jwt   TokenVerifier
	users UserResolver
}

func NewAuthMiddleware(jwt TokenVerifier, users UserResolver) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt, users: users}
}

// RequireAuth resolves the caller on every request; identities are never
// cached between requests. The resolved document is the working copy the
// update handlers mutate and save.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))

		if raw == "" {
			abortUnauthorized(c, "access_denied", "Access denied")
			return
		}

		// tolerate both "Bearer <token>" and a bare token
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))

		userID, err := m.jwt.Verify(raw)

		if err != nil {
			abortUnauthorized(c, "invalid_token", "Invalid or expired token")
			return
		}

		cctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		u, err := m.users.FindByID(cctx, userID)

		if err != nil {
			abortUnauthorized(c, "user_not_found", "User not found")
			return
		}

		// Stash the identity on the context
		c.Set(CtxUserID, u.ID)
		c.Set(CtxUser, &u)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, code, message string) {
	payload := gin.H{
		"code":    code,
		"message": message,
	}

	if id := c.GetString(CtxRequestID); id != "" {
		payload["requestId"] = id
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": payload})
}

// Optional helpers so handlers don't need to know the magic keys.

func UserIDFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

func UserFromContext(c *gin.Context) (*user.User, bool) {
	v, ok := c.Get(CtxUser)
	if !ok {
		return nil, false
	}
	u, ok := v.(*user.User)
	return u, ok
}
