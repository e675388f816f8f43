package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware enforces the explicit allow-list. A request carrying a
// disallowed Origin is rejected with 403 and the allow-list echoed back so
// misconfigured frontends can see what to ask for; requests without an Origin
// header (curl, server-to-server) pass through untouched.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedOrigins))

	for _, origin := range allowedOrigins {
		allowed[origin] = struct{}{}
	}

	return func(ctx *gin.Context) {
		origin := ctx.GetHeader("Origin")

		if origin == "" {
			ctx.Next()
			return
		}

		_, ok := allowed[origin]

		if !ok {
			payload := gin.H{
				"code":    "cors_rejected",
				"message": "Origin not allowed by CORS policy",
				"details": gin.H{"allowedOrigins": allowedOrigins},
			}

			if id := ctx.GetString(CtxRequestID); id != "" {
				payload["requestId"] = id
			}

			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": payload})
			return
		}

		ctx.Header("Access-Control-Allow-Origin", origin)
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		ctx.Header("Access-Control-Allow-Headers", "Authorization,Content-Type")
		ctx.Header("Vary", "Origin")

		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}

		ctx.Next()
	}
}
