package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/trilhadev/course-viewer-backend/pkg/session"
)

// CORSMiddleware allows the frontend to talk to the API
func CORSMiddleware() gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	// allow all origins for now - should probably restrict this later
	cfg.AllowAllOrigins = true
	cfg.AllowCredentials = false
	cfg.AllowHeaders = []string{"Content-Type"}
	return cors.New(cfg)
}

// RequestLogger logs one line per request with zap
func RequestLogger(log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		}
		if len(c.Errors) > 0 {
			log.Errorw("request failed", append(fields, "error", c.Errors.Last().Err)...)
			return
		}
		log.Infow("request", fields...)
	}
}

// RequireSession rejects requests without a valid session cookie and puts
// the user id on the context. The cookie alone is trusted - there is no
// server-side session table to check against.
func RequireSession(cookies *session.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, err := cookies.Decode(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "not authenticated",
				"success": false,
			})
			return
		}

		c.Set(session.ContextUserKey, tok.UserID)
		c.Next()
	}
}
