package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"uinify-backend/internal/config"
)

// CORS returns nil when no origin is configured.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	if len(cfg.AllowOrigins) == 0 {
		return nil
	}

	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	for _, origin := range cfg.AllowOrigins {
		if origin == "*" {
			corsCfg.AllowAllOrigins = true
			return cors.New(corsCfg)
		}
	}
	corsCfg.AllowOrigins = cfg.AllowOrigins
	return cors.New(corsCfg)
}
