package route

import (
	"net/http"
	"time"

	"github.com/fekuna/gesstock-service/internal/auth"
	"github.com/fekuna/gesstock-service/internal/pkg/logger"
	"github.com/fekuna/gesstock-service/internal/pkg/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Registrar mounts a module's routes under /api/v1.
type Registrar interface {
	Register(rg *gin.RouterGroup)
}

// HealthFunc reports whether the storage backend is usable.
type HealthFunc func() error

func InitRoutes(log logger.ZapLogger, health HealthFunc, modules ...Registrar) *gin.Engine {
	router := gin.New()

	router.Use(
		gin.Recovery(),
		middleware.HTTPLogger(log),
	)

	router.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", auth.HeaderUserID, "Accept-Language"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           1 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		if health != nil {
			if err := health(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	api.Use(auth.ContextMiddleware())
	for _, m := range modules {
		m.Register(api)
	}

	return router
}
