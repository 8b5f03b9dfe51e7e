package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"alowais/internal/config"
	"alowais/internal/metrics"
)

// NewRouter wires the middleware chain and routes
func NewRouter(cfg *config.Config, db *gorm.DB, h *Handlers) *gin.Engine {
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		RequestLogger(),
		SecurityHeaders(cfg),
		CORS(cfg),
		metrics.PrometheusMiddleware(),
	)

	router.GET("/health", h.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		// Public surface
		v1.POST("/inquiries", h.SubmitInquiry)
		v1.GET("/properties", h.ListProperties)
		v1.GET("/properties/:id", h.GetProperty)
		v1.POST("/auth/login", h.Login)

		// Staff surface: inquiry triage
		staff := v1.Group("", JWTAuth(db, "staff"))
		{
			staff.GET("/inquiries", h.ListInquiries)
			staff.PATCH("/inquiries/:id/status", h.UpdateInquiryStatus)
			staff.GET("/auth/me", h.Me)
		}

		// Admin surface: catalog management
		admin := v1.Group("", JWTAuth(db, "admin"))
		{
			admin.POST("/properties", h.CreateProperty)
			admin.PUT("/properties/:id", h.UpdateProperty)
			admin.DELETE("/properties/:id", h.DeleteProperty)
			admin.DELETE("/admin/properties", h.DeleteAllProperties)
		}
	}

	return router
}
