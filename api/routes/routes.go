package routes

import (
	"net/http"

	"github.com/ArowuTest/skillprize-backend/internal/config"
	"github.com/ArowuTest/skillprize-backend/internal/handlers"
	"github.com/ArowuTest/skillprize-backend/internal/metrics"
	"github.com/ArowuTest/skillprize-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// HandlerDependencies holds all the handlers the router needs
type HandlerDependencies struct {
	AuthHandler     *handlers.AuthHandler
	ContestHandler  *handlers.ContestHandler
	QuestionHandler *handlers.QuestionHandler
	EntryHandler    *handlers.EntryHandler
	PaymentHandler  *handlers.PaymentHandler
	AdminHandler    *handlers.AdminHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies, m *metrics.Metrics) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(m.Middleware())

	router.GET("/metrics", gin.WrapH(m.Handler()))

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/register", deps.AuthHandler.Register)
			auth.POST("/login", deps.AuthHandler.Login)
		}

		contests := public.Group("/contests")
		{
			contests.GET("", deps.ContestHandler.List)
			contests.GET("/:id", deps.ContestHandler.Get)
			contests.GET("/:id/question", deps.QuestionHandler.GetPublic)
		}
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		protected.GET("/auth/me", deps.AuthHandler.Me)

		contests := protected.Group("/contests/:id")
		{
			contests.GET("/entry", deps.EntryHandler.Status)
			contests.POST("/initiate", deps.EntryHandler.Initiate)
			contests.POST("/payments/order", deps.PaymentHandler.CreateOrder)
			contests.POST("/payments/capture", deps.PaymentHandler.Capture)
			contests.POST("/qualification", deps.EntryHandler.SubmitQualification)
		}

		me := protected.Group("/me")
		{
			me.GET("/entries", deps.EntryHandler.ListMine)
			me.GET("/payments", deps.PaymentHandler.ListMine)
		}

		admin := protected.Group("/admin")
		admin.Use(middleware.AdminOnly())
		{
			admin.GET("/stats", deps.AdminHandler.Stats)
			admin.GET("/users", deps.AdminHandler.Users)
			admin.GET("/entries", deps.AdminHandler.Entries)

			admin.POST("/contests", deps.ContestHandler.Create)
			admin.PUT("/contests/:id", deps.ContestHandler.Update)
			admin.DELETE("/contests/:id", deps.ContestHandler.Delete)
			admin.GET("/contests/:id/export", deps.AdminHandler.ExportEntries)

			admin.GET("/contests/:id/question", deps.QuestionHandler.Get)
			admin.POST("/contests/:id/question", deps.QuestionHandler.Create)
			admin.PUT("/contests/:id/question", deps.QuestionHandler.Update)
			admin.DELETE("/contests/:id/question", deps.QuestionHandler.Delete)
		}
	}

	return router
}
