package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/healthdash/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(handler.logger),
	)

	api := router.Group("/api/v1")
	{
		api.POST("/session/login", handler.Login)
		api.POST("/session/register", handler.Register)
		api.DELETE("/session", handler.Logout)
		api.GET("/session", handler.Session)
		api.GET("/notifications", handler.Notifications)
		api.GET("/status", handler.Status)
	}

	protected := api.Group("")
	protected.Use(sessionMiddleware(handler.sessions))
	{
		protected.GET("/views/dashboard", handler.DashboardView)
		protected.GET("/views/steps", handler.StepsView)
		protected.GET("/views/calories", handler.CaloriesView)
		protected.GET("/views/history", handler.HistoryView)
		protected.GET("/views/friends", handler.FriendsView)
		protected.POST("/views/report", handler.GenerateReport)
		protected.GET("/charts/:canvasId", handler.Chart)
		protected.GET("/report/export.pdf", handler.ExportPDF)
		protected.GET("/report/export.csv", handler.ExportCSV)
		protected.POST("/entries", handler.SaveSteps)
		protected.POST("/entries/quick", handler.SaveQuickSteps)
		protected.POST("/meals", handler.SaveMeal)
		protected.POST("/meals/quick", handler.SaveQuickMeal)
		protected.PUT("/targets", handler.UpdateTargets)
		protected.PUT("/search", handler.UpdateSearch)
		protected.GET("/search", handler.SearchState)
		protected.POST("/friends", handler.AddFriend)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
