package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/leads-enricher/internal/auth"
	"github.com/octobees/leads-enricher/internal/config"
	"github.com/octobees/leads-enricher/internal/handler"
	middlewarepkg "github.com/octobees/leads-enricher/internal/middleware"
	"github.com/octobees/leads-enricher/internal/service"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth        *handler.AuthHandler
	Scrape      *handler.ScrapeHandler
	Leads       *handler.LeadsHandler
	Competitors *handler.CompetitorsHandler
	Metrics     http.Handler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})
	if handlers.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(handlers.Metrics))
	}

	e.POST("/auth/login", handlers.Auth.Login)

	secured := e.Group("")
	secured.Use(middlewarepkg.JWT(jwtManager), middlewarepkg.RequireRole(service.OperatorRole))

	limiter := middlewarepkg.ScrapeRateLimiter(cfg.RateLimitScrape)
	secured.POST("/scrape", handlers.Scrape.Scrape, limiter)
	secured.POST("/scrape/batch", handlers.Scrape.ScrapeBatch, limiter)

	leads := secured.Group("/leads")
	leads.GET("", handlers.Leads.List)
	leads.POST("", handlers.Leads.Create)
	leads.POST("/export", handlers.Leads.Export)
	leads.GET("/:id", handlers.Leads.Get)
	leads.PUT("/:id", handlers.Leads.Update)
	leads.GET("/:id/email-template", handlers.Leads.EmailTemplate)
	leads.POST("/:id/linkedin-connect", handlers.Leads.LinkedInConnect)
	leads.POST("/:id/follow-up", handlers.Leads.FollowUp)
	leads.GET("/:id/analyze", handlers.Leads.Analyze)

	secured.GET("/competitors/:company_id", handlers.Competitors.List)
	secured.POST("/competitors", handlers.Competitors.Create)
}
