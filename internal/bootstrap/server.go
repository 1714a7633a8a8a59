package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Domenick1991/flightbooking/api"
	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/service/admin"
	"github.com/Domenick1991/flightbooking/internal/service/auth"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Services struct {
	Auth     auth.AuthUseCase
	Flights  flights.FlightUseCase
	Bookings booking.BookingUseCase
	Admin    admin.AdminUseCase
}

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, svcs Services) error {
	httpServer := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: NewRouter(cfg, svcs),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpServer.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

// NewRouter wires all handlers onto a gin engine.
func NewRouter(cfg *config.Config, svcs Services) *gin.Engine {
	router := gin.Default()

	mw := api.NewAuthMiddleware(svcs.Auth, cfg.Session.CookieName)
	cookieMaxAge := cfg.Session.TTLMinutes * 60

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/about", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "flight booking service",
			"description": "browse flights, book them and manage records through the admin surface",
		})
	})

	api.NewFlightHandler(svcs.Flights).Register(router.Group("/flights"))
	api.NewAuthHandler(svcs.Auth, cfg.Session.CookieName, cookieMaxAge).Register(router.Group("/auth"), mw)
	api.NewBookingHandler(svcs.Bookings).Register(router.Group("", mw.RequireLogin()))
	api.NewAdminHandler(svcs.Admin).Register(router.Group("/admin", mw.RequireAdmin()))

	if cfg.Uploads.Dir != "" {
		router.Static("/uploads", cfg.Uploads.Dir)
	}
	if cfg.HTTP.SwaggerDir != "" {
		router.StaticFile("/swagger/swagger.json", filepath.Join(cfg.HTTP.SwaggerDir, "swagger.json"))
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/swagger.json"),
		)))
	}

	return router
}
