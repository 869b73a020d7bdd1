package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/avelora/flightbook/api"
	"github.com/avelora/flightbook/config"
	"github.com/avelora/flightbook/internal/service/booking"
	"github.com/avelora/flightbook/internal/service/flights"
	"github.com/avelora/flightbook/internal/service/reference"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase, refSvc reference.ReferenceUseCase) error {
	httpSrv := newServer(cfg, flightSvc, bookingSvc, refSvc)

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newServer(cfg *config.Config, flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase, refSvc reference.ReferenceUseCase) *http.Server {
	api.RegisterValidations()

	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), api.CORS(), api.RateLimit(cfg.HTTP.RateLimit))

	root := engine.Group("/")
	api.NewPageHandler(refSvc).Register(root)
	api.NewFlightHandler(flightSvc, refSvc).Register(root)
	api.NewBookingHandler(bookingSvc, flightSvc).Register(root)

	if cfg.HTTP.SwaggerDir != "" {
		engine.StaticFS("/swagger", http.Dir(cfg.HTTP.SwaggerDir))
		engine.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/flightbook.swagger.json"),
		)))
	}

	return &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: engine,
	}
}
