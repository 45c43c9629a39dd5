// Package webapi exposes the converter over HTTP.
package webapi

import (
	"context"
	"net/http"
	"time"

	"github.com/apex/log"
	"github.com/ivlev/alive2json/internal/store"
	"github.com/labstack/echo/v4"
)

func NewServer(stor store.ConversionStor, skipUnresolved bool) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	c := NewConvertController(stor, skipUnresolved)
	api := e.Group("/api")
	api.POST("/convert", c.Convert)
	api.GET("/health", c.Health)

	return e
}

// Serve runs e on addr until ctx is done, then shuts it down gracefully.
func Serve(ctx context.Context, e *echo.Echo, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		log.Infof("[*] Listening on %s", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
