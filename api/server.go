package api

import (
	"fmt"
	"net/http"

	"github.com/angelmondragon/commerce-dashboard/pkg/config"
)

// NewServer wraps handler in an http.Server configured from cfg.
func NewServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}
}
