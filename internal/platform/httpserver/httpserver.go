package httpserver

import (
	"net/http"
	"time"

	"safeher/internal/platform/config"
)

// writeGrace lets a handler whose context expired still write its error
// response before the server drops the connection.
const writeGrace = 5 * time.Second

// New builds the HTTP server. The write timeout follows the request timeout
// so handlers are cancelled by context first.
func New(cfg config.Server, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + writeGrace,
		IdleTimeout:       60 * time.Second,
	}
}
