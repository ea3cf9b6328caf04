// Package httpserver builds the http.Server fronting the contract gateway.
// Per-request deadlines live in the handler middleware chain; the server only
// bounds header reads and idle keep-alives so a slow client cannot pin a
// connection before routing.
package httpserver

import (
	"net/http"
	"time"
)

const (
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 60 * time.Second
)

// New returns a server with the gateway's connection-level defaults applied.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
	}
}
