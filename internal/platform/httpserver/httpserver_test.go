package httpserver

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewAppliesConnectionDefaults(t *testing.T) {
	handler := http.NewServeMux()
	server := New(":8080", handler)

	assert.Equal(t, ":8080", server.Addr)
	assert.Equal(t, http.Handler(handler), server.Handler)
	assert.Equal(t, 5*time.Second, server.ReadHeaderTimeout)
	assert.Equal(t, 60*time.Second, server.IdleTimeout)
}
