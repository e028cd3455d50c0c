// Package client provides the Resource Client adapters the engine mutates
// through: a generic REST adapter over the hospital backend and an
// in-memory adapter for screens without a backend.
package client

import (
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/hospitalms/admin-console/pkg/logger"
	"github.com/hospitalms/admin-console/pkg/metrics"
)

// BackendConfig configures the shared backend transport.
type BackendConfig struct {
	BaseURL string
	// Timeout bounds every backend round-trip. A write that never
	// resolves would otherwise pin the controller in a submitting state.
	Timeout time.Duration
	// CacheTTL bounds how long a list() response may be served from the
	// local cache. Mutations invalidate eagerly, so the post-write
	// refresh always hits the backend.
	CacheTTL time.Duration
	// RPS and Burst throttle outbound calls.
	RPS   float64
	Burst int
}

// Backend is the transport shared by every REST resource adapter: one HTTP
// client, rate limiter and list cache for the whole backend.
type Backend struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	cache   *cache.Cache
	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewBackend builds the shared transport. Metrics may be nil.
func NewBackend(cfg BackendConfig, log *logger.Logger, m *metrics.Metrics) *Backend {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 30 * time.Second
	}
	if cfg.RPS <= 0 {
		cfg.RPS = 20
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 10
	}
	if log == nil {
		log = logger.NewLogger(nil)
	}

	return &Backend{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst),
		cache:   cache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		metrics: m,
		logger:  log,
	}
}
