package folio

import (
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsNamespace prefixes every metric the app exports.
const MetricsNamespace = "folio"

// Metrics holds the app's Prometheus collectors. Each App gets its own
// registry so several apps can live in one process (tests do this).
type Metrics struct {
	Registry *prometheus.Registry

	ThemeToggles   *prometheus.CounterVec
	ToggleLimited  prometheus.Counter
	ContentReloads *prometheus.CounterVec
}

// NewMetrics creates and registers the app metrics.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		ThemeToggles: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Name:      "theme_toggles_total",
				Help:      "Theme toggles by resulting theme",
			},
			[]string{"theme"},
		),
		ToggleLimited: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Name:      "theme_toggles_limited_total",
				Help:      "Theme toggles rejected by the rate limiter",
			},
		),
		ContentReloads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Name:      "content_reloads_total",
				Help:      "Content reloads by outcome",
			},
			[]string{"result"},
		),
	}
}

func (m *Metrics) middleware() echo.MiddlewareFunc {
	return echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  MetricsNamespace,
		Registerer: m.Registry,
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return path == "/metrics" || path == "/healthz" || strings.HasPrefix(path, "/public/")
		},
	})
}

func (m *Metrics) handler() echo.HandlerFunc {
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: m.Registry})
}
