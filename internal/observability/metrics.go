package observability

import (
	"context"
	"io"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

// Metrics is a small Prometheus text exposition registry. A nil *Metrics is valid and records nothing.
type Metrics struct {
	apiRequests *CounterVec
	apiLatency  *HistogramVec
	apiInflight *Gauge

	ledgerMutations *CounterVec
	cacheLookups    *CounterVec
	pdfRenders      *CounterVec
	pdfLatency      *HistogramVec

	dbStats *GaugeVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		apiRequests: NewCounterVec("foodgram_api_requests_total", "API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"foodgram_api_request_duration_seconds",
			"API request latency in seconds by method/route.",
			[]string{"method", "route"},
			[]float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		),
		apiInflight:     NewGauge("foodgram_api_inflight_requests", "In-flight API requests."),
		ledgerMutations: NewCounterVec("foodgram_ledger_mutations_total", "Favorite/cart/subscription mutations by kind/action/outcome.", []string{"kind", "action", "outcome"}),
		cacheLookups:    NewCounterVec("foodgram_catalog_cache_lookups_total", "Catalog cache lookups by result.", []string{"result"}),
		pdfRenders:      NewCounterVec("foodgram_pdf_renders_total", "Shopping list PDF renders by status.", []string{"status"}),
		pdfLatency:      NewHistogramVec("foodgram_pdf_render_duration_seconds", "Shopping list PDF render latency.", nil, []float64{0.25, 0.5, 1, 2, 5, 10, 20}),
		dbStats:         NewGaugeVec("foodgram_db_pool", "database/sql pool statistics.", []string{"stat"}),
	}
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, _ *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	for _, c := range []collector{
		m.apiRequests, m.apiLatency, m.apiInflight,
		m.ledgerMutations, m.cacheLookups, m.pdfRenders, m.pdfLatency,
		m.dbStats,
	} {
		if err := c.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	m.apiRequests.Inc(method, route, status)
	m.apiLatency.Observe(dur.Seconds(), method, route)
}

func (m *Metrics) APIInflightInc() {
	if m != nil {
		m.apiInflight.Inc()
	}
}

func (m *Metrics) APIInflightDec() {
	if m != nil {
		m.apiInflight.Dec()
	}
}

// IncLedger counts a favorite/shopping_cart/subscription add or remove. outcome is ok, conflict, not_found or error.
func (m *Metrics) IncLedger(kind, action, outcome string) {
	if m != nil {
		m.ledgerMutations.Inc(kind, action, outcome)
	}
}

func (m *Metrics) IncCacheLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheLookups.Inc("hit")
		return
	}
	m.cacheLookups.Inc("miss")
}

// CacheLookups reports the catalog cache lookup count for result ("hit" or "miss").
func (m *Metrics) CacheLookups(result string) float64 {
	if m == nil {
		return 0
	}
	return m.cacheLookups.Value(result)
}

func (m *Metrics) ObservePDFRender(status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.pdfRenders.Inc(status)
	m.pdfLatency.Observe(dur.Seconds())
}

// StartDBCollector samples connection pool stats until ctx is done.
func (m *Metrics) StartDBCollector(ctx context.Context, log *logger.Logger, db *gorm.DB, interval time.Duration) {
	if m == nil || db == nil {
		return
	}
	if interval <= 0 {
		interval = 10 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					if log != nil {
						log.Warn("metrics: db stats unavailable", "error", err)
					}
					continue
				}
				stats := sqlDB.Stats()
				m.dbStats.Set(float64(stats.OpenConnections), "open_connections")
				m.dbStats.Set(float64(stats.InUse), "in_use")
				m.dbStats.Set(float64(stats.Idle), "idle")
				m.dbStats.Set(float64(stats.WaitCount), "wait_count")
				m.dbStats.Set(stats.WaitDuration.Seconds(), "wait_duration_seconds")
			}
		}
	}()
}
