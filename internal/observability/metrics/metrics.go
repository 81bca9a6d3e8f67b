package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success                  Outcome       = "success"
	Error                    Outcome       = "error"
	MetricRequestTimeout     time.Duration = 5 * time.Second
	MetricRequestIdleTimeout time.Duration = 10 * time.Second
)

func (O Outcome) String() string {
	return string(O)
}

func outcome(failure bool) Outcome {
	if failure {
		return Error
	}
	return Success
}

var defaultHistogramBucketsSeconds = []float64{0.1, 0.5, 1, 2.5, 5, 10, 30}

// Collectors are created eagerly so recording is safe before Init (tests, cli commands);
// Init only registers them and exposes the /metrics endpoint.
var (
	once          sync.Once
	metricsRouter *chi.Mux

	// client requests are the ones sending to other services
	clientRequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "client_request_duration_seconds",
			Help:    "Histogram of outgoing client request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"baseurl", "method", "path", "status"},
	)

	ledgerPagesCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ledger_pages_fetched_total",
			Help: "The total number of transaction pages fetched from the ledger",
		},
	)

	ledgerRecordsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ledger_records_fetched_total",
			Help: "The total number of transaction records fetched from the ledger",
		},
	)

	aggregationDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fee_aggregation_duration_seconds",
			Help:    "Histogram of full fee aggregation runs in seconds.",
			Buckets: []float64{0.5, 1, 5, 10, 30, 60, 120, 300},
		},
		[]string{"trigger", "status"},
	)

	supersededRunsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fee_aggregation_superseded_total",
			Help: "Number of aggregation runs whose result was discarded because a newer run started",
		},
	)

	cacheLookupCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fee_cache_lookups_total",
			Help: "Fee cache lookups split by result",
		},
		[]string{"result"},
	)

	pollerDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "poller_duration_seconds",
			Help:    "Histogram of poller durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"type", "status"},
	)

	usdPriceGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "native_token_usd_price",
			Help: "Last value of the native token usd price retrieved",
		},
	)

	dbLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "db_latency_seconds",
			Help: "DB latency in seconds splitted by method and execution status",
		},
		[]string{"method", "status"},
	)
)

// Init initializes the metrics package.
func Init(metricsPort int) {
	once.Do(func() {
		registerMetrics()
		initMetricsRouter(metricsPort)
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(metricsPort int) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	metricsAddr := fmt.Sprintf(":%d", metricsPort)
	server := &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsRouter,
		ReadTimeout:  MetricRequestTimeout,
		WriteTimeout: MetricRequestTimeout,
		IdleTimeout:  MetricRequestIdleTimeout,
	}

	go func() {
		log.Info().Msgf("Starting metrics server on %s", metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msgf("Error starting metrics server on %s", metricsAddr)
		}
	}()
}

func registerMetrics() {
	prometheus.MustRegister(
		clientRequestDurationHistogram,
		ledgerPagesCounter,
		ledgerRecordsCounter,
		aggregationDurationHistogram,
		supersededRunsCounter,
		cacheLookupCounter,
		pollerDurationHistogram,
		usdPriceGauge,
		dbLatency,
	)
}

func RecordLedgerPageFetched(records int) {
	ledgerPagesCounter.Inc()
	ledgerRecordsCounter.Add(float64(records))
}

func RecordAggregationDuration(d time.Duration, trigger string, failure bool) {
	aggregationDurationHistogram.WithLabelValues(trigger, outcome(failure).String()).Observe(d.Seconds())
}

func IncSupersededRuns() {
	supersededRunsCounter.Inc()
}

func RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookupCounter.WithLabelValues(result).Inc()
}

func RecordUSDPrice(price float64) {
	usdPriceGauge.Set(price)
}

func RecordDbLatency(d time.Duration, method string, failure bool) {
	dbLatency.WithLabelValues(method, outcome(failure).String()).Observe(d.Seconds())
}

// StartClientRequestDurationTimer starts a timer to measure outgoing client request duration.
func StartClientRequestDurationTimer(baseUrl, method, path string) func(statusCode int) {
	startTime := time.Now()
	return func(statusCode int) {
		duration := time.Since(startTime).Seconds()
		clientRequestDurationHistogram.WithLabelValues(
			baseUrl,
			method,
			path,
			fmt.Sprintf("%d", statusCode),
		).Observe(duration)
	}
}
