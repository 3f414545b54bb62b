package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	coremetrics "github.com/transpeq/fleetboard/core/metrics"
)

// PromSink records board events in Prometheus metrics.
type PromSink struct {
	submissions *prometheus.CounterVec
	failures    *prometheus.CounterVec
	queries     prometheus.Histogram
	capacity    prometheus.Gauge
}

// NewPromSink registers board metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using the configured
// port.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer. Already
// registered collectors are reused.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_submissions_total",
		Help: "Total number of schedule submission attempts",
	}, []string{"company_id", "uf", "accepted"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_validation_failures_total",
		Help: "Total number of draft validation failures by rule family",
	}, []string{"kind"})
	queries := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "board_query_seconds",
		Help:    "Time spent aggregating dashboard metrics",
		Buckets: prometheus.DefBuckets,
	})
	capacity := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "schedule_last_capacity_kg",
		Help: "Capacity in kilograms of the last accepted submission",
	})

	if err := reg.Register(submissions); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			submissions = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(failures); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			failures = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(queries); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			queries = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(capacity); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			capacity = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{submissions: submissions, failures: failures, queries: queries, capacity: capacity}, nil
}

// RecordSubmission increments the submission counter and updates the last
// capacity gauge on accepted submissions.
func (s *PromSink) RecordSubmission(ev coremetrics.SubmissionEvent) error {
	s.submissions.WithLabelValues(strconv.FormatInt(ev.CompanyID, 10), ev.UF, strconv.FormatBool(ev.Accepted)).Inc()
	if ev.Accepted {
		s.capacity.Set(float64(ev.TotalCapacityKg))
	}
	return nil
}

// RecordValidationFailure increments the failure counter for the rule family.
func (s *PromSink) RecordValidationFailure(ev coremetrics.ValidationEvent) error {
	s.failures.WithLabelValues(ev.Kind).Inc()
	return nil
}

// RecordBoardQuery observes the aggregation duration.
func (s *PromSink) RecordBoardQuery(ev coremetrics.BoardQueryEvent) error {
	s.queries.Observe(ev.Duration.Seconds())
	return nil
}

// StartPromServer starts an HTTP server exposing Prometheus metrics on the
// given address. The server runs until the provided context is canceled. A
// dedicated ServeMux is used to avoid interfering with other handlers.
func StartPromServer(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
