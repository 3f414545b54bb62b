// Package app wires the board service together from configuration: the
// collaborator client, the catalog snapshot, metrics sinks, the submission
// journal and the HTTP read side.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/transpeq/fleetboard/api/board"
	"github.com/transpeq/fleetboard/auth"
	"github.com/transpeq/fleetboard/config"
	"github.com/transpeq/fleetboard/connectors/clients/scheduleapi"
	"github.com/transpeq/fleetboard/core/catalog"
	"github.com/transpeq/fleetboard/core/draft"
	"github.com/transpeq/fleetboard/core/journal"
	coremetrics "github.com/transpeq/fleetboard/core/metrics"
	"github.com/transpeq/fleetboard/core/model"
	"github.com/transpeq/fleetboard/core/validate"
	"github.com/transpeq/fleetboard/infra/logger"
	"github.com/transpeq/fleetboard/infra/metrics"
	"github.com/transpeq/fleetboard/internal/eventbus"
)

// ValidationFailedError carries the collected draft validation failures.
type ValidationFailedError struct {
	Errors []validate.Error
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("draft failed validation with %d error(s)", len(e.Errors))
}

// Service orchestrates the schedule board.
type Service struct {
	Client  *scheduleapi.Client
	Journal journal.Store

	cat  *catalog.Catalog
	bus  *eventbus.Bus[coremetrics.SubmissionEvent]
	sink coremetrics.Sink
	log  logger.Logger
	cfg  *config.Config
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var authorizer scheduleapi.Authorizer
	if cfg.Auth.Enabled {
		authorizer = auth.NewClientCred(cfg.Auth.Client)
	}
	client := scheduleapi.New(cfg.Collaborator, authorizer)

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink()
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.Sink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	var store journal.Store
	var err error
	switch cfg.Journal.Backend {
	case "sqlite":
		store, err = journal.NewSQLiteStore(cfg.Journal.Path)
	default:
		store, err = journal.NewJSONLStore(cfg.Journal.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("journal store: %w", err)
	}

	return &Service{
		Client:  client,
		Journal: store,
		bus:     eventbus.New[coremetrics.SubmissionEvent](),
		sink:    sink,
		log:     logg,
		cfg:     cfg,
	}, nil
}

// Catalog returns the loaded snapshot, or nil before Run.
func (s *Service) Catalog() *catalog.Catalog { return s.cat }

// NewDraft opens a fresh draft against the loaded catalog.
func (s *Service) NewDraft() (*draft.Draft, error) {
	if s.cat == nil {
		return nil, catalog.ErrUnavailable
	}
	return draft.New(s.cat), nil
}

// Submit validates the draft and hands it to the collaborator. Validation
// failures are returned as a ValidationFailedError without touching the
// draft; a collaborator rejection surfaces as scheduleapi.RejectedError
// with the draft preserved for retry.
func (s *Service) Submit(ctx context.Context, d *draft.Draft) (model.ScheduleRecord, error) {
	if errs := validate.Validate(&d.ScheduleDraft, d.Catalog()); len(errs) > 0 {
		for _, e := range errs {
			if serr := s.sink.RecordValidationFailure(coremetrics.ValidationEvent{
				Kind: e.Kind.String(),
				Time: time.Now(),
			}); serr != nil {
				s.log.Warnf("record validation failure: %v", serr)
			}
		}
		return model.ScheduleRecord{}, &ValidationFailedError{Errors: errs}
	}

	payload := draft.BuildPayload(d)
	rec, err := s.Client.CreateSchedule(ctx, payload)
	accepted := err == nil
	s.bus.Publish(coremetrics.SubmissionEvent{
		CompanyID:       d.CompanyID,
		UF:              payload.UF,
		ScheduleDate:    d.ScheduleDate,
		Accepted:        accepted,
		TotalVehicles:   rec.TotalVehicles,
		TotalCapacityKg: rec.TotalCapacityKg,
		Time:            time.Now(),
	})
	if err != nil {
		var rejected *scheduleapi.RejectedError
		if errors.As(err, &rejected) {
			s.log.Warnf("submission rejected: %s", rejected.Detail)
		}
		return model.ScheduleRecord{}, err
	}

	if jerr := s.Journal.Append(ctx, journal.Entry{
		Timestamp:       time.Now(),
		ScheduleID:      rec.ID,
		CompanyID:       rec.CompanyID,
		UF:              rec.UF,
		ScheduleDate:    rec.ScheduleDate.Format("2006-01-02"),
		TotalVehicles:   rec.TotalVehicles,
		TotalCapacityKg: rec.TotalCapacityKg,
	}); jerr != nil {
		// The collaborator accepted the schedule; a journal failure is
		// logged, not surfaced.
		s.log.Errorf("journal append: %v", jerr)
	}
	return rec, nil
}

// Run loads the catalog, starts the metrics recorder and serves the board
// API until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	cat, err := s.Client.Load(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	s.cat = cat
	s.log.Infof("catalog loaded: %d companies, %d profiles, %d categories",
		len(cat.Companies), len(cat.Profiles), len(cat.Categories))

	go s.recordSubmissions(ctx)

	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	mux := http.NewServeMux()
	mux.Handle("/api/board/metrics", board.NewMetricsHandler(s.Client, cat, s.sink, s.cfg.API.Token))
	mux.Handle("/api/board/journal", board.NewJournalHandler(s.Journal, s.cfg.API.Token))
	srv := &http.Server{Addr: s.cfg.API.ListenAddr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	s.log.Infof("board listening on %s", s.cfg.API.ListenAddr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Service) recordSubmissions(ctx context.Context) {
	sub := s.bus.Subscribe()
	defer s.bus.Unsubscribe(sub)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub:
			if !ok {
				return
			}
			if err := s.sink.RecordSubmission(ev); err != nil {
				s.log.Warnf("record submission: %v", err)
			}
		}
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	return s.Journal.Close()
}
