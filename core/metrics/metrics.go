// Package metrics defines the sink contract used to record board activity.
// Implementations live under infra/metrics.
package metrics

import "time"

// SubmissionEvent records one schedule submission attempt against the
// persistence collaborator.
type SubmissionEvent struct {
	CompanyID       int64
	UF              string
	ScheduleDate    time.Time
	Accepted        bool
	TotalVehicles   int
	TotalCapacityKg int
	Time            time.Time
}

// ValidationEvent records one draft validation failure by rule family.
type ValidationEvent struct {
	Kind string
	Time time.Time
}

// BoardQueryEvent records one dashboard aggregation pass.
type BoardQueryEvent struct {
	Records  int
	Duration time.Duration
	Time     time.Time
}

// Sink records board events for observability purposes.
type Sink interface {
	RecordSubmission(ev SubmissionEvent) error
	RecordValidationFailure(ev ValidationEvent) error
}

// BoardQueryRecorder is implemented by sinks that track dashboard reads.
type BoardQueryRecorder interface {
	RecordBoardQuery(ev BoardQueryEvent) error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordSubmission(SubmissionEvent) error        { return nil }
func (NopSink) RecordValidationFailure(ValidationEvent) error { return nil }
