package metrics

import coremetrics "github.com/transpeq/fleetboard/core/metrics"

// MultiSink fans board events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordSubmission forwards the event to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordSubmission(ev coremetrics.SubmissionEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordSubmission(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordValidationFailure forwards the event to all sinks.
func (m *MultiSink) RecordValidationFailure(ev coremetrics.ValidationEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordValidationFailure(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordBoardQuery forwards the event to sinks that track dashboard reads.
func (m *MultiSink) RecordBoardQuery(ev coremetrics.BoardQueryEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.BoardQueryRecorder); ok {
			if err := rec.RecordBoardQuery(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
