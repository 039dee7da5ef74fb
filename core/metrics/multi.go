package metrics

import "github.com/kilianp07/creator/core/model"

// MultiSink fans construction records out to multiple sinks.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordConstruction forwards the record to all sinks, returning the first error encountered.
func (m *MultiSink) RecordConstruction(c model.Construction) error {
	for _, s := range m.Sinks {
		if err := s.RecordConstruction(c); err != nil {
			return err
		}
	}
	return nil
}

// RecordDefaultsSize forwards the table size to sinks that support it.
func (m *MultiSink) RecordDefaultsSize(classes int) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(DefaultsRecorder); ok {
			if err := rec.RecordDefaultsSize(classes); err != nil {
				return err
			}
		}
	}
	return nil
}
