package metrics

import "github.com/kilianp07/creator/core/model"

// Sink records construction outcomes for observability purposes.
type Sink interface {
	RecordConstruction(c model.Construction) error
}

// DefaultsRecorder is implemented by sinks that track the size of the
// default-configuration table.
type DefaultsRecorder interface {
	RecordDefaultsSize(classes int) error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordConstruction(model.Construction) error { return nil }
func (NopSink) RecordDefaultsSize(int) error                { return nil }
