// Package metrics defines the sink interface used to observe object
// construction. Every call to the creator yields one model.Construction
// record; sinks such as the Prometheus sink in infra/metrics turn those
// records into counters and histograms. Sinks are built from configuration
// through a factory registry, and NewSink returns a MultiSink automatically
// when several sinks are configured.
package metrics
