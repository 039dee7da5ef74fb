// Package plugins registers the module's own components as constructible
// classes.
package plugins

import (
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/creator/core/creator"
	"github.com/kilianp07/creator/core/factory"
	coremetrics "github.com/kilianp07/creator/core/metrics"
	"github.com/kilianp07/creator/core/model"
	"github.com/kilianp07/creator/infra/logger"
	inframetrics "github.com/kilianp07/creator/infra/metrics"
	"github.com/kilianp07/creator/internal/eventbus"
)

// Built-in class and mixin identifiers.
const (
	ClassLogger     = `logger\Zerolog`
	ClassSink       = `metrics\Sink`
	ClassNopSink    = `metrics\Nop`
	ClassPromSink   = `metrics\Prometheus`
	ClassBus        = `eventbus\Bus`
	MixinLeveled    = `mixin\Leveled`
	MixinRecorder   = `mixin\Recorder`
	MixinResettable = `mixin\Resettable`
)

// Register adds the built-in mixins and classes to reg.
func Register(reg *creator.Registry) error {
	for _, m := range []creator.Mixin{
		{Name: MixinLeveled},
		{Name: MixinResettable},
		{Name: MixinRecorder, Uses: []string{MixinResettable}},
	} {
		if err := reg.RegisterMixin(m); err != nil {
			return err
		}
	}
	for _, c := range []creator.Class{
		{Name: ClassLogger, Mixins: []string{MixinLeveled}, New: newLogger},
		{Name: ClassSink, Mixins: []string{MixinRecorder}},
		{Name: ClassNopSink, Parent: ClassSink, New: newNopSink},
		{Name: ClassPromSink, Parent: ClassSink, New: newPromSink},
		{Name: ClassBus, New: newBus, Instance: creator.Singleton(newBus)},
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

type loggerProps struct {
	Component string `json:"component"`
	Level     string `json:"level"`
	Format    string `json:"format"`
}

// newLogger accepts property bags with component, level and format.
func newLogger(args ...any) (any, error) {
	p := loggerProps{Component: "creator"}
	if err := decodeBags(args, &p); err != nil {
		return nil, err
	}
	return logger.NewWithConfig(p.Component, logger.Config{Level: p.Level, Format: p.Format}, os.Stdout)
}

func newNopSink(args ...any) (any, error) {
	if err := decodeBags(args, &struct{}{}); err != nil {
		return nil, err
	}
	return coremetrics.NopSink{}, nil
}

// newPromSink accepts an optional prometheus.Registerer positional argument
// and property bags with a namespace.
func newPromSink(args ...any) (any, error) {
	var (
		p struct {
			Namespace string `json:"namespace"`
		}
		reg  prometheus.Registerer = prometheus.DefaultRegisterer
		bags []any
	)
	for _, a := range args {
		if r, ok := a.(prometheus.Registerer); ok {
			reg = r
			continue
		}
		bags = append(bags, a)
	}
	if err := decodeBags(bags, &p); err != nil {
		return nil, err
	}
	return inframetrics.NewPromSinkWithRegistry(p.Namespace, reg)
}

// newBus accepts property bags with a per-subscriber buffer size.
func newBus(args ...any) (any, error) {
	p := struct {
		Buffer int `json:"buffer"`
	}{Buffer: eventbus.DefaultBuffer}
	if err := decodeBags(args, &p); err != nil {
		return nil, err
	}
	return eventbus.NewTypedBuffered[model.Construction](p.Buffer), nil
}

func decodeBags(args []any, out any) error {
	for i := range args {
		bag, err := creator.Arg[map[string]any](args, i)
		if err != nil {
			return err
		}
		if err := factory.Decode(bag, out); err != nil {
			return err
		}
	}
	return nil
}
