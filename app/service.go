package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kilianp07/creator/app/plugins"
	"github.com/kilianp07/creator/config"
	"github.com/kilianp07/creator/core/creator"
	coremetrics "github.com/kilianp07/creator/core/metrics"
	"github.com/kilianp07/creator/core/mixin"
	"github.com/kilianp07/creator/core/model"
	"github.com/kilianp07/creator/infra/logger"
	"github.com/kilianp07/creator/infra/metrics"
	"github.com/kilianp07/creator/internal/eventbus"
)

// Service wires a Creator, its class registry and the mixin inspector from
// the configuration.
type Service struct {
	Creator   *creator.Creator
	Registry  *creator.Registry
	Inspector *mixin.Inspector

	objects config.ObjectsConfig
	bus     *eventbus.TypedBus[model.Construction]
	log     logger.Logger
	cancel  context.CancelFunc
	done    <-chan struct{}
}

// Option customizes New.
type Option func(*options)

type options struct {
	logOutput io.Writer
}

// WithLogOutput sets where service logs are written. Defaults to stderr.
func WithLogOutput(w io.Writer) Option {
	return func(o *options) { o.logOutput = w }
}

// New creates a Service from the configuration. The built-in classes are
// registered and the configured defaults loaded into the table.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	o := options{logOutput: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}
	logg, err := logger.NewWithConfig("service", cfg.Logging.Logger(), o.logOutput)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	reg := creator.NewRegistry()
	if err := plugins.Register(reg); err != nil {
		return nil, fmt.Errorf("builtin classes: %w", err)
	}

	sink, err := coremetrics.NewSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	defaults := creator.NewDefaults()
	defaults.Replace(cfg.Defaults.Table())
	if r, ok := sink.(coremetrics.DefaultsRecorder); ok {
		if err := r.RecordDefaultsSize(defaults.Len()); err != nil {
			logg.Warnf("record defaults size: %v", err)
		}
	}

	bus := eventbus.NewTyped[model.Construction]()
	ctx, cancel := context.WithCancel(context.Background())
	done := metrics.StartCollector(ctx, bus, sink)

	svc := &Service{
		Creator: creator.New(reg,
			creator.WithDefaults(defaults),
			creator.WithLogger(logg),
			creator.WithEvents(bus),
		),
		Registry:  reg,
		Inspector: mixin.NewInspector(reg, mixin.WithLogger(logg), mixin.WithCanonical(creator.Canonical)),
		objects:   cfg.Objects,
		bus:       bus,
		log:       logg,
		cancel:    cancel,
		done:      done,
	}
	logg.Infof("service ready: %d classes, %d default entries", len(reg.Classes()), defaults.Len())
	return svc, nil
}

// Build constructs the object configured under name. A name that is not a
// configured object is used as a class identifier.
func (s *Service) Build(name string, args ...any) (any, error) {
	var desc creator.Description = creator.Identifier(name)
	if _, ok := s.objects[name]; ok {
		d, err := s.objects.Description(name)
		if err != nil {
			return nil, err
		}
		desc = d
	}
	return s.Creator.Construct(desc, args...)
}

// Warm builds every configured object once, so that singletons exist and
// construction failures surface at startup. All failures are returned.
func (s *Service) Warm() error {
	var errs []error
	for _, name := range s.objects.Names() {
		if _, err := s.Build(name); err != nil {
			s.log.Errorf("warm %s: %v", name, err)
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Inspect returns every mixin used by class or its ancestors.
func (s *Service) Inspect(class string) (mixin.Set, error) {
	return s.Inspector.CollectUsages(class)
}

// Uses reports whether class or one of its ancestors uses mixinName.
func (s *Service) Uses(class, mixinName string) (bool, error) {
	return s.Inspector.UsesMixin(class, mixinName)
}

// Classes lists the registered class identifiers.
func (s *Service) Classes() []string { return s.Registry.Classes() }

// Objects lists the configured object names.
func (s *Service) Objects() []string { return s.objects.Names() }

// Logger returns the service logger, built from the logging section.
func (s *Service) Logger() logger.Logger { return s.log }

// Defaults returns the default-configuration table.
func (s *Service) Defaults() *creator.Defaults { return s.Creator.Defaults() }

// Close stops the metrics collector and closes the construction bus.
func (s *Service) Close() error {
	s.cancel()
	<-s.done
	s.bus.Close()
	return nil
}
