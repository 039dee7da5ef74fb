package metrics

import (
	"context"

	coremetrics "github.com/kilianp07/creator/core/metrics"
	"github.com/kilianp07/creator/core/model"
)

// Subscriber is the subscribe side of a typed construction bus.
type Subscriber interface {
	Subscribe() <-chan model.Construction
	Unsubscribe(<-chan model.Construction)
}

// StartCollector subscribes to the bus and records every construction in sink.
// It stops when the context is canceled or the bus is closed; the returned
// channel is closed once the collector goroutine has exited.
func StartCollector(ctx context.Context, bus Subscriber, sink coremetrics.Sink) <-chan struct{} {
	done := make(chan struct{})
	if bus == nil || sink == nil {
		close(done)
		return done
	}
	sub := bus.Subscribe()
	go func() {
		defer close(done)
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case c, ok := <-sub:
				if !ok {
					return
				}
				_ = sink.RecordConstruction(c)
			}
		}
	}()
	return done
}
