// Package sleep provides the 'sleep' handler: an operation that blocks for
// a fixed duration, useful for exercising the scheduler with work of a
// known cost.
package sleep

import (
	"context"
	"fmt"
	"time"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/depsflow/internal/graph"
	"github.com/vk/depsflow/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler("sleep", newSleepWork)
}

func newSleepWork(args map[string]cty.Value) (graph.WorkFunc, error) {
	msVal, ok := args["millis"]
	if !ok {
		return nil, fmt.Errorf("sleep handler requires a 'millis' argument")
	}
	if msVal.Type() != cty.Number {
		return nil, fmt.Errorf("sleep handler 'millis' must be a number, got %s", msVal.Type().FriendlyName())
	}
	ms, _ := msVal.AsBigFloat().Float64()
	if ms < 0 {
		return nil, fmt.Errorf("sleep handler 'millis' must not be negative")
	}
	d := time.Duration(ms * float64(time.Millisecond))

	return func(ctx context.Context, ec *graph.EvalContext) {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
		}
	}, nil
}
