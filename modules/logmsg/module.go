// Package logmsg provides the 'log' handler: an operation that writes a
// message to the run's logger when evaluated.
package logmsg

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/depsflow/internal/ctxlog"
	"github.com/vk/depsflow/internal/graph"
	"github.com/vk/depsflow/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler("log", newLogWork)
}

func newLogWork(args map[string]cty.Value) (graph.WorkFunc, error) {
	msgVal, ok := args["message"]
	if !ok {
		return nil, fmt.Errorf("log handler requires a 'message' argument")
	}
	if msgVal.Type() != cty.String {
		return nil, fmt.Errorf("log handler 'message' must be a string, got %s", msgVal.Type().FriendlyName())
	}
	msg := msgVal.AsString()

	return func(ctx context.Context, ec *graph.EvalContext) {
		ctxlog.FromContext(ctx).Info(msg, "time", ec.Time, "mode", ec.Mode.String())
	}, nil
}
