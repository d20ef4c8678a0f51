package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/depsflow/internal/config"
	"github.com/vk/depsflow/internal/ctxlog"
)

// Validate checks that every handler referenced by the model is either the
// reserved noop or actually registered. A mismatch between a definition and
// the compiled-in handlers is a startup error, not something to discover
// mid-pass.
func (r *Registry) Validate(ctx context.Context, model *config.Model) error {
	logger := ctxlog.FromContext(ctx)
	var errs []string

	for _, op := range model.Operations {
		if op.Handler == "" || op.Handler == NoopHandler {
			continue
		}
		if _, ok := r.factories[op.Handler]; !ok {
			errs = append(errs, fmt.Sprintf("operation %q references unknown handler %q", op.Name, op.Handler))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	logger.Debug("Registry validation passed.", "handlers", len(r.factories))
	return nil
}
