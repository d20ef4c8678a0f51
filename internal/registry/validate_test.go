package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/depsflow/internal/config"
	"github.com/vk/depsflow/internal/graph"
)

func TestValidate(t *testing.T) {
	r := New()
	r.RegisterHandler("log", func(args map[string]cty.Value) (graph.WorkFunc, error) {
		return func(ctx context.Context, ec *graph.EvalContext) {}, nil
	})

	t.Run("passes with registered, noop and empty handlers", func(t *testing.T) {
		model := &config.Model{
			Operations: []*config.Operation{
				{Name: "a", Handler: "log"},
				{Name: "b", Handler: NoopHandler},
				{Name: "c"},
			},
		}
		require.NoError(t, r.Validate(context.Background(), model))
	})

	t.Run("reports every unknown handler", func(t *testing.T) {
		model := &config.Model{
			Operations: []*config.Operation{
				{Name: "a", Handler: "ghost"},
				{Name: "b", Handler: "phantom"},
			},
		}
		err := r.Validate(context.Background(), model)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"ghost"`)
		assert.Contains(t, err.Error(), `"phantom"`)
	})
}
