package app

import (
	"context"
	"fmt"

	"github.com/vk/depsflow/internal/builder"
	"github.com/vk/depsflow/internal/config"
	"github.com/vk/depsflow/internal/ctxlog"
	"github.com/vk/depsflow/internal/debug"
	"github.com/vk/depsflow/internal/eval"
	"github.com/vk/depsflow/internal/graph"
)

// Run executes the main application logic: build the graph, evaluate it,
// then either exit or keep watching the definition files for changes.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(a.config.HealthcheckPort)
	}

	if err := a.evaluateModel(ctx, a.model); err != nil {
		return err
	}

	if a.config.Watch {
		return a.watch(ctx)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// evaluateModel builds a graph from the model and runs the configured
// evaluation passes over it: one full pass, then Frames frame changes.
func (a *App) evaluateModel(ctx context.Context, model *config.Model) error {
	a.logger.Debug("Building dependency graph from config model...")
	g, err := builder.Build(ctx, model, a.registry)
	if err != nil {
		return fmt.Errorf("failed to build dependency graph: %w", err)
	}
	a.logger.Debug("Dependency graph built.", "operation_count", len(g.Operations()))

	if len(g.Operations()) == 0 {
		a.logger.Warn("No operations found in graph, evaluation not required.")
		return nil
	}

	mode, err := parseMode(a.config.EvalMode)
	if err != nil {
		return err
	}

	evaluator := eval.New(a.config.WorkerCount, debug.NewLogSink(ctx))
	evaluator.SingleThreaded = a.config.SingleThreaded
	ec := graph.NewEvalContext(mode)

	// Initial pass: everything is stale.
	for _, n := range g.Operations() {
		g.TagUpdate(n)
	}
	a.logger.Info("🚀 Starting evaluation pass...", "mode", mode.String())
	evaluator.Evaluate(ctx, ec, g, g.Layers())

	for frame := 1; frame <= a.config.Frames; frame++ {
		a.logger.Info("Evaluating frame change.", "frame", frame)
		evaluator.EvaluateOnFrameChange(ctx, ec, g, float64(frame), g.Layers())
	}

	a.logger.Info("🏁 Evaluation finished.")
	return nil
}
