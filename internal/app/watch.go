package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watch blocks, re-loading and re-evaluating the graph whenever a
// definition file under the configured path changes. It returns when the
// context is cancelled.
func (a *App) watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory rather than individual files: editors replace
	// files on save, which would otherwise drop the watch.
	watchPath := a.config.GraphPath
	if info, err := os.Stat(watchPath); err == nil && !info.IsDir() {
		watchPath = filepath.Dir(watchPath)
	}
	if err := watcher.Add(watchPath); err != nil {
		return fmt.Errorf("watching %s: %w", watchPath, err)
	}
	a.logger.Info("👀 Watching for definition changes.", "path", watchPath)

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("Watch mode stopping.", "reason", ctx.Err())
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			a.logger.Info("Definition change detected, re-evaluating.", "file", event.Name)

			model, err := a.loader.Load(ctx, a.config.GraphPath)
			if err != nil {
				a.logger.Error("Reload failed, keeping previous state.", "error", err)
				continue
			}
			if err := a.registry.Validate(ctx, model); err != nil {
				a.logger.Error("Reloaded definition is invalid, keeping previous state.", "error", err)
				continue
			}
			a.model = model
			if err := a.evaluateModel(ctx, model); err != nil {
				a.logger.Error("Re-evaluation failed.", "error", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Error("File watcher error.", "error", err)
		}
	}
}
