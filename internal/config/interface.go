package config

import "context"

// Loader is the interface for a format-specific graph definition loader.
type Loader interface {
	// Load reads definitions from the given paths (files or directories)
	// and merges them into a single model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
