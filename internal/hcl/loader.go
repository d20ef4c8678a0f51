package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/depsflow/internal/config"
	"github.com/vk/depsflow/internal/ctxlog"
	"github.com/vk/depsflow/internal/fsutil"
	"github.com/vk/depsflow/internal/schema"
)

// Loader is the HCL-specific implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new HCL graph definition loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file under the given paths and merges all blocks
// into one model. Block kinds may be spread across files in any way.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	model := &config.Model{}

	var files []string
	for _, path := range paths {
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("discovering definition files in %s: %w", path, err)
		}
		files = append(files, found...)
	}
	logger.Debug("Discovered definition files.", "count", len(files))

	parser := hclparse.NewParser()
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("parsing %s: %w", file, diags)
		}

		var root schema.Root
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("decoding %s: %w", file, diags)
		}

		for _, e := range root.Entities {
			model.Entities = append(model.Entities, translateEntity(e))
		}
		for _, op := range root.Operations {
			translated, err := translateOperation(op)
			if err != nil {
				return nil, fmt.Errorf("in %s: %w", file, err)
			}
			model.Operations = append(model.Operations, translated)
		}
		for _, r := range root.Relations {
			model.Relations = append(model.Relations, translateRelation(r))
		}
	}

	logger.Debug("HCL model assembled.",
		"entities", len(model.Entities),
		"operations", len(model.Operations),
		"relations", len(model.Relations))
	return model, nil
}
