package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/bindery/internal/bundle"
	"github.com/vk/bindery/internal/ctxlog"
	"github.com/vk/bindery/internal/fsutil"
	"github.com/vk/bindery/internal/schema"
)

// Loader implements bundle.Loader for HCL definition files.
type Loader struct{}

// NewLoader creates a new HCL bundle loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load walks each path for .hcl files and translates every bundle block
// found into a bundle definition. Files are visited in deterministic
// (sorted) order, so declarations later on disk shadow earlier ones when
// names collide.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]*bundle.Definition, error) {
	logger := ctxlog.FromContext(ctx)
	parser := hclparse.NewParser()

	var defs []*bundle.Definition
	for _, path := range paths {
		filePaths, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			logger.Error("Failed to walk bundle definition path", "path", path, "error", err)
			return nil, err
		}
		if len(filePaths) == 0 {
			logger.Warn("No .hcl bundle files found in path", "path", path)
			continue
		}
		logger.Debug("Found HCL files to load", "files", filePaths)

		for _, filePath := range filePaths {
			hclFile, diags := parser.ParseHCLFile(filePath)
			if diags.HasErrors() {
				return nil, fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
			}

			var file schema.File
			if diags := gohcl.DecodeBody(hclFile.Body, nil, &file); diags.HasErrors() {
				return nil, fmt.Errorf("failed to decode bundle file %s: %w", filePath, diags)
			}

			for _, sb := range file.Bundles {
				def, err := l.translateBundle(ctx, sb)
				if err != nil {
					return nil, fmt.Errorf("bundle %q in %s: %w", sb.Name, filePath, err)
				}
				defs = append(defs, def)
			}
			logger.Debug("Loaded bundle definitions from HCL file", "file", filePath, "bundles", len(file.Bundles))
		}
	}

	logger.Info("Bundle definitions loaded.", "count", len(defs))
	return defs, nil
}
