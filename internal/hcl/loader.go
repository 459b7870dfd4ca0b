package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/pulsartime/internal/config"
	"github.com/vk/pulsartime/internal/ctxlog"
	"github.com/vk/pulsartime/internal/fsutil"
	"github.com/vk/pulsartime/internal/hclutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new HCL model loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the model file, or every .hcl file under a directory, and
// translates the single model block into a config.Document.
func (l *Loader) Load(ctx context.Context, path string) (*config.Document, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	files, err := l.findFiles(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	var blocks hcl.Blocks
	for _, file := range files {
		f, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		content, diags := f.Body.Content(fileSchema)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}
		blocks = append(blocks, content.Blocks...)
	}

	block, diags := hclutil.FindUniqueBlock(blocks, "model")
	if diags.HasErrors() {
		return nil, diags
	}
	if block == nil {
		diags := hcl.Diagnostics{hclutil.MissingBlock("model", hcl.Range{Filename: path})}
		return nil, fmt.Errorf("%w: no model block in %s: %w", config.ErrInvalidDocument, path, diags)
	}

	var body modelBody
	if diags := gohcl.DecodeBody(block.Body, nil, &body); diags.HasErrors() {
		return nil, diags
	}

	doc, diags := translate(block.Labels[0], &body)
	if diags.HasErrors() {
		return nil, diags
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	logger.Debug("HCL loading complete.", "model", doc.Name, "components", len(doc.Components))
	return doc, nil
}

// findFiles returns path itself for a file, or every .hcl file below it for
// a directory.
func (l *Loader) findFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing path %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no .hcl files in %s", config.ErrInvalidDocument, path)
	}
	return files, nil
}
