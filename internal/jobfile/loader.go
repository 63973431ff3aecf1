package jobfile

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/karelplanken/pourbaix/internal/config"
	"github.com/karelplanken/pourbaix/internal/ctxlog"
	"github.com/karelplanken/pourbaix/internal/fsutil"
)

// Loader reads HCL job files into the format-agnostic config model. It
// implements config.Loader.
type Loader struct{}

// NewLoader returns an HCL job file loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the job file at path, or every .hcl file under it when path is
// a directory, and returns the validated model.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading job from path", "path", path)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job path %s: %w", path, err)
	}

	files := []string{path}
	if info.IsDir() {
		files, err = fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to find job files in %s: %w", path, err)
		}
		if len(files) == 0 {
			logger.Warn("No .hcl job files found in path", "path", path)
		}
	}

	model := &config.Model{}
	parser := hclparse.NewParser()
	for _, file := range files {
		diagrams, err := decodeFile(parser, file)
		if err != nil {
			return nil, err
		}
		model.Diagrams = append(model.Diagrams, diagrams...)
	}

	if err := model.Validate(); err != nil {
		return nil, err
	}
	return model, nil
}

// decodeFile parses a single HCL file and returns the diagrams found within.
func decodeFile(parser *hclparse.Parser, filePath string) ([]*config.Diagram, error) {
	hclFile, diags := parser.ParseHCLFile(filePath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse job file %s: %w", filePath, diags)
	}

	var parsed hclJobFile
	diags = gohcl.DecodeBody(hclFile.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode job file %s: %w", filePath, diags)
	}

	diagrams := make([]*config.Diagram, 0, len(parsed.Diagrams))
	for _, block := range parsed.Diagrams {
		diagram, err := newDiagram(block)
		if err != nil {
			return nil, fmt.Errorf("error in job file %s: %w", filePath, err)
		}
		diagrams = append(diagrams, diagram)
	}
	return diagrams, nil
}

// newDiagram translates a decoded block into the config model.
func newDiagram(block *hclDiagram) (*config.Diagram, error) {
	composition, err := decodeComposition(block.Name, block.Composition)
	if err != nil {
		return nil, err
	}

	d := &config.Diagram{
		Name:         block.Name,
		Elements:     block.Elements,
		Composition:  composition,
		FilterSolids: block.FilterSolids,
		Output:       block.Output,
	}
	if block.Concentration != nil {
		d.Concentration = *block.Concentration
	}
	if block.Window != nil {
		d.Window = &config.Window{
			PHMin: block.Window.PHMin,
			PHMax: block.Window.PHMax,
			VMin:  block.Window.VMin,
			VMax:  block.Window.VMax,
		}
	}
	return d, nil
}

// decodeComposition evaluates the composition expression into a map of
// element fractions. HCL object keys become the element symbols.
func decodeComposition(name string, expr hcl.Expression) (map[string]float64, error) {
	if expr == nil {
		return nil, nil
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("diagram %q: failed to evaluate composition: %w", name, diags)
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return nil, fmt.Errorf("diagram %q: composition must be a map of element fractions, got %s", name, val.Type().FriendlyName())
	}

	composition := make(map[string]float64)
	for it := val.ElementIterator(); it.Next(); {
		key, value := it.Element()
		var fraction float64
		if err := gocty.FromCtyValue(value, &fraction); err != nil {
			return nil, fmt.Errorf("diagram %q: composition fraction for %s: %w", name, key.AsString(), err)
		}
		composition[key.AsString()] = fraction
	}
	return composition, nil
}
