package app

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"github.com/karelplanken/pourbaix/internal/cache"
	"github.com/karelplanken/pourbaix/internal/config"
	"github.com/karelplanken/pourbaix/internal/ctxlog"
	"github.com/karelplanken/pourbaix/internal/entrystore"
	"github.com/karelplanken/pourbaix/internal/plot"
	"github.com/karelplanken/pourbaix/internal/pourbaix"
)

// Run executes the configured diagram jobs sequentially.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	diagrams, err := a.resolveDiagrams(ctx)
	if err != nil {
		return err
	}

	store := entrystore.New(a.config.EntriesDir)
	filler := cache.New(store, a.fetcher)
	memo := entrystore.NewMemo(store)

	a.logger.Info("🚀 Starting diagram run...", "diagrams", len(diagrams))
	var lastPath, lastName string
	for _, diagram := range diagrams {
		path, err := a.buildDiagram(ctx, diagram, filler, memo)
		if err != nil {
			return fmt.Errorf("diagram %q failed: %w", diagram.Name, err)
		}
		lastPath, lastName = path, diagram.Name
	}
	a.logger.Info("🏁 Diagram run finished.")

	if a.config.Show && lastPath != "" {
		if len(diagrams) > 1 {
			a.logger.Warn("Viewer shows only the last diagram of the job.", "diagram", lastName)
		}
		img, err := loadPNG(lastPath)
		if err != nil {
			return err
		}
		if err := a.viewer.Show(lastName, img); err != nil {
			return fmt.Errorf("failed to show diagram %q: %w", lastName, err)
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// resolveDiagrams produces the list of requested diagrams, either loaded
// from the job path or synthesized from the command line element selection.
func (a *App) resolveDiagrams(ctx context.Context) ([]*config.Diagram, error) {
	if a.config.JobPath != "" {
		model, err := a.loader.Load(ctx, a.config.JobPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load job: %w", err)
		}
		return model.Diagrams, nil
	}

	diagram := &config.Diagram{
		Name:     strings.Join(a.config.Elements, ""),
		Elements: a.config.Elements,
	}
	if err := diagram.Validate(); err != nil {
		return nil, err
	}
	return []*config.Diagram{diagram}, nil
}

// buildDiagram takes one diagram definition through the full pipeline: cache
// fill, entry loading, construction and rendering. It returns the path of
// the written image.
func (a *App) buildDiagram(ctx context.Context, diagram *config.Diagram, filler *cache.Cache, memo *entrystore.Memo) (string, error) {
	logger := ctxlog.FromContext(ctx).With("diagram", diagram.Name)
	logger.Debug("Building diagram.", "elements", diagram.Elements)

	var entries []pourbaix.Entry
	for _, element := range diagram.Elements {
		if err := filler.Ensure(ctx, element); err != nil {
			return "", err
		}
		loaded, err := memo.Load(element)
		if err != nil {
			return "", err
		}
		entries = append(entries, loaded...)
	}

	d, err := pourbaix.NewDiagram(entries, pourbaix.DiagramConfig{
		Composition:   compositionWeights(diagram),
		Concentration: concentrations(diagram, a.config.Concentration),
		FilterSolids:  a.filterSolids(diagram),
	})
	if err != nil {
		return "", err
	}
	logger.Debug("Diagram assembled.", "species", len(d.AllSpecies()), "domains", len(d.Domains()))

	name := diagram.Output
	if name == "" {
		name = plot.Filename(diagram.Elements)
	}
	renderer := plot.NewRenderer(plotConfig(diagram))
	path, err := renderer.WriteFile(a.config.DiagramsDir, name, d)
	if err != nil {
		return "", err
	}
	logger.Info("Diagram written.", "path", path)
	return path, nil
}

// plotConfig maps a diagram definition onto renderer settings.
func plotConfig(diagram *config.Diagram) plot.Config {
	cfg := plot.DefaultConfig()
	cfg.Title = diagram.Name
	if w := diagram.Window; w != nil {
		cfg.PHMin, cfg.PHMax = w.PHMin, w.PHMax
		cfg.VMin, cfg.VMax = w.VMin, w.VMax
	}
	return cfg
}

// loadPNG reads back a written image for the viewer.
func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to reopen diagram image %q: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode diagram image %q: %w", path, err)
	}
	return img, nil
}
