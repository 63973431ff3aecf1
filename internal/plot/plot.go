// Package plot renders stability diagrams as PNG images.
//
// A diagram is constructed on a frame wider than what is usually shown, so
// the renderer clips every domain to a configurable display window before
// drawing. Domain boundaries are solid black, the water stability lines are
// dashed red, the neutral axes are dash-dotted black, and each species name
// is anchored at the center of its visible region.
package plot

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/karelplanken/pourbaix/internal/pourbaix"
)

// lineWidth is shared by every line in the figure.
const lineWidth = 3.0

// neutralPH marks the vertical neutral-water axis.
const neutralPH = 7.0

// Config controls the display window and the figure dimensions.
type Config struct {
	// Title is printed above the figure.
	Title string

	// PHMin and PHMax bound the horizontal axis.
	PHMin float64
	PHMax float64

	// VMin and VMax bound the vertical axis.
	VMin float64
	VMax float64

	// Width and Height are the output dimensions in pixels.
	Width  int
	Height int

	// FontSize applies to the species labels.
	FontSize float64

	// ShowWaterLines draws the hydrogen and oxygen evolution lines.
	ShowWaterLines bool

	// ShowNeutralAxes draws the pH 7 vertical and the 0 V horizontal.
	ShowNeutralAxes bool

	// LabelDomains prints each species name inside its region.
	LabelDomains bool
}

// DefaultConfig returns the conventional presentation: a 0..14 pH by
// -3..3 V window at 1024x768 with water lines, neutral axes and labels
// all drawn.
func DefaultConfig() Config {
	return Config{
		PHMin:           0,
		PHMax:           14,
		VMin:            -3,
		VMax:            3,
		Width:           1024,
		Height:          768,
		FontSize:        20,
		ShowWaterLines:  true,
		ShowNeutralAxes: true,
		LabelDomains:    true,
	}
}

// Filename is the output file name for a diagram over the given elements:
// the symbols concatenated in selection order with a ".png" extension.
func Filename(elements []string) string {
	return strings.Join(elements, "") + ".png"
}

// Renderer draws diagrams with a fixed configuration.
type Renderer struct {
	cfg Config
}

// NewRenderer creates a Renderer. Inverted or missing window bounds and
// non-positive dimensions fall back to the defaults, so a partially
// populated Config still renders.
func NewRenderer(cfg Config) *Renderer {
	def := DefaultConfig()
	if cfg.PHMax <= cfg.PHMin {
		cfg.PHMin, cfg.PHMax = def.PHMin, def.PHMax
	}
	if cfg.VMax <= cfg.VMin {
		cfg.VMin, cfg.VMax = def.VMin, def.VMax
	}
	if cfg.Width <= 0 {
		cfg.Width = def.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = def.Height
	}
	if cfg.FontSize <= 0 {
		cfg.FontSize = def.FontSize
	}
	return &Renderer{cfg: cfg}
}

// Render draws the diagram as a PNG image.
func (r *Renderer) Render(d *pourbaix.Diagram, w io.Writer) error {
	if d == nil {
		return fmt.Errorf("no diagram to render")
	}
	window := r.window()

	series := make([]chart.Series, 0, len(d.Domains())+4)
	boundary := chart.Style{StrokeWidth: lineWidth, StrokeColor: chart.ColorBlack}
	for _, dom := range d.Domains() {
		visible := pourbaix.ClipToFrame(dom.Vertices, window)
		if len(visible) < 3 {
			continue
		}
		xs, ys := ring(visible)
		series = append(series, chart.ContinuousSeries{XValues: xs, YValues: ys, Style: boundary})
	}

	if r.cfg.ShowWaterLines {
		dashed := chart.Style{StrokeWidth: lineWidth, StrokeColor: chart.ColorRed, StrokeDashArray: []float64{5, 5}}
		for _, line := range []func(float64) float64{pourbaix.HydrogenLineV, pourbaix.OxygenLineV} {
			if xs, ys, ok := clipLine(line, window); ok {
				series = append(series, chart.ContinuousSeries{XValues: xs, YValues: ys, Style: dashed})
			}
		}
	}

	if r.cfg.ShowNeutralAxes {
		dashDot := chart.Style{StrokeWidth: lineWidth, StrokeColor: chart.ColorBlack, StrokeDashArray: []float64{6, 2, 1, 2}}
		if window.PHMin <= neutralPH && neutralPH <= window.PHMax {
			series = append(series, chart.ContinuousSeries{
				XValues: []float64{neutralPH, neutralPH},
				YValues: []float64{window.VMin, window.VMax},
				Style:   dashDot,
			})
		}
		if window.VMin <= 0 && 0 <= window.VMax {
			series = append(series, chart.ContinuousSeries{
				XValues: []float64{window.PHMin, window.PHMax},
				YValues: []float64{0, 0},
				Style:   dashDot,
			})
		}
	}

	if len(series) == 0 {
		return fmt.Errorf("nothing to draw between pH %g and %g", window.PHMin, window.PHMax)
	}

	ch := chart.Chart{
		Title:      r.cfg.Title,
		Width:      r.cfg.Width,
		Height:     r.cfg.Height,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  "pH",
			Range: &chart.ContinuousRange{Min: window.PHMin, Max: window.PHMax},
			Ticks: axisTicks(window.PHMin, window.PHMax, 2),
		},
		YAxis: chart.YAxis{
			Name:  "E (V)",
			Range: &chart.ContinuousRange{Min: window.VMin, Max: window.VMax},
			Ticks: axisTicks(window.VMin, window.VMax, 1),
		},
		Series: series,
	}
	if r.cfg.LabelDomains {
		ch.Elements = []chart.Renderable{r.domainLabels(d, window)}
	}
	return ch.Render(chart.PNG, w)
}

// WriteFile renders the diagram into dir under the given file name, creating
// the directory when needed. It returns the full path of the written file.
func (r *Renderer) WriteFile(dir, name string, d *pourbaix.Diagram) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(d, &buf); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create diagram directory %q: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write diagram image %q: %w", path, err)
	}
	return path, nil
}

func (r *Renderer) window() pourbaix.Frame {
	return pourbaix.Frame{
		PHMin: r.cfg.PHMin,
		PHMax: r.cfg.PHMax,
		VMin:  r.cfg.VMin,
		VMax:  r.cfg.VMax,
	}
}

// domainLabels builds a chart overlay that prints each species name at the
// center of its visible region. The overlay maps diagram coordinates onto
// the canvas box itself because go-chart hands renderables pixel bounds
// only.
func (r *Renderer) domainLabels(d *pourbaix.Diagram, window pourbaix.Frame) chart.Renderable {
	return func(cr chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
		if defaults.Font != nil {
			cr.SetFont(defaults.Font)
		}
		cr.SetFontSize(r.cfg.FontSize)
		cr.SetFontColor(chart.ColorBlue)
		for _, dom := range d.Domains() {
			visible := pourbaix.ClipToFrame(dom.Vertices, window)
			if len(visible) < 3 {
				continue
			}
			anchor := pourbaix.VertexAverage(visible)
			label := dom.Species.DisplayName()
			tb := cr.MeasureText(label)
			x := canvasBox.Left + int(float64(canvasBox.Width())*(anchor.PH-window.PHMin)/(window.PHMax-window.PHMin))
			y := canvasBox.Bottom - int(float64(canvasBox.Height())*(anchor.V-window.VMin)/(window.VMax-window.VMin))
			cr.Text(label, x-tb.Width()/2, y+tb.Height()/2)
		}
	}
}

// ring flattens polygon vertices into coordinate slices, repeating the first
// vertex so the outline closes.
func ring(poly []pourbaix.Point) (xs, ys []float64) {
	xs = make([]float64, 0, len(poly)+1)
	ys = make([]float64, 0, len(poly)+1)
	for _, p := range poly {
		xs = append(xs, p.PH)
		ys = append(ys, p.V)
	}
	xs = append(xs, poly[0].PH)
	ys = append(ys, poly[0].V)
	return xs, ys
}

// clipLine restricts an affine line v(ph) to the window and returns its two
// endpoints. ok is false when the line misses the window entirely.
func clipLine(line func(float64) float64, w pourbaix.Frame) (xs, ys []float64, ok bool) {
	lo, hi := w.PHMin, w.PHMax
	slope := line(1) - line(0)
	if slope == 0 {
		if v := line(0); v < w.VMin || v > w.VMax {
			return nil, nil, false
		}
	} else {
		p1 := (w.VMin - line(0)) / slope
		p2 := (w.VMax - line(0)) / slope
		if p1 > p2 {
			p1, p2 = p2, p1
		}
		lo = math.Max(lo, p1)
		hi = math.Min(hi, p2)
		if lo >= hi {
			return nil, nil, false
		}
	}
	return []float64{lo, hi}, []float64{line(lo), line(hi)}, true
}

// axisTicks builds ticks at every multiple of step inside the axis range.
func axisTicks(min, max, step float64) []chart.Tick {
	var ticks []chart.Tick
	for v := math.Ceil(min/step) * step; v <= max+step*1e-9; v += step {
		val := math.Round(v/step) * step
		ticks = append(ticks, chart.Tick{Value: val, Label: formatTick(val)})
	}
	return ticks
}

func formatTick(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
