package jobfile

import (
	"github.com/hashicorp/hcl/v2"
)

// hclJobFile represents the top-level structure of a job file for decoding.
type hclJobFile struct {
	Diagrams []*hclDiagram `hcl:"diagram,block"`
	Body     hcl.Body      `hcl:",remain"`
}

// hclDiagram represents a `diagram` block. The composition stays a raw
// expression here because HCL object keys are decoded manually into a Go map.
type hclDiagram struct {
	Name          string         `hcl:"name,label"`
	Elements      []string       `hcl:"elements"`
	Composition   hcl.Expression `hcl:"composition,optional"`
	Concentration *float64       `hcl:"concentration,optional"`
	FilterSolids  *bool          `hcl:"filter_solids,optional"`
	Output        string         `hcl:"output,optional"`
	Window        *hclWindow     `hcl:"window,block"`
}

// hclWindow represents the optional `window` block bounding the plotted
// region.
type hclWindow struct {
	PHMin float64 `hcl:"ph_min"`
	PHMax float64 `hcl:"ph_max"`
	VMin  float64 `hcl:"v_min"`
	VMax  float64 `hcl:"v_max"`
}
