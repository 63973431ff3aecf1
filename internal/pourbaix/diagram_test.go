package pourbaix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func znMetal() Entry {
	return Entry{
		EntryID:     "mp-79",
		Name:        "Zn(s)",
		Composition: map[string]float64{"Zn": 1},
		Energy:      0,
		Phase:       PhaseSolid,
	}
}

func znOxide() Entry {
	return Entry{
		EntryID:     "mp-2133",
		Name:        "ZnO(s)",
		Composition: map[string]float64{"Zn": 1, "O": 1},
		Energy:      -3,
		Phase:       PhaseSolid,
	}
}

func znConfig() DiagramConfig {
	return DiagramConfig{
		Composition:   map[string]float64{"Zn": 1.0},
		Concentration: map[string]float64{"Zn": 1e-6},
	}
}

// domainFor finds the domain labelled with the given species name.
func domainFor(t *testing.T, d *Diagram, name string) Domain {
	t.Helper()
	for _, dom := range d.Domains() {
		if dom.Species.DisplayName() == name {
			return dom
		}
	}
	t.Fatalf("no domain for species %q", name)
	return Domain{}
}

func hasVertexNear(poly []Point, pH, v float64) bool {
	for _, p := range poly {
		if abs(p.PH-pH) < 1e-6 && abs(p.V-v) < 1e-6 {
			return true
		}
	}
	return false
}

func TestNewDiagram_TwoSolidBoundary(t *testing.T) {
	// --- Arrange ---
	// Metal and oxide compete. Equal normalized energies along
	// V = (-0.5417 - 0.1182*pH)/2, metal stable below, oxide above.
	entries := []Entry{znMetal(), znOxide()}

	// --- Act ---
	d, err := NewDiagram(entries, znConfig())

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, d.Domains(), 2)

	metal := domainFor(t, d, "Zn(s)")
	oxide := domainFor(t, d, "ZnO(s)")

	// The boundary endpoints sit on the frame edges.
	assert.True(t, hasVertexNear(metal.Vertices, -2, -0.15265))
	assert.True(t, hasVertexNear(metal.Vertices, 16, -1.21645))
	assert.True(t, hasVertexNear(oxide.Vertices, -2, -0.15265))
	assert.True(t, hasVertexNear(oxide.Vertices, 16, -1.21645))

	// The two regions tile the frame.
	total := polygonArea(metal.Vertices) + polygonArea(oxide.Vertices)
	assert.InDelta(t, 18*8, total, 1e-6)

	// The oxide sits at higher potential.
	assert.Greater(t, oxide.Center.V, metal.Center.V)

	assert.Equal(t, "Zn(s)", d.StableSpecies(7, -3).DisplayName())
	assert.Equal(t, "ZnO(s)", d.StableSpecies(7, 3).DisplayName())
}

func TestNewDiagram_DefaultFrame(t *testing.T) {
	d, err := NewDiagram([]Entry{znMetal()}, znConfig())
	require.NoError(t, err)
	assert.Equal(t, DefaultFrame(), d.Frame())

	// A lone species owns the entire frame.
	require.Len(t, d.Domains(), 1)
	assert.InDelta(t, 18*8, polygonArea(d.Domains()[0].Vertices), 1e-6)
}

func TestNewDiagram_MissingConfiguration(t *testing.T) {
	entries := []Entry{znMetal()}

	_, err := NewDiagram(entries, DiagramConfig{
		Composition:   map[string]float64{},
		Concentration: map[string]float64{"Zn": 1e-6},
	})
	require.ErrorContains(t, err, "no composition fraction configured for element Zn")

	_, err = NewDiagram(entries, DiagramConfig{
		Composition:   map[string]float64{"Zn": 1.0},
		Concentration: map[string]float64{},
	})
	require.ErrorContains(t, err, "no concentration configured for element Zn")
}

func TestNewDiagram_NoEntries(t *testing.T) {
	_, err := NewDiagram(nil, znConfig())
	require.ErrorContains(t, err, "no entries")
}

func TestNewDiagram_FilterSolids(t *testing.T) {
	// A high energy polymorph of the same composition is nowhere stable.
	polymorph := znMetal()
	polymorph.EntryID = "mp-79-poly"
	polymorph.Name = "Zn(s) hp"
	polymorph.Energy = 0.5

	entries := []Entry{znMetal(), polymorph}

	cfg := znConfig()
	d, err := NewDiagram(entries, cfg)
	require.NoError(t, err)
	assert.Len(t, d.AllSpecies(), 2, "unfiltered diagram keeps the polymorph as a candidate")
	assert.Len(t, d.Domains(), 1)

	cfg.FilterSolids = true
	d, err = NewDiagram(entries, cfg)
	require.NoError(t, err)
	assert.Len(t, d.AllSpecies(), 1, "filtering drops the polymorph entirely")
	assert.Len(t, d.Domains(), 1)
}

func TestNewDiagram_FilterSolidsPerElementSystem(t *testing.T) {
	// CuO sits energetically far above the iron phases per atom, but it is
	// the only copper solid and must survive filtering: solids only compete
	// within their own element system.
	feMetal := Entry{
		EntryID:     "mp-13",
		Name:        "Fe(s)",
		Composition: map[string]float64{"Fe": 1},
		Energy:      0,
		Phase:       PhaseSolid,
	}

	d, err := NewDiagram([]Entry{feMetal, fe2o3(), cuo()}, DiagramConfig{
		Composition:   map[string]float64{"Fe": 0.5, "Cu": 0.5},
		Concentration: map[string]float64{"Fe": 1e-8, "Cu": 1e-8},
		FilterSolids:  true,
	})
	require.NoError(t, err)

	require.Len(t, d.AllSpecies(), 2)
	names := []string{
		d.AllSpecies()[0].DisplayName(),
		d.AllSpecies()[1].DisplayName(),
	}
	assert.Contains(t, names, "Fe(s) + CuO(s)")
	assert.Contains(t, names, "Fe2O3(s) + CuO(s)")
	assert.Len(t, d.Domains(), 2)
}

func TestNewDiagram_IonConcentrationOverride(t *testing.T) {
	ion := Entry{
		EntryID:       "ion-12",
		Name:          "Zn[2+]",
		Composition:   map[string]float64{"Zn": 1},
		Energy:        -1.5,
		Charge:        2,
		Phase:         PhaseIon,
		Concentration: 1e-6,
	}

	cfg := znConfig()
	cfg.Concentration = map[string]float64{"Zn": 1e-8}

	d, err := NewDiagram([]Entry{znMetal(), ion}, cfg)
	require.NoError(t, err)

	for _, s := range d.AllSpecies() {
		if s.DisplayName() != "Zn[2+]" {
			continue
		}
		e, ok := s.(Entry)
		require.True(t, ok)
		// Configured value times the normalization factor (1 here),
		// replacing the fetched seed.
		assert.InDelta(t, 1e-8, e.Concentration, 1e-20)
		return
	}
	t.Fatal("ion species not found in diagram")
}

func TestNewDiagram_MultiElement(t *testing.T) {
	entries := []Entry{fe2o3(), cuo()}
	cfg := DiagramConfig{
		Composition:   map[string]float64{"Fe": 0.5, "Cu": 0.5},
		Concentration: map[string]float64{"Fe": 1e-8, "Cu": 1e-8},
	}

	d, err := NewDiagram(entries, cfg)
	require.NoError(t, err)

	require.Len(t, d.AllSpecies(), 1)
	require.Len(t, d.Domains(), 1)
	assert.Equal(t, "Fe2O3(s) + CuO(s)", d.Domains()[0].Species.DisplayName())
	assert.InDelta(t, 18*8, polygonArea(d.Domains()[0].Vertices), 1e-6)
}

func TestNewDiagram_NoViableAssemblage(t *testing.T) {
	// Copper is requested but no entry carries it.
	cfg := DiagramConfig{
		Composition:   map[string]float64{"Fe": 0.5, "Cu": 0.5},
		Concentration: map[string]float64{"Fe": 1e-8, "Cu": 1e-8},
	}

	_, err := NewDiagram([]Entry{fe2o3()}, cfg)
	require.ErrorContains(t, err, "no viable species assemblage")
}
