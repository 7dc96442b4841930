// Package boxmesh provides small structured meshes with cells-first
// chart numbering, uniform bisection refinement, and a block
// distribution that stands in for the external partitioner. It exists
// to drive the renumbering and coarse-to-fine machinery with concrete
// meshes whose topology-native numbering is fully controlled.
package boxmesh

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/mgmesh/mesh"
	"github.com/notargets/mgmesh/partitions"
)

// Mesh is a structured interval or quadrilateral mesh, serial or one
// worker's overlapped slice of a distributed interval mesh.
type Mesh struct {
	topo            *mesh.TopologyData
	cellNumbering   *mesh.NumberingSection
	vertexNumbering *mesh.NumberingSection
	dim             int
	ownedCells      int
	totalCells      int
	nonOvMap        partitions.IndexMap
	ovMap           partitions.IndexMap

	// Vertex coordinates, dim x NumVertices, laid out geometrically
	// over the local patch.
	coords *mat.Dense

	// Structured bookkeeping used by Refine and Distribute.
	cellGlobals []partitions.GlobalID // global id of each local cell
	globalCells int                   // cell count of the full mesh
	nx, ny      int                   // full-mesh extents (ny = 0 in 1-D)
	patchLo     int                   // 1-D local patch [patchLo, patchHi) in global cells
	patchHi     int
}

var _ mesh.Mesh = &Mesh{}

// NewInterval creates a serial 1-D mesh of nc unit-interval cells.
// Chart layout: cells [0, nc), vertices [nc, 2nc+1).
func NewInterval(nc int) *Mesh {
	if nc < 1 {
		panic(fmt.Sprintf("boxmesh: interval needs at least one cell, got %d", nc))
	}
	return newIntervalPatch(nc, nc, identityGlobals(nc), 0, nc)
}

// NewRectangle creates a serial 2-D mesh of nx x ny quadrilateral cells
// on the unit square, cells numbered row-major. Chart layout: cells,
// then vertices, then edges (the facet stratum).
func NewRectangle(nx, ny int) *Mesh {
	if nx < 1 || ny < 1 {
		panic(fmt.Sprintf("boxmesh: rectangle needs positive extents, got %dx%d", nx, ny))
	}
	return newRectangle(nx, ny)
}

func newRectangle(nx, ny int) *Mesh {
	nc := nx * ny
	nv := (nx + 1) * (ny + 1)
	ne := nx*(ny+1) + ny*(nx+1)

	topo := mesh.NewTopologyData(0, nc+nv+ne)
	topo.SetHeightStratum(0, 0, nc)
	topo.SetHeightStratum(1, nc+nv, nc+nv+ne)
	topo.SetHeightStratum(2, nc, nc+nv)
	topo.SetDepthStratum(0, nc, nc+nv)
	topo.SetDepthStratum(1, nc+nv, nc+nv+ne)
	topo.SetDepthStratum(2, 0, nc)

	coords := mat.NewDense(2, nv, nil)
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			k := j*(nx+1) + i
			coords.Set(0, k, float64(i)/float64(nx))
			coords.Set(1, k, float64(j)/float64(ny))
		}
	}

	m := &Mesh{
		topo:        topo,
		dim:         2,
		ownedCells:  nc,
		totalCells:  nc,
		coords:      coords,
		cellGlobals: identityGlobals(nc),
		globalCells: nc,
		nx:          nx,
		ny:          ny,
	}
	m.cellNumbering = identityCellSection(topo)
	m.vertexNumbering = identityVertexSection(topo)
	return m
}

// newIntervalPatch builds the 1-D mesh covering global cells
// [patchLo, patchHi) with nLocal local cells (owned first, ghosts
// after) whose global ids are cellGlobals.
func newIntervalPatch(globalCells, nLocal int, cellGlobals []partitions.GlobalID, patchLo, patchHi int) *Mesh {
	nv := patchHi - patchLo + 1

	topo := mesh.NewTopologyData(0, nLocal+nv)
	topo.SetHeightStratum(0, 0, nLocal)
	topo.SetHeightStratum(1, nLocal, nLocal+nv)
	topo.SetDepthStratum(0, nLocal, nLocal+nv)
	topo.SetDepthStratum(1, 0, nLocal)

	coords := mat.NewDense(1, nv, nil)
	for k := 0; k < nv; k++ {
		coords.Set(0, k, float64(patchLo+k)/float64(globalCells))
	}

	m := &Mesh{
		topo:        topo,
		dim:         1,
		ownedCells:  nLocal,
		totalCells:  nLocal,
		coords:      coords,
		cellGlobals: cellGlobals,
		globalCells: globalCells,
		nx:          globalCells,
		patchLo:     patchLo,
		patchHi:     patchHi,
	}
	m.cellNumbering = identityCellSection(topo)
	m.vertexNumbering = identityVertexSection(topo)
	return m
}

func identityGlobals(n int) []partitions.GlobalID {
	g := make([]partitions.GlobalID, n)
	for i := range g {
		g[i] = partitions.GlobalID(i)
	}
	return g
}

// identityCellSection numbers the cell stratum by local index.
func identityCellSection(topo *mesh.TopologyData) *mesh.NumberingSection {
	start, end := topo.HeightStratum(0)
	pStart, pEnd := topo.Chart()
	s := mesh.NewNumberingSection(pStart, pEnd)
	for p := start; p < end; p++ {
		s.SetDof(p, 1)
		s.SetOffset(p, p-start)
	}
	return s
}

// identityVertexSection numbers the vertex stratum by local index.
func identityVertexSection(topo *mesh.TopologyData) *mesh.NumberingSection {
	start, end := topo.DepthStratum(0)
	pStart, pEnd := topo.Chart()
	s := mesh.NewNumberingSection(pStart, pEnd)
	for p := start; p < end; p++ {
		s.SetDof(p, 1)
		s.SetOffset(p, p-start)
	}
	return s
}

// RenumberCells overrides the application cell numbering: offsets[c] is
// the application index of local cell c. Owned cells must stay within
// [0, NumOwnedCells).
func (m *Mesh) RenumberCells(offsets []int) {
	if len(offsets) != m.totalCells {
		panic(fmt.Sprintf("boxmesh: need %d offsets, got %d", m.totalCells, len(offsets)))
	}
	start, _ := m.topo.HeightStratum(0)
	for c, o := range offsets {
		m.cellNumbering.SetOffset(start+c, o)
	}
}

// Refine uniformly bisects the mesh. Every coarse cell c produces
// 2^dim children numbered c*2^dim + i in the fine topology-native
// numbering; on a distributed worker the children inherit global ids
// parentGlobal*2^dim + i and the owned-cells-first ordering, so the
// refinement rule holds in the non-overlapped numbering too.
func (m *Mesh) Refine() *Mesh {
	switch m.dim {
	case 1:
		return m.refineInterval()
	case 2:
		return m.refineRectangle()
	}
	panic(fmt.Sprintf("boxmesh: cannot refine %d-dimensional mesh", m.dim))
}

func (m *Mesh) refineInterval() *Mesh {
	fineGlobals := make([]partitions.GlobalID, 2*m.totalCells)
	for c, g := range m.cellGlobals {
		fineGlobals[2*c] = 2 * g
		fineGlobals[2*c+1] = 2*g + 1
	}

	f := newIntervalPatch(2*m.globalCells, 2*m.totalCells, fineGlobals, 2*m.patchLo, 2*m.patchHi)
	f.ownedCells = 2 * m.ownedCells
	if m.nonOvMap != nil {
		f.nonOvMap = partitions.NewLGMap(fineGlobals[:f.ownedCells])
		f.ovMap = partitions.NewLGMap(fineGlobals)
	}
	return f
}

func (m *Mesh) refineRectangle() *Mesh {
	if m.nonOvMap != nil {
		panic("boxmesh: distributed rectangle refinement not supported")
	}
	// Fine cell indices follow the child rule 4c+i. The topology ties
	// no geometry to cell indices, so the refined mesh reuses the
	// structured constructor with doubled extents; vertices stay
	// grid-ordered and carry the geometry.
	return newRectangle(2*m.nx, 2*m.ny)
}

// mesh.Mesh implementation.

func (m *Mesh) Topology() mesh.Topology { return m.topo }

func (m *Mesh) CellNumbering() mesh.Section { return m.cellNumbering }

func (m *Mesh) NumOwnedCells() int { return m.ownedCells }

func (m *Mesh) NumCells() int { return m.totalCells }

func (m *Mesh) Dimension() int { return m.dim }

func (m *Mesh) NonOverlappedCellMap() partitions.IndexMap { return m.nonOvMap }

func (m *Mesh) OverlappedCellMap() partitions.IndexMap { return m.ovMap }

// VertexNumbering returns the application vertex-numbering section.
func (m *Mesh) VertexNumbering() mesh.Section { return m.vertexNumbering }

// Coordinates returns the vertex coordinates as a dim x NumVertices
// matrix over the local patch.
func (m *Mesh) Coordinates() *mat.Dense { return m.coords }

// NumVertices returns the local vertex count.
func (m *Mesh) NumVertices() int {
	start, end := m.topo.DepthStratum(0)
	return end - start
}

// CellGlobal returns the global id of a local cell.
func (m *Mesh) CellGlobal(c int) partitions.GlobalID { return m.cellGlobals[c] }

// TopologyData exposes the concrete topology for label manipulation.
func (m *Mesh) TopologyData() *mesh.TopologyData { return m.topo }
