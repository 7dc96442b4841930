// Package mesh declares the external collaborator surfaces this library
// consumes — mesh topology, entity numbering sections, and the mesh
// object tying them to partition index maps — together with in-memory
// implementations of the first two.
package mesh

// Topology is the distributed mesh topology collaborator. It is
// read-only to this library except for label storage, which
// FilterExteriorFacetLabels mutates in place.
//
// Points are identified by a single contiguous chart [pStart, pEnd);
// entities of equal height (codimension) or depth (dimension) occupy
// contiguous stratum sub-ranges of the chart.
type Topology interface {
	// Chart returns the valid point-identifier range [pStart, pEnd).
	Chart() (pStart, pEnd int)

	// HeightStratum returns the point range [start, end) of entities at
	// the given height: 0 for cells, 1 for facets.
	HeightStratum(height int) (start, end int)

	// DepthStratum returns the point range [start, end) of entities at
	// the given depth: 0 for vertices.
	DepthStratum(depth int) (start, end int)

	// HasLabel reports whether the named label exists.
	HasLabel(name string) bool

	// LabelValue returns the value of the named label at a point, or -1
	// if the point is unlabeled.
	LabelValue(name string, point int) int

	// ClearLabelValue removes the given value of the named label from a
	// point. Clearing an absent value is a no-op.
	ClearLabelValue(name string, point, value int)
}

// TopologyData is an in-memory Topology with explicitly declared
// stratum ranges and label storage.
type TopologyData struct {
	pStart, pEnd int
	heights      [][2]int
	depths       [][2]int
	labels       map[string]map[int]int
}

var _ Topology = &TopologyData{}

// NewTopologyData creates a topology over the chart [pStart, pEnd) with
// no strata and no labels declared.
func NewTopologyData(pStart, pEnd int) *TopologyData {
	return &TopologyData{
		pStart: pStart,
		pEnd:   pEnd,
		labels: make(map[string]map[int]int),
	}
}

// SetHeightStratum declares the point range of entities at a height.
func (t *TopologyData) SetHeightStratum(height, start, end int) {
	for len(t.heights) <= height {
		t.heights = append(t.heights, [2]int{0, 0})
	}
	t.heights[height] = [2]int{start, end}
}

// SetDepthStratum declares the point range of entities at a depth.
func (t *TopologyData) SetDepthStratum(depth, start, end int) {
	for len(t.depths) <= depth {
		t.depths = append(t.depths, [2]int{0, 0})
	}
	t.depths[depth] = [2]int{start, end}
}

// CreateLabel declares an empty label.
func (t *TopologyData) CreateLabel(name string) {
	if _, ok := t.labels[name]; !ok {
		t.labels[name] = make(map[int]int)
	}
}

// SetLabelValue assigns a label value to a point, declaring the label
// if needed.
func (t *TopologyData) SetLabelValue(name string, point, value int) {
	t.CreateLabel(name)
	t.labels[name][point] = value
}

func (t *TopologyData) Chart() (int, int) {
	return t.pStart, t.pEnd
}

func (t *TopologyData) HeightStratum(height int) (int, int) {
	if height < 0 || height >= len(t.heights) {
		return 0, 0
	}
	return t.heights[height][0], t.heights[height][1]
}

func (t *TopologyData) DepthStratum(depth int) (int, int) {
	if depth < 0 || depth >= len(t.depths) {
		return 0, 0
	}
	return t.depths[depth][0], t.depths[depth][1]
}

func (t *TopologyData) HasLabel(name string) bool {
	_, ok := t.labels[name]
	return ok
}

func (t *TopologyData) LabelValue(name string, point int) int {
	values, ok := t.labels[name]
	if !ok {
		return -1
	}
	v, ok := values[point]
	if !ok {
		return -1
	}
	return v
}

func (t *TopologyData) ClearLabelValue(name string, point, value int) {
	values, ok := t.labels[name]
	if !ok {
		return
	}
	if v, ok := values[point]; ok && v == value {
		delete(values, point)
	}
}
