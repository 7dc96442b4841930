package multigrid

import "github.com/notargets/mgmesh/mesh"

// Facet label names. The exterior-facet label always exists on a mesh
// (possibly empty); the boundary-id and boundary-face labels exist only
// when the mesh declares face sets.
const (
	ExteriorFacetsLabel = "exterior_facets"
	BoundaryIDsLabel    = "boundary_ids"
	BoundaryFacesLabel  = "boundary_faces"
)

// FilterExteriorFacetLabels strips facet labels from non-facet points.
//
// Label propagation during refinement marks every point beneath a
// labeled facet, including the lower-dimensional points it touches, but
// these labels are semantically facet-only. The filter clears any value
// of the three facet labels from every chart point outside the height-1
// stratum, restoring the invariant. Mutates the topology's label
// storage in place; idempotent.
func FilterExteriorFacetLabels(topo mesh.Topology) {
	fStart, fEnd := topo.HeightStratum(1)
	pStart, pEnd := topo.Chart()

	labels := make([]string, 0, 3)
	for _, name := range []string{ExteriorFacetsLabel, BoundaryIDsLabel, BoundaryFacesLabel} {
		if topo.HasLabel(name) {
			labels = append(labels, name)
		}
	}

	for p := pStart; p < pEnd; p++ {
		if p >= fStart && p < fEnd {
			continue
		}
		for _, name := range labels {
			if v := topo.LabelValue(name, p); v >= 0 {
				topo.ClearLabelValue(name, p, v)
			}
		}
	}
}
