// Package numbering builds the permutations between a topology's native
// entity numbering and the application numbering assigned by an
// upstream section.
package numbering

import (
	"errors"
	"fmt"

	"github.com/notargets/mgmesh/mesh"
)

// AppID is an application-numbered entity index: contiguous, grouped by
// entity type, as required by the solver's degree-of-freedom layout.
type AppID int

// Unnumbered fills renumbering slots of points the section assigns no
// dofs to. Such slots must never be read; the sentinel makes a contract
// violation detectable instead of aliasing entity 0.
const Unnumbered = -1

// EntityType selects which topology stratum a renumbering covers.
type EntityType uint8

const (
	Cell EntityType = iota
	Vertex
)

func (e EntityType) String() string {
	switch e {
	case Cell:
		return "cell"
	case Vertex:
		return "vertex"
	}
	return fmt.Sprintf("EntityType(%d)", uint8(e))
}

// ErrUnsupportedEntityType reports an entity type other than Cell or
// Vertex. Caller-recoverable.
var ErrUnsupportedEntityType = errors.New("unsupported entity type for renumbering")

// BuildRenumbering returns the forward and inverse permutations between
// topology-native and application numbering for one entity type.
//
// For each point p of the entity stratum [start, end) with a nonzero
// section dof count and offset o:
//
//	oldToNew[p-start] = o
//	newToOld[o]       = p - start
//
// Points with zero dofs keep the Unnumbered sentinel in both arrays;
// reading those slots is a caller contract violation. The two arrays
// are mutual inverses restricted to the numbered subset.
func BuildRenumbering(topo mesh.Topology, section mesh.Section, entity EntityType) (oldToNew []AppID, newToOld []int, err error) {
	var start, end int
	switch entity {
	case Cell:
		start, end = topo.HeightStratum(0)
	case Vertex:
		start, end = topo.DepthStratum(0)
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedEntityType, entity)
	}

	n := end - start
	oldToNew = make([]AppID, n)
	newToOld = make([]int, n)
	for i := 0; i < n; i++ {
		oldToNew[i] = Unnumbered
		newToOld[i] = Unnumbered
	}

	for p := start; p < end; p++ {
		if section.Dof(p) <= 0 {
			continue
		}
		o := section.Offset(p)
		newToOld[o] = p - start
		oldToNew[p-start] = AppID(o)
	}
	return oldToNew, newToOld, nil
}
