package boxmesh

import (
	"fmt"

	"github.com/notargets/mgmesh/partitions"
)

// Distribute splits a serial interval mesh into nworkers per-worker
// meshes, simulating the external partitioner: contiguous block
// ownership, one ghost cell of overlap across each interior partition
// boundary, and the growth invariant the correspondence builder relies
// on — owned cells keep their relative order ahead of ghosts in the
// overlapped local numbering.
func Distribute(m *Mesh, nworkers int) []*Mesh {
	if m.dim != 1 {
		panic(fmt.Sprintf("boxmesh: can only distribute interval meshes, got dimension %d", m.dim))
	}
	if m.nonOvMap != nil {
		panic("boxmesh: mesh is already distributed")
	}
	nc := m.globalCells
	if nworkers < 1 || nworkers > nc {
		panic(fmt.Sprintf("boxmesh: cannot split %d cells over %d workers", nc, nworkers))
	}

	workers := make([]*Mesh, nworkers)
	for r := 0; r < nworkers; r++ {
		lo := r * nc / nworkers
		hi := (r + 1) * nc / nworkers
		n := hi - lo

		// Owned block first, then ghost neighbors (left, right).
		globals := make([]partitions.GlobalID, 0, n+2)
		for g := lo; g < hi; g++ {
			globals = append(globals, partitions.GlobalID(g))
		}
		patchLo, patchHi := lo, hi
		if lo > 0 {
			globals = append(globals, partitions.GlobalID(lo-1))
			patchLo--
		}
		if hi < nc {
			globals = append(globals, partitions.GlobalID(hi))
			patchHi++
		}

		w := newIntervalPatch(nc, len(globals), globals, patchLo, patchHi)
		w.ownedCells = n
		w.nonOvMap = partitions.NewLGMap(globals[:n])
		w.ovMap = partitions.NewLGMap(globals)
		workers[r] = w
	}
	return workers
}
