package multigrid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/mgmesh/boxmesh"
	"github.com/notargets/mgmesh/mesh"
	"github.com/notargets/mgmesh/numbering"
	"github.com/notargets/mgmesh/partitions"
)

func TestBuildCoarseToFine_IntervalSingleWorker(t *testing.T) {
	coarse := boxmesh.NewInterval(2)
	fine := coarse.Refine()

	table, err := BuildCoarseToFine(coarse, fine)
	require.NoError(t, err)

	expected := [][]numbering.AppID{{0, 1}, {2, 3}}
	assert.Equal(t, expected, table)
}

func TestBuildCoarseToFine_SingleWorkerIdentity(t *testing.T) {
	// With application numbering equal to topology numbering, row c
	// must contain exactly {c*r, ..., c*r+r-1}.
	coarse := boxmesh.NewInterval(5)
	fine := coarse.Refine()

	table, err := BuildCoarseToFine(coarse, fine)
	require.NoError(t, err)
	require.Len(t, table, 5)

	for c, row := range table {
		assert.Equal(t, []numbering.AppID{numbering.AppID(2 * c), numbering.AppID(2*c + 1)}, row)
	}
}

func TestBuildCoarseToFine_CoarseRenumbered(t *testing.T) {
	coarse := boxmesh.NewInterval(2)
	fine := coarse.Refine()
	// Swap the application numbering of the two coarse cells.
	coarse.RenumberCells([]int{1, 0})

	table, err := BuildCoarseToFine(coarse, fine)
	require.NoError(t, err)

	expected := [][]numbering.AppID{{2, 3}, {0, 1}}
	assert.Equal(t, expected, table)
}

func TestBuildCoarseToFine_QuadFineRenumbered(t *testing.T) {
	// One quad cell, r = 4, fine cells application-renumbered so that
	// topology-native [0,1,2,3] become applications [3,1,0,2].
	coarse := boxmesh.NewRectangle(1, 1)
	fine := coarse.Refine()
	fine.RenumberCells([]int{3, 1, 0, 2})

	// Fine cells are visited by application index, recovering
	// topology-native order [2,1,3,0] through new-to-old.
	_, newToOld, err := numbering.BuildRenumbering(fine.Topology(), fine.CellNumbering(), numbering.Cell)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1, 3, 0}, newToOld)

	table, err := BuildCoarseToFine(coarse, fine)
	require.NoError(t, err)
	require.Len(t, table, 1)

	// Children fill slots in application visit order; each fine
	// application index appears exactly once.
	assert.Equal(t, []numbering.AppID{0, 1, 2, 3}, table[0])
}

func TestBuildCoarseToFine_Distributed(t *testing.T) {
	for _, nworkers := range []int{2, 3} {
		const nc = 8
		coarseWorkers := boxmesh.Distribute(boxmesh.NewInterval(nc), nworkers)

		covered := make(map[partitions.GlobalID]bool)
		for r, coarse := range coarseWorkers {
			fine := coarse.Refine()

			table, err := BuildCoarseToFine(coarse, fine)
			require.NoError(t, err, "worker %d/%d", r, nworkers)
			require.Len(t, table, coarse.NumOwnedCells())

			for c, row := range table {
				// Row completeness: every owned coarse cell has all its
				// children locally.
				parent := coarse.CellGlobal(c)
				assert.False(t, covered[parent], "coarse cell %d owned twice", parent)
				covered[parent] = true

				children := make(map[partitions.GlobalID]bool)
				for _, f := range row {
					require.NotEqual(t, Unset, f, "worker %d coarse %d has an unset slot", r, c)
					children[fine.CellGlobal(int(f))] = true
				}
				assert.Equal(t,
					map[partitions.GlobalID]bool{2 * parent: true, 2*parent + 1: true},
					children, "worker %d coarse cell %d", r, parent)
			}
		}
		assert.Len(t, covered, nc, "%d workers must cover all coarse cells", nworkers)
	}
}

func TestBuildCoarseToFine_DistributedRenumbered(t *testing.T) {
	// Two workers over 4 cells; worker 0 owns globals {0,1} plus ghost
	// {2}. Scramble the application numbering of owned cells on both
	// levels and check the table follows it.
	workers := boxmesh.Distribute(boxmesh.NewInterval(4), 2)
	coarse := workers[0]
	fine := coarse.Refine()

	coarse.RenumberCells([]int{1, 0, 2})
	fine.RenumberCells([]int{2, 3, 0, 1, 4, 5})

	table, err := BuildCoarseToFine(coarse, fine)
	require.NoError(t, err)

	// Coarse application 0 is local cell 1 (global 1): children are
	// local fine cells 2,3 carrying applications 0,1. Coarse
	// application 1 is local cell 0: children applications 2,3.
	expected := [][]numbering.AppID{{0, 1}, {2, 3}}
	assert.Equal(t, expected, table)
}

func TestBuildCoarseToFine_NonConformingRefinement(t *testing.T) {
	coarse := boxmesh.NewInterval(2)
	fine := coarse.Refine()
	// A numbering that maps both coarse cells to application 0 funnels
	// four children into a two-slot row.
	coarse.RenumberCells([]int{0, 0})

	_, err := BuildCoarseToFine(coarse, fine)
	if !errors.Is(err, ErrNonConformingRefinement) {
		t.Fatalf("expected ErrNonConformingRefinement, got %v", err)
	}
}

func TestBuildCoarseToFine_CoarseOutOfRange(t *testing.T) {
	// Worker 0 owns coarse globals {0,1} plus ghost {2}. A numbering
	// that gives an owned cell a ghost-range application index breaks
	// the owned-cells-first numbering contract.
	workers := boxmesh.Distribute(boxmesh.NewInterval(4), 2)
	coarse := workers[0]
	fine := coarse.Refine()
	coarse.RenumberCells([]int{2, 0, 1})

	_, err := BuildCoarseToFine(coarse, fine)
	if !errors.Is(err, ErrPartitionInvariantViolation) {
		t.Fatalf("expected ErrPartitionInvariantViolation, got %v", err)
	}
}

// brokenFine drops one owned global from the fine non-overlapped map,
// breaking the partitioner's growth contract.
type brokenFine struct {
	mesh.Mesh
	nonOv partitions.IndexMap
}

func (b *brokenFine) NonOverlappedCellMap() partitions.IndexMap { return b.nonOv }

func TestBuildCoarseToFine_PartitionInvariantViolation(t *testing.T) {
	workers := boxmesh.Distribute(boxmesh.NewInterval(4), 2)
	coarse := workers[0]
	fine := coarse.Refine()

	full := fine.NonOverlappedCellMap()
	owned := full.Apply([]int{0, 1, 2}) // one owned global short of four
	broken := &brokenFine{Mesh: fine, nonOv: partitions.NewLGMap(owned)}

	_, err := BuildCoarseToFine(coarse, broken)
	if !errors.Is(err, ErrPartitionInvariantViolation) {
		t.Fatalf("expected ErrPartitionInvariantViolation, got %v", err)
	}
}
