// Package multigrid builds the coarse-to-fine cell correspondence a
// geometric multigrid hierarchy needs, consistent across workers, in
// terms of the application cell numbering.
package multigrid

import (
	"errors"
	"fmt"

	"github.com/notargets/mgmesh/mesh"
	"github.com/notargets/mgmesh/numbering"
	"github.com/notargets/mgmesh/partitions"
)

// Unset marks an empty child slot in the coarse-to-fine table.
const Unset numbering.AppID = -1

// ErrNonConformingRefinement reports a coarse cell with more than
// 2^dim fine children: the fine mesh is not a uniform bisection
// refinement of the coarse mesh. Fatal internal-consistency failure.
var ErrNonConformingRefinement = errors.New("non-conforming refinement")

// ErrPartitionInvariantViolation reports an owned cell that failed to
// resolve across partition numberings: the partitioner's overlap-growth
// contract is broken upstream. Fatal internal-consistency failure.
var ErrPartitionInvariantViolation = errors.New("partition invariant violation")

// BuildCoarseToFine returns, for each owned coarse cell of the coarse
// mesh, the application indices of its 2^dim fine children on the fine
// mesh. Row c (indexed by coarse application cell) holds the children
// of coarse cell c in the order the fine cells are visited by
// application index; a slot left Unset means the child is not owned by
// this worker (ghost-only coarse rows stay entirely Unset).
//
// Precondition: fine is the uniform bisection refinement of coarse, so
// that in non-overlapped topology-native numbering every fine cell f
// descends from coarse cell f/2^dim. On a distributed run both meshes
// must carry their partition index maps, and owned cells must keep
// their relative order ahead of ghosts in the overlapped numbering.
func BuildCoarseToFine(coarse, fine mesh.Mesh) ([][]numbering.AppID, error) {
	dim := coarse.Dimension()
	nref := 1 << uint(dim)
	ncoarse := coarse.NumOwnedCells()
	nfine := fine.NumOwnedCells()

	// Coarse: topology-native to application. Fine: application back to
	// topology-native.
	coarseOldToNew, _, err := numbering.BuildRenumbering(coarse.Topology(), coarse.CellNumbering(), numbering.Cell)
	if err != nil {
		return nil, err
	}
	_, fineNewToOld, err := numbering.BuildRenumbering(fine.Topology(), fine.CellNumbering(), numbering.Cell)
	if err != nil {
		return nil, err
	}

	if coarse.NonOverlappedCellMap() != nil {
		coarseOldToNew, fineNewToOld = translateToNonOverlapped(coarse, fine, coarseOldToNew, fineNewToOld)
	}

	table := make([][]numbering.AppID, ncoarse)
	for c := range table {
		row := make([]numbering.AppID, nref)
		for i := range row {
			row[i] = Unset
		}
		table[c] = row
	}

	for c := 0; c < nfine; c++ {
		// Non-overlapped topology-native index of owned fine cell c.
		fcell := fineNewToOld[c]
		if fcell < 0 || fcell >= nfine {
			return nil, fmt.Errorf("%w: owned fine cell %d resolved to non-overlapped index %d (owned range [0,%d))",
				ErrPartitionInvariantViolation, c, fcell, nfine)
		}

		// Parent in non-overlapped numbering, then forward to the
		// application-numbered coarse cell. Owned fine cells descend
		// from owned coarse cells.
		parent := fcell / nref
		if parent >= len(coarseOldToNew) {
			return nil, fmt.Errorf("%w: fine cell %d has parent %d beyond the %d non-overlapped coarse cells",
				ErrPartitionInvariantViolation, c, parent, len(coarseOldToNew))
		}
		ccell := coarseOldToNew[parent]
		if ccell < 0 || int(ccell) >= ncoarse {
			return nil, fmt.Errorf("%w: coarse parent %d of fine cell %d resolved to application index %d (owned range [0,%d))",
				ErrPartitionInvariantViolation, parent, c, ccell, ncoarse)
		}

		if !placeChild(table[ccell], numbering.AppID(c)) {
			return nil, fmt.Errorf("%w: coarse cell %d already has %d children, cannot place fine cell %d",
				ErrNonConformingRefinement, ccell, nref, c)
		}
	}
	return table, nil
}

// translateToNonOverlapped rewrites both renumbering arrays so the main
// loop can work purely in non-overlapped topology-native indices.
//
// The fine new-to-old array holds overlapped-local indices (the fine
// section lives on the overlapped topology); each is pushed forward to
// its global id and back through the non-overlapped map with Mask, so
// positions keep lining up with application indices. Entries for ghost
// fine cells mask to Unmapped and sit beyond the owned range.
//
// The coarse old-to-new array is indexed by overlapped-local position;
// gathering it through the Drop-mode image of the full overlapped range
// re-aligns it with the non-overlapped cell order (ghost cells, absent
// from the non-overlapped map, drop out).
func translateToNonOverlapped(coarse, fine mesh.Mesh, coarseOldToNew []numbering.AppID, fineNewToOld []int) ([]numbering.AppID, []int) {
	ct := partitions.NewTranslator(coarse.NonOverlappedCellMap(), coarse.OverlappedCellMap())
	ft := partitions.NewTranslator(fine.NonOverlappedCellMap(), fine.OverlappedCellMap())

	fineLocal := make([]partitions.OverlappedID, len(fineNewToOld))
	for i, p := range fineNewToOld {
		fineLocal[i] = partitions.OverlappedID(p)
	}
	fineNonOv := ft.ToNonOverlappedLocal(ft.ToGlobal(fineLocal), partitions.Mask)
	translated := make([]int, len(fineNonOv))
	for i, p := range fineNonOv {
		translated[i] = int(p)
	}

	idx := ct.ToNonOverlappedLocal(
		ct.ToGlobal(partitions.OverlappedRange(coarse.NumCells())), partitions.Drop)
	permuted := make([]numbering.AppID, len(idx))
	for k, q := range idx {
		permuted[k] = coarseOldToNew[q]
	}
	return permuted, translated
}

// placeChild inserts a fine cell into the first Unset slot of a row.
func placeChild(row []numbering.AppID, c numbering.AppID) bool {
	for i := range row {
		if row[i] == Unset {
			row[i] = c
			return true
		}
	}
	return false
}
