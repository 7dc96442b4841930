package mesh

import "github.com/notargets/mgmesh/partitions"

// Mesh is the mesh-object collaborator consumed by the coarse-to-fine
// correspondence builder. On a distributed run each worker holds its
// own Mesh covering the overlapped (ghosted) local partition.
type Mesh interface {
	// Topology returns the mesh's topology handle.
	Topology() Topology

	// CellNumbering returns the application cell-numbering section over
	// the topology's cell stratum. Owned cells are numbered
	// [0, NumOwnedCells) with ghosts after, per the upstream numbering
	// contract.
	CellNumbering() Section

	// NumOwnedCells returns the count of cells owned by this worker.
	NumOwnedCells() int

	// NumCells returns the total local cell count, owned plus ghost.
	NumCells() int

	// Dimension returns the topological dimension.
	Dimension() int

	// NonOverlappedCellMap and OverlappedCellMap return the partition
	// index maps for cells. Both are nil on a single worker, where no
	// translation is needed and none should be built.
	NonOverlappedCellMap() partitions.IndexMap
	OverlappedCellMap() partitions.IndexMap
}
