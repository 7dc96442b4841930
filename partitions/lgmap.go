// Package partitions provides the index-map layer that relates the
// numbering systems of a distributed mesh: the local numbering of the
// non-overlapped partition (before ghost growth), the local numbering of
// the overlapped partition (including ghosts), and the global numbering
// shared by all workers.
package partitions

// The four numbering systems a distributed mesh juggles get distinct
// integer types so the compiler rejects accidental cross-use. The fourth
// system, the application (solver) numbering, lives in the numbering
// package.

// GlobalID identifies a mesh entity globally, stable across workers and
// across overlap growth.
type GlobalID int

// OverlappedID is a local index on the overlapped (ghosted) partition,
// the partition computation actually runs on.
type OverlappedID int

// NonOverlappedID is a local index on the non-overlapped partition, the
// partition before ghost growth.
type NonOverlappedID int

// Unmapped is the sentinel written by Mask-mode inverse application for
// global ids with no local counterpart.
const Unmapped = -1

// InverseMode selects the failure policy of ApplyInverse for global ids
// unknown on this worker.
type InverseMode uint8

const (
	// Mask preserves the input length, replacing unknown entries with
	// Unmapped. Use when positional correspondence with another array
	// must survive the translation.
	Mask InverseMode = iota

	// Drop omits unknown entries, shrinking the output. Use when only
	// the locally present subset matters.
	Drop
)

// IndexMap is the partition index-map collaborator. Apply is total:
// every local index, owned or ghost, has a global id. ApplyInverse is
// partial, with out-of-range handling chosen by mode. Implementations
// may perform collective communication; both operations are atomic,
// blocking calls from the caller's point of view.
type IndexMap interface {
	Apply(local []int) []GlobalID
	ApplyInverse(global []GlobalID, mode InverseMode) []int
	NumLocal() int
}

// LGMap is an in-memory IndexMap: a globals slice for the forward
// direction and a reverse hash map for the inverse.
type LGMap struct {
	globals []GlobalID
	local   map[GlobalID]int
}

var _ IndexMap = &LGMap{}

// NewLGMap creates a local-to-global map from the global id of each
// local index. The slice is retained, not copied.
func NewLGMap(globals []GlobalID) *LGMap {
	local := make(map[GlobalID]int, len(globals))
	for i, g := range globals {
		local[g] = i
	}
	return &LGMap{globals: globals, local: local}
}

// NumLocal returns the number of local indices covered by the map.
func (m *LGMap) NumLocal() int {
	return len(m.globals)
}

// Apply maps local indices to global ids. Out-of-range local indices
// are a caller contract violation.
func (m *LGMap) Apply(local []int) []GlobalID {
	global := make([]GlobalID, len(local))
	for i, l := range local {
		global[i] = m.globals[l]
	}
	return global
}

// ApplyInverse maps global ids back to local indices. Unknown ids are
// masked with Unmapped or dropped, per mode.
func (m *LGMap) ApplyInverse(global []GlobalID, mode InverseMode) []int {
	local := make([]int, 0, len(global))
	for _, g := range global {
		l, ok := m.local[g]
		switch {
		case ok:
			local = append(local, l)
		case mode == Mask:
			local = append(local, Unmapped)
		}
	}
	return local
}
