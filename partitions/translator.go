package partitions

// Translator pairs the two index maps of one distributed mesh and
// translates index arrays between its numbering systems: overlapped
// local indices forward to global ids, and global ids back to
// non-overlapped local indices.
//
// A single-worker mesh needs no translation at all; do not build a
// Translator (or the underlying maps) for one.
type Translator struct {
	nonOverlapped IndexMap
	overlapped    IndexMap
}

// NewTranslator wraps a mesh's non-overlapped and overlapped index maps.
func NewTranslator(nonOverlapped, overlapped IndexMap) *Translator {
	return &Translator{nonOverlapped: nonOverlapped, overlapped: overlapped}
}

// ToGlobal translates overlapped-local indices to global ids. Total:
// every local index, owned or ghost, has a global id.
func (t *Translator) ToGlobal(local []OverlappedID) []GlobalID {
	raw := make([]int, len(local))
	for i, l := range local {
		raw[i] = int(l)
	}
	return t.overlapped.Apply(raw)
}

// ToNonOverlappedLocal translates global ids to non-overlapped local
// indices. Ids with no non-overlapped counterpart on this worker are
// masked with Unmapped or dropped, per mode.
func (t *Translator) ToNonOverlappedLocal(global []GlobalID, mode InverseMode) []NonOverlappedID {
	raw := t.nonOverlapped.ApplyInverse(global, mode)
	local := make([]NonOverlappedID, len(raw))
	for i, l := range raw {
		local[i] = NonOverlappedID(l)
	}
	return local
}

// NumOverlapped returns the overlapped-local index count.
func (t *Translator) NumOverlapped() int {
	return t.overlapped.NumLocal()
}

// OverlappedRange returns the full overlapped-local index range [0, n).
func OverlappedRange(n int) []OverlappedID {
	r := make([]OverlappedID, n)
	for i := range r {
		r[i] = OverlappedID(i)
	}
	return r
}
