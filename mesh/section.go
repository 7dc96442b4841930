package mesh

// Section is the numbering-section collaborator: a mapping from
// topology point to (degree-of-freedom count, offset). A point with
// zero dof count is not numbered for the entity type the section
// covers. Sections are computed upstream and read-only here.
type Section interface {
	Dof(point int) int
	Offset(point int) int
}

// NumberingSection is an in-memory Section over a chart sub-range.
type NumberingSection struct {
	pStart  int
	dofs    []int
	offsets []int
}

var _ Section = &NumberingSection{}

// NewNumberingSection creates an empty section over [pStart, pEnd);
// all points start with zero dofs.
func NewNumberingSection(pStart, pEnd int) *NumberingSection {
	n := pEnd - pStart
	return &NumberingSection{
		pStart:  pStart,
		dofs:    make([]int, n),
		offsets: make([]int, n),
	}
}

// SetDof sets the dof count of a point.
func (s *NumberingSection) SetDof(point, n int) {
	s.dofs[point-s.pStart] = n
}

// SetOffset sets the numbering offset of a point.
func (s *NumberingSection) SetOffset(point, offset int) {
	s.offsets[point-s.pStart] = offset
}

func (s *NumberingSection) Dof(point int) int {
	return s.dofs[point-s.pStart]
}

func (s *NumberingSection) Offset(point int) int {
	return s.offsets[point-s.pStart]
}
