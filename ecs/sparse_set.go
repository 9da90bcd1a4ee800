package ecs

import "sort"

const absent int32 = -1

// SparseSet maps sparse entity ids to a tightly packed dense array.
// sparse[id] holds the dense position of id, or -1 when id is absent, and
// sparse[dense[i]] == i holds for every dense position i.
//
// The zero value is an empty set ready for use.
type SparseSet struct {
	sparse []int32
	dense  []EntityId
}

// NewSparseSet creates a set with room for capacity dense entries
func NewSparseSet(capacity int) *SparseSet {
	return &SparseSet{
		dense: make([]EntityId, 0, capacity),
	}
}

// pad grows the sparse array with -1 until id is addressable
func (s *SparseSet) pad(id EntityId) {
	for i := len(s.sparse); i <= int(id); i++ {
		s.sparse = append(s.sparse, absent)
	}
}

// Insert appends id to the dense array.
// The caller guarantees id is not already present; a double insert breaks the packing.
func (s *SparseSet) Insert(id EntityId) {
	if int(id) >= len(s.sparse) {
		s.pad(id)
	}
	s.sparse[id] = int32(len(s.dense))
	s.dense = append(s.dense, id)
}

// Remove swaps id with the last dense entry, pops it, and marks id absent.
// The caller guarantees id is present.
func (s *SparseSet) Remove(id EntityId) {
	last := s.dense[len(s.dense)-1]
	s.Swap(id, last)
	s.dense = s.dense[:len(s.dense)-1]
	s.sparse[id] = absent
}

// Swap exchanges the dense positions of two present ids.
func (s *SparseSet) Swap(a, b EntityId) {
	ia, ib := s.sparse[a], s.sparse[b]
	s.dense[ia], s.dense[ib] = s.dense[ib], s.dense[ia]
	s.sparse[a], s.sparse[b] = ib, ia
}

// Index returns the dense position of id, or -1 when absent
func (s *SparseSet) Index(id EntityId) int {
	if int(id) >= len(s.sparse) {
		return -1
	}
	return int(s.sparse[id])
}

// Find returns the dense position of id
func (s *SparseSet) Find(id EntityId) (int, bool) {
	idx := s.Index(id)
	return idx, idx >= 0
}

// Has reports whether id is in the set
func (s *SparseSet) Has(id EntityId) bool {
	return int(id) < len(s.sparse) && s.sparse[id] != absent
}

// Len is the number of ids in the set
func (s *SparseSet) Len() int {
	return len(s.dense)
}

// Extent is the size of the sparse array, one past the largest id ever inserted.
func (s *SparseSet) Extent() int {
	return len(s.sparse)
}

// Entities returns the dense id array. The slice aliases internal storage and is
// only valid until the next structural change.
func (s *SparseSet) Entities() []EntityId {
	return s.dense
}

// Back returns the last dense id. The set must not be empty.
func (s *SparseSet) Back() EntityId {
	return s.dense[len(s.dense)-1]
}

// Clear empties both arrays while keeping their capacity
func (s *SparseSet) Clear() {
	s.sparse = s.sparse[:0]
	s.dense = s.dense[:0]
}

// Clone returns an independent copy of the set
func (s *SparseSet) Clone() *SparseSet {
	return &SparseSet{
		sparse: append([]int32(nil), s.sparse...),
		dense:  append([]EntityId(nil), s.dense...),
	}
}

// SortFunc reorders the dense array so that less(dense[i], dense[j]) holds for i < j.
func (s *SparseSet) SortFunc(less func(a, b EntityId) bool) {
	sort.Sort(&idSorter{set: s, less: less})
}

type idSorter struct {
	set  *SparseSet
	less func(a, b EntityId) bool
}

func (is *idSorter) Len() int { return len(is.set.dense) }
func (is *idSorter) Less(i, j int) bool {
	return is.less(is.set.dense[i], is.set.dense[j])
}
func (is *idSorter) Swap(i, j int) { is.set.Swap(is.set.dense[i], is.set.dense[j]) }
