package domain

import (
	"encoding/json"
	"slices"
)

// IDSet is an immutable set of string ids.
//
// The zero value is an empty set. Toggle returns a new set and leaves the
// receiver untouched, so two IDSet values can be compared for change by
// checking whether a toggle happened at all.
type IDSet struct {
	m map[string]struct{}
}

// NewIDSet builds a set from ids. Duplicates collapse.
func NewIDSet(ids ...string) IDSet {
	if len(ids) == 0 {
		return IDSet{}
	}
	m := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return IDSet{m: m}
}

// Has reports membership.
func (s IDSet) Has(id string) bool {
	_, ok := s.m[id]
	return ok
}

// Len returns the number of members.
func (s IDSet) Len() int {
	return len(s.m)
}

// IDs returns the members in sorted order.
func (s IDSet) IDs() []string {
	out := make([]string, 0, len(s.m))
	for id := range s.m {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Toggle returns a copy of s with id's membership flipped. A toggle that
// empties the set yields the zero value, so toggling twice round-trips to a
// deep-equal set.
func (s IDSet) Toggle(id string) IDSet {
	m := make(map[string]struct{}, len(s.m)+1)
	for k := range s.m {
		m[k] = struct{}{}
	}
	if _, ok := m[id]; ok {
		delete(m, id)
	} else {
		m[id] = struct{}{}
	}
	if len(m) == 0 {
		return IDSet{}
	}
	return IDSet{m: m}
}

// Equal reports whether both sets hold the same members.
func (s IDSet) Equal(other IDSet) bool {
	if len(s.m) != len(other.m) {
		return false
	}
	for id := range s.m {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the set as a sorted array.
func (s IDSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IDs())
}

// UnmarshalJSON decodes an array of ids.
func (s *IDSet) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewIDSet(ids...)
	return nil
}
