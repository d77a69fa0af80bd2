package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

// Members is a set of client indices.
// Equality does not depend on insertion order.
// The zero value is an empty, read-only set, use NewMembers to create a writable one.
type Members struct {
	bitmap *roaring.Bitmap
}

// NewMembers creates a new set with the given clients.
func NewMembers(ids ...int) Members {
	m := Members{bitmap: roaring.New()}
	for _, id := range ids {
		m.Add(id)
	}
	return m
}

// Add adds the client to the set.
func (m Members) Add(id int) {
	m.bitmap.Add(uint32(id))
}

// Contains checks if the client is part of the set.
func (m Members) Contains(id int) bool {
	if m.bitmap == nil {
		return false
	}
	return m.bitmap.Contains(uint32(id))
}

// Size returns the number of clients in the set.
func (m Members) Size() int {
	if m.bitmap == nil {
		return 0
	}
	return int(m.bitmap.GetCardinality())
}

// Clear removes all clients.
func (m Members) Clear() {
	if m.bitmap == nil {
		return
	}
	m.bitmap.Clear()
}

// Equals checks if both sets hold exactly the same clients.
func (m Members) Equals(o Members) bool {
	if m.bitmap == nil || o.bitmap == nil {
		return m.Size() == 0 && o.Size() == 0
	}
	return m.bitmap.Equals(o.bitmap)
}

// Clone returns an independent copy of the set.
func (m Members) Clone() Members {
	if m.bitmap == nil {
		return NewMembers()
	}
	return Members{bitmap: m.bitmap.Clone()}
}

// IDs returns the clients in ascending order.
func (m Members) IDs() []int {
	ids := make([]int, 0, m.Size())
	if m.bitmap == nil {
		return ids
	}
	m.bitmap.Iterate(func(x uint32) bool {
		ids = append(ids, int(x))
		return true
	})
	return ids
}

func (m Members) String() string {
	ids := m.IDs()
	ss := make([]string, len(ids))
	for i, id := range ids {
		ss[i] = fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("{%s}", strings.Join(ss, ", "))
}

// MarshalJSON encodes the set as a sorted list of client indices.
func (m Members) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.IDs())
}

// UnmarshalJSON decodes the set from a list of client indices.
func (m *Members) UnmarshalJSON(b []byte) error {
	var ids []int
	if err := json.Unmarshal(b, &ids); err != nil {
		return fmt.Errorf("could not decode members: %w", err)
	}
	*m = NewMembers(ids...)
	return nil
}
