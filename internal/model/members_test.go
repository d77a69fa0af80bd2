package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMembers_Equals(t *testing.T) {

	type test struct {
		a, b  []int
		equal bool
	}

	tests := map[string]test{
		"empty": {
			equal: true,
		},
		"same-order": {
			a:     []int{1, 2, 3},
			b:     []int{1, 2, 3},
			equal: true,
		},
		"different-order": {
			a:     []int{3, 1, 2},
			b:     []int{2, 3, 1},
			equal: true,
		},
		"duplicates": {
			a:     []int{1, 1, 2},
			b:     []int{2, 1},
			equal: true,
		},
		"subset": {
			a: []int{1, 2},
			b: []int{1, 2, 3},
		},
		"disjoint": {
			a: []int{0},
			b: []int{1},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			a := NewMembers(tt.a...)
			b := NewMembers(tt.b...)
			assert.Equal(t, tt.equal, a.Equals(b))
			assert.Equal(t, tt.equal, b.Equals(a))
		})
	}
}

func TestMembers_Lifecycle(t *testing.T) {
	m := NewMembers()
	assert.Equal(t, 0, m.Size())

	m.Add(5)
	m.Add(2)
	m.Add(9)
	assert.Equal(t, 3, m.Size())
	assert.True(t, m.Contains(2))
	assert.False(t, m.Contains(3))
	assert.Equal(t, []int{2, 5, 9}, m.IDs())
	assert.Equal(t, "{2, 5, 9}", m.String())

	c := m.Clone()
	m.Clear()
	assert.Equal(t, 0, m.Size())
	assert.Equal(t, 3, c.Size())
}

func TestMembers_Json(t *testing.T) {
	m := NewMembers(4, 1, 7)
	b, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "[1,4,7]", string(b))

	var n Members
	err = json.Unmarshal(b, &n)
	require.NoError(t, err)
	assert.True(t, m.Equals(n))
}

func TestMembers_ZeroValue(t *testing.T) {
	var m Members
	assert.Equal(t, 0, m.Size())
	assert.False(t, m.Contains(0))
	assert.Equal(t, []int{}, m.IDs())
	assert.True(t, m.Equals(NewMembers()))
	assert.False(t, m.Equals(NewMembers(1)))
	m.Clear()

	c := m.Clone()
	c.Add(3)
	assert.Equal(t, 1, c.Size())

	b, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}
