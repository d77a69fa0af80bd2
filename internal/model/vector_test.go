package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSpace(t *testing.T) {

	type test struct {
		dim   int
		train [][]float64
		test  [][]float64
		err   bool
	}

	tests := map[string]test{
		"valid": {
			dim:   2,
			train: [][]float64{{1, 0}, {0, 1}},
			test:  [][]float64{{0.5, 0.5}, {0, 1}},
		},
		"zero-dim": {
			dim:   0,
			train: [][]float64{{}},
			test:  [][]float64{{}},
			err:   true,
		},
		"empty": {
			dim: 2,
			err: true,
		},
		"length-mismatch": {
			dim:   2,
			train: [][]float64{{1, 0}, {0, 1}},
			test:  [][]float64{{1, 0}},
			err:   true,
		},
		"train-dim-mismatch": {
			dim:   2,
			train: [][]float64{{1, 0, 0}},
			test:  [][]float64{{1, 0}},
			err:   true,
		},
		"test-dim-mismatch": {
			dim:   2,
			train: [][]float64{{1, 0}},
			test:  [][]float64{{1}},
			err:   true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			space, err := NewSpace(tt.dim, tt.train, tt.test)
			if tt.err {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, ConfigErr))
				assert.Nil(t, space)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.train), space.Size())
			assert.Equal(t, tt.dim, space.Dim)
		})
	}
}

func TestNewSpace_Copies(t *testing.T) {
	train := [][]float64{{1, 0}}
	test := [][]float64{{0, 1}}
	space, err := NewSpace(2, train, test)
	require.NoError(t, err)

	train[0][0] = 0.3
	test[0][1] = 0.3

	assert.Equal(t, Vector{1, 0}, space.Train[0])
	assert.Equal(t, Vector{0, 1}, space.Test[0])
	assert.Equal(t, [][]float64{{1, 0}}, space.Train.Raw())
}
