package model

import (
	"fmt"
)

// Vector is the access pattern of a single client.
// Each component corresponds to one resource and holds its access frequency in [0,1].
type Vector []float64

// Copy returns an independent copy of the vector.
func (v Vector) Copy() Vector {
	c := make(Vector, len(v))
	copy(c, v)
	return c
}

// Dataset is an ordered set of vectors, indexed by client.
type Dataset []Vector

// NewDataset creates a dataset from the raw vectors.
// The vectors are copied, so later changes to the input are not visible.
func NewDataset(vv [][]float64) Dataset {
	ds := make(Dataset, len(vv))
	for i, v := range vv {
		ds[i] = Vector(v).Copy()
	}
	return ds
}

// Raw returns the dataset as plain float slices e.g. for storage.
func (ds Dataset) Raw() [][]float64 {
	vv := make([][]float64, len(ds))
	for i, v := range ds {
		vv[i] = v.Copy()
	}
	return vv
}

// check makes sure all vectors have the given dimension.
func (ds Dataset) check(dim int) error {
	for i, v := range ds {
		if len(v) != dim {
			return fmt.Errorf("vector %d has dimension %d instead of %d: %w", i, len(v), dim, ConfigErr)
		}
	}
	return nil
}

// Space holds the training and test vectors of a run.
// Index i in Train and index i in Test refer to the same client.
type Space struct {
	Dim   int
	Train Dataset
	Test  Dataset
}

// NewSpace validates and creates a new vector space.
func NewSpace(dim int, train, test [][]float64) (*Space, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("dimension must be positive but was %d: %w", dim, ConfigErr)
	}
	if len(train) == 0 {
		return nil, fmt.Errorf("empty training set: %w", ConfigErr)
	}
	if len(train) != len(test) {
		return nil, fmt.Errorf("training and test set sizes do not match [ %d | %d ]: %w", len(train), len(test), ConfigErr)
	}
	s := &Space{
		Dim:   dim,
		Train: NewDataset(train),
		Test:  NewDataset(test),
	}
	if err := s.Train.check(dim); err != nil {
		return nil, fmt.Errorf("invalid training set: %w", err)
	}
	if err := s.Test.check(dim); err != nil {
		return nil, fmt.Errorf("invalid test set: %w", err)
	}
	return s, nil
}

// Size returns the number of clients.
func (s *Space) Size() int {
	return len(s.Train)
}
