package storage

import (
	"errors"
	"fmt"
)

const (
	// DataDir is the table for the train and test datasets.
	DataDir = "data"
	// ReportDir is the table for the evaluation reports.
	ReportDir = "report"
)

// DefaultDir is the root directory of the file storages.
// Storages capture it on creation, tests point it to a temporary directory.
var DefaultDir = "file-storage"

// Shard creates a new storage implementation for the given shard.
type Shard func(shard string) (Persistence, error)

var (
	NotFoundErr     = errors.New("not found")
	CouldNotLoadErr = errors.New("could not load")
)

// Key is the storage key for a general implementation
type Key struct {
	Hash  int64  `json:"hash"`
	Name  string `json:"name"`
	Label string `json:"label"`
}

// Path is the file name of the key.
func (k Key) Path() string {
	return fmt.Sprintf("%s_%v_%s", k.Name, k.Hash, k.Label)
}

// Persistence stores and loads json serializable values.
type Persistence interface {
	Store(k Key, value interface{}) error
	Load(k Key, value interface{}) error
}
