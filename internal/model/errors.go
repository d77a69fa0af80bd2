package model

import "errors"

var (
	// ConfigErr marks invalid input or hyperparameters, detected before any training starts.
	ConfigErr = errors.New("invalid configuration")
)
