package dict

import "errors"

// Common domain errors
var (
	ErrNotFound         = errors.New("entry not found")
	ErrNotInstalled     = errors.New("data set not installed")
	ErrUpdateInProgress = errors.New("update already in progress")
)
