package masterdata

import "errors"

var (
	// ErrNotFound is returned when a master-data record does not exist.
	ErrNotFound = errors.New("masterdata: not found")
)
