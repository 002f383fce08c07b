package relation

import "errors"

var (
	ErrWriteUnavailable = errors.New("relation write api not configured")
	ErrReadUnavailable  = errors.New("relation read api not configured")
	ErrWriteFailed      = errors.New("relation write failed")
	ErrReadFailed       = errors.New("relation read failed")
)
