package price

import "errors"

var (
	ErrMissingStock     = errors.New("snapshot missing stock reference")
	ErrNegativePrice    = errors.New("price must be non-negative")
	ErrNegativeVolume   = errors.New("volume must be non-negative")
	ErrMissingTimestamp = errors.New("snapshot missing observed timestamp")
)
