package quote

import "errors"

var (
	// ErrNoData means the source answered but had no usable data points
	ErrNoData = errors.New("no quote data for symbol")

	// ErrSourceError means the source reported an application-level error
	// in an otherwise successful HTTP response
	ErrSourceError = errors.New("quote source reported an error")
)
