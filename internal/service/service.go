// Package service wraps each HRMS domain client with typed operations.
// Every call is a single roundtrip; backend and transport errors are returned
// unchanged so callers can inspect them with errors.Is/As.
package service

import (
	"errors"
	"fmt"
)

// Page sizes used when a filter leaves Limit at zero.
const (
	DefaultPageLimit         = 100
	DefaultEnvelopePageLimit = 50
)

// ErrInvalidArgument is returned before any I/O when a call cannot be valid.
var ErrInvalidArgument = errors.New("invalid argument")

func checkID(name string, id int) error {
	if id <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidArgument, name, id)
	}
	return nil
}

func checkPage(offset, limit int) error {
	if offset < 0 {
		return fmt.Errorf("%w: offset must be >= 0, got %d", ErrInvalidArgument, offset)
	}
	if limit <= 0 {
		return fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidArgument, limit)
	}
	return nil
}

func limitOrDefault(limit, def int) int {
	if limit == 0 {
		return def
	}
	return limit
}
