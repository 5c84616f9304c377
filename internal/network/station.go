package network

import (
	"errors"
	"fmt"
)

// Errors returned when a network invariant would be violated
var (
	ErrInvalidStation  = errors.New("invalid station")
	ErrInvalidLine     = errors.New("invalid line")
	ErrDuplicate       = errors.New("duplicate entry")
	ErrUnknownStation  = errors.New("unknown station")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Station is a stop in the network, identified by its code
type Station struct {
	code string
	name string
}

// NewStation creates a station. Both code and name are required.
func NewStation(code, name string) (*Station, error) {
	if code == "" || name == "" {
		return nil, fmt.Errorf("%w: code and name must not be empty", ErrInvalidStation)
	}
	return &Station{code: code, name: name}, nil
}

// Code returns the unique station code
func (s *Station) Code() string { return s.code }

// Name returns the display name
func (s *Station) Name() string { return s.name }

// Equal reports whether both stations share the same code.
// Two nil stations are equal.
func (s *Station) Equal(other *Station) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.code == other.code
}

func (s *Station) String() string {
	return s.name
}
