package mandel

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration      = errors.New("invalid configuration")
	ErrDegenerateViewport = errors.New("degenerate viewport")
	ErrPaletteIndex       = errors.New("palette index out of range")
)

// ConfigError is returned by New when a Config field is unusable.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrConfiguration, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrConfiguration }

// ViewportError reports an axis range whose span cannot be scaled onto pixels.
type ViewportError struct {
	Axis  string
	Range Range
}

func (e *ViewportError) Error() string {
	return fmt.Sprintf("%v: %s axis %s", ErrDegenerateViewport, e.Axis, e.Range)
}

func (e *ViewportError) Unwrap() error { return ErrDegenerateViewport }

type PaletteIndexError struct {
	Index int
	Len   int
}

func (e *PaletteIndexError) Error() string {
	return fmt.Sprintf("%v: index %d, palette has %d colors", ErrPaletteIndex, e.Index, e.Len)
}

func (e *PaletteIndexError) Unwrap() error { return ErrPaletteIndex }
