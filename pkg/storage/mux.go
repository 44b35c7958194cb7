package storage

import (
	"context"
	"fmt"
	"strings"
)

// Mux routes locations to sources by URL scheme.
// Locations without a scheme (plain paths) and "file://" go to the local source.
type Mux struct {
	local   Source
	schemes map[string]Source
}

// MuxOption configures a Mux.
type MuxOption func(*Mux)

// WithScheme registers src for locations starting with scheme + "://".
func WithScheme(scheme string, src Source) MuxOption {
	return func(m *Mux) {
		if scheme != "" && src != nil {
			m.schemes[strings.ToLower(scheme)] = src
		}
	}
}

// NewMux creates a Mux with local as the source for plain paths.
func NewMux(local Source, opts ...MuxOption) *Mux {
	m := &Mux{
		local:   local,
		schemes: make(map[string]Source),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Open implements Source.
func (m *Mux) Open(ctx context.Context, location string) (*File, error) {
	scheme, _ := splitScheme(location)
	if scheme == "" || scheme == "file" {
		if m.local == nil {
			return nil, fmt.Errorf("%w: local files are disabled", ErrUnsupportedScheme)
		}
		return m.local.Open(ctx, location)
	}

	src, ok := m.schemes[scheme]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, scheme)
	}
	return src.Open(ctx, location)
}
