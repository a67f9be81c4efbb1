// Package export writes cleaned feature tables to files.
//
// Exports are output formats, not stores: every Write replaces what the
// file held before and nothing in soundstats reads an export back.
package export

import (
	"context"

	"github.com/jfmyers9/soundstats/pkg/frame"
)

// Sink receives cleaned feature tables.
type Sink interface {
	Write(ctx context.Context, table *frame.Frame) error
	Close() error
}
