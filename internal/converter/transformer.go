// =============================================================================
// E911 CSV Converter - Row Transformer
// =============================================================================
//
// This module turns one decoded source record into one output record. It
// runs two stages in order:
//
//   1. Projection:      the column index map reorders and selects fields
//   2. Post-processing: a PostProcessor enriches and normalizes the
//                       projected record (for the e911 profile, the
//                       dispatch.Normalizer)
//
// The transformer only depends on the mapping produced by the schema
// package, not on how it was built.
//
// =============================================================================

package converter

import (
	"github.com/ginjaninja78/e911-csv-converter/internal/schema"
	"github.com/ginjaninja78/e911-csv-converter/internal/types"
)

// =============================================================================
// POST-PROCESSORS
// =============================================================================

// PostProcessor is applied to every projected record, once, in input order.
// Implementations may keep per-run state such as a sequence counter.
type PostProcessor interface {
	Process(rec types.Record) (types.Record, error)
}

// WidthAware is implemented by post-processors that require a fixed
// projected record width. The converter checks it against the destination
// schema before reading any input.
type WidthAware interface {
	InputWidth() int
}

// ProcessorFunc adapts an ordinary function to the PostProcessor interface.
type ProcessorFunc func(rec types.Record) (types.Record, error)

// Process calls f(rec).
func (f ProcessorFunc) Process(rec types.Record) (types.Record, error) {
	return f(rec)
}

// Identity passes projected records through unchanged.
var Identity PostProcessor = ProcessorFunc(func(rec types.Record) (types.Record, error) {
	return rec, nil
})

// =============================================================================
// TRANSFORMER
// =============================================================================

// Transformer chains projection and post-processing.
type Transformer struct {
	mapping schema.IndexMap
	post    PostProcessor
}

// NewTransformer creates a Transformer. A nil post-processor means Identity.
func NewTransformer(mapping schema.IndexMap, post PostProcessor) *Transformer {
	if post == nil {
		post = Identity
	}
	return &Transformer{
		mapping: mapping,
		post:    post,
	}
}

// Transform applies both stages to a source record.
//
// RETURNS:
//   - The output record.
//   - *types.RecordShapeError if rec is too short for the mapping, or any
//     error returned by the post-processor.
func (t *Transformer) Transform(rec types.Record) (types.Record, error) {
	projected, err := t.mapping.Project(rec)
	if err != nil {
		return nil, err
	}
	return t.post.Process(projected)
}

// Mapping returns the column index map in use.
func (t *Transformer) Mapping() schema.IndexMap {
	return t.mapping
}
