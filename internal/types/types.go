// =============================================================================
// E911 CSV Converter - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - schema     (projection of source records)
//   - dispatch   (911 record normalization)
//   - converter  (pipeline driver)
//   - csvparser / csvwriter (the record codec)
//
// =============================================================================

package types

// =============================================================================
// RECORD TYPES
// =============================================================================

// Record is one decoded CSV row: an ordered sequence of field values,
// positionally aligned to a schema.
//
// Source records and destination records share this representation. Which
// schema a Record belongs to is decided by the stage that produced it.
type Record []string

// Clone returns a copy of the record that shares no backing array with r.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	copy(out, r)
	return out
}
