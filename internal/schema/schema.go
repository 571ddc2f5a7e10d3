// =============================================================================
// E911 CSV Converter - Schema Mapper
// =============================================================================
//
// This module decouples the source and destination column layouts. A schema
// is an ordered list of column names. Given a source schema and a destination
// schema, BuildMapping produces an IndexMap: for each destination position,
// the source position supplying its value.
//
// EXAMPLE:
//   source:      "Number, Customer, ESN"
//   destination: "ESN, Number"
//   mapping:     [2, 0]
//
// The mapping is built once per run and is read-only afterwards. A
// destination name without a source match is a configuration defect and is
// reported here, never deferred to the first record.
//
// =============================================================================

package schema

import (
	"strings"

	"github.com/ginjaninja78/e911-csv-converter/internal/types"
)

// =============================================================================
// SCHEMA
// =============================================================================

// Schema is an ordered sequence of column names.
//
// Uniqueness is not enforced. Duplicate names resolve to their first
// occurrence when a mapping is built.
type Schema []string

// Parse splits a comma-separated column list and trims each name.
//
// EXAMPLE:
//   Parse("ESN, Customer ,Number") => Schema{"ESN", "Customer", "Number"}
//
// An empty or all-whitespace spec yields an empty schema.
func Parse(spec string) Schema {
	if strings.TrimSpace(spec) == "" {
		return Schema{}
	}
	parts := strings.Split(spec, ",")
	s := make(Schema, len(parts))
	for i, p := range parts {
		s[i] = strings.TrimSpace(p)
	}
	return s
}

// Index returns the position of the first column named name, or -1.
func (s Schema) Index(name string) int {
	for i, c := range s {
		if c == name {
			return i
		}
	}
	return -1
}

// Duplicates returns the names that occur more than once, in order of their
// second occurrence.
func (s Schema) Duplicates() []string {
	seen := make(map[string]bool, len(s))
	var dups []string
	for _, c := range s {
		if seen[c] {
			dups = append(dups, c)
			continue
		}
		seen[c] = true
	}
	return dups
}

// String renders the schema as a comma-separated list.
func (s Schema) String() string {
	return strings.Join(s, ",")
}

// =============================================================================
// COLUMN INDEX MAP
// =============================================================================

// IndexMap holds, for each destination position i, the source index whose
// value populates it.
type IndexMap []int

// BuildMapping resolves every destination column against the source schema.
//
// PARAMETERS:
//   - src: The schema the input records are in.
//   - dst: The schema to project to.
//
// RETURNS:
//   - The IndexMap, with m[i] the first j such that dst[i] == src[j].
//   - A *types.SchemaMappingError listing every unresolved destination column.
func BuildMapping(src, dst Schema) (IndexMap, error) {
	m := make(IndexMap, len(dst))
	var missing []string

	for i, name := range dst {
		j := src.Index(name)
		if j < 0 {
			missing = append(missing, name)
			continue
		}
		m[i] = j
	}

	if len(missing) > 0 {
		return nil, &types.SchemaMappingError{Column: missing[0], Missing: missing}
	}
	return m, nil
}

// Width is the minimum number of fields a source record needs for Project to
// succeed.
func (m IndexMap) Width() int {
	w := 0
	for _, j := range m {
		if j+1 > w {
			w = j + 1
		}
	}
	return w
}

// Project reorders and selects the fields of rec according to the mapping.
//
// Output field i is rec[m[i]]. A record too short for the mapping fails with
// a *types.RecordShapeError. The input record is not modified.
func (m IndexMap) Project(rec types.Record) (types.Record, error) {
	if w := m.Width(); len(rec) < w {
		return nil, &types.RecordShapeError{Want: w, Got: len(rec)}
	}

	out := make(types.Record, len(m))
	for i, j := range m {
		if j < 0 {
			return nil, &types.RecordShapeError{Want: m.Width(), Got: len(rec)}
		}
		out[i] = rec[j]
	}
	return out, nil
}
