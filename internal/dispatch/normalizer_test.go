package dispatch

import (
	"errors"
	"strconv"
	"testing"

	"github.com/ginjaninja78/e911-csv-converter/internal/schema"
	"github.com/ginjaninja78/e911-csv-converter/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSourceRow() types.Record {
	return types.Record{
		"42", "C1", "F", "12", "", "N", "Main", "St", "", "Springfield", "County", "ST",
		"Acme Co", "E911", "Loc", "555", "1", "0", "5551234", "00000", "0000", "C2", "TAR",
		"555", "1", "date", "date",
	}
}

func projectedRow(class, typ string) types.Record {
	return types.Record{"E911", "Acme Co", "42", class, "12", "", "N", "Main", "St", "", "Springfield", typ}
}

func TestNormalizeEndToEndExample(t *testing.T) {
	m, err := schema.BuildMapping(schema.Parse(SourceSchema), schema.Parse(DestinationSchema))
	require.NoError(t, err)

	projected, err := m.Project(sampleSourceRow())
	require.NoError(t, err)

	out, err := NewNormalizer().Process(projected)
	require.NoError(t, err)
	assert.Equal(t, types.Record{"1", "Acme Co", "42", "RESD", "12 N Main St", "Springfield", "FALSE"}, out)
}

func TestSchemasMatchLayout(t *testing.T) {
	assert.Len(t, schema.Parse(SourceSchema), 27)
	assert.Len(t, schema.Parse(DestinationSchema), InputWidth)
}

func TestSequenceIsMonotonic(t *testing.T) {
	n := NewNormalizer()
	for i := 1; i <= 50; i++ {
		out, err := n.Process(projectedRow("2", "3"))
		require.NoError(t, err)
		assert.Equal(t, strconv.Itoa(i), out[0])
	}
	assert.Equal(t, 50, n.Emitted())
}

func TestSequencesAreIndependent(t *testing.T) {
	a, b := NewNormalizer(), NewNormalizer()

	_, err := a.Process(projectedRow("1", "0"))
	require.NoError(t, err)
	out, err := b.Process(projectedRow("1", "0"))
	require.NoError(t, err)

	assert.Equal(t, "1", out[0])
}

func TestClassTable(t *testing.T) {
	want := map[string]string{
		"0": "ERR", "1": "RESD", "2": "BUSN", "3": "PBXR", "4": "PBXB",
		"5": "CNTX", "6": "PAY$", "7": "COIN", "8": "MOBL", "9": "RESX",
		"W": "WRLS", "G": "WPH1", "H": "WPH2", "V": "VOIP", "T": "TLMA",
	}
	require.Len(t, ServiceClasses(), len(want))

	for code, abbr := range want {
		c, err := ParseServiceClass(code)
		require.NoError(t, err, code)
		assert.Equal(t, abbr, c.Abbr())
		assert.Equal(t, code, c.String())
	}
}

func TestListingTable(t *testing.T) {
	l, err := ParseListing("0")
	require.NoError(t, err)
	assert.Equal(t, "FALSE", l.String())

	l, err = ParseListing("3")
	require.NoError(t, err)
	assert.Equal(t, "TRUE", l.String())
}

func TestUnknownCodesRejected(t *testing.T) {
	tests := []struct {
		name  string
		class string
		typ   string
		field string
	}{
		{"lowercase class", "w", "0", "Class"},
		{"empty class", "", "0", "Class"},
		{"two-char class", "11", "0", "Class"},
		{"unlisted letter", "X", "0", "Class"},
		{"type 1", "1", "1", "Type"},
		{"empty type", "1", "", "Type"},
		{"padded type", "1", " 3", "Type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := NewSequence()
			out, err := Normalize(projectedRow(tt.class, tt.typ), seq)

			var unknown *types.UnknownCodeError
			require.True(t, errors.As(err, &unknown))
			assert.Equal(t, tt.field, unknown.Field)
			assert.Nil(t, out)
			assert.Equal(t, 1, seq.Peek(), "rejected record must not consume a number")
		})
	}
}

func TestNormalizeWrongWidth(t *testing.T) {
	_, err := Normalize(types.Record{"a", "b"}, NewSequence())

	var shape *types.RecordShapeError
	require.True(t, errors.As(err, &shape))
	assert.Equal(t, InputWidth, shape.Want)
}

func TestJoinAddress(t *testing.T) {
	tests := []struct {
		parts []string
		want  string
	}{
		{[]string{"12", "", "N", "Main", "St", ""}, "12 N Main St"},
		{[]string{"", "", "", "", "", ""}, ""},
		{[]string{" 100 ", "A", "", "Oak  Hill", "Rd", "SW"}, "100 A Oak Hill Rd SW"},
		{[]string{"5", "", "", "Elm\t\tSt", "", ""}, "5 Elm St"},
		{[]string{"12", "", "", "Oak\v\vSt", "", ""}, "12 Oak St"},
		{[]string{"12", "", "", "Oak\u00a0\u00a0St", "", ""}, "12 Oak St"},
		{[]string{"12", "", "", "Oak \u00a0St", "", ""}, "12 Oak St"},
		{[]string{"12", "\u2003", "", "Oak", "", "\u00a0"}, "12 Oak"},
	}

	for _, tt := range tests {
		got := JoinAddress(tt.parts...)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, got, JoinAddress(got), "collapse must be idempotent")
	}
}
