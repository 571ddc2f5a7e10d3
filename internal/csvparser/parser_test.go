package csvparser

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ginjaninja78/e911-csv-converter/internal/config"
	"github.com/ginjaninja78/e911-csv-converter/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultSettings() config.CSVSettings {
	return config.Default().CSVSettings
}

func TestReaderKeepsFieldsVerbatim(t *testing.T) {
	input := "a, b ,\"c,d\",\"say \"\"hi\"\"\"\n\n1\n"

	r, err := NewReader(strings.NewReader(input), defaultSettings())
	require.NoError(t, err)

	recs, err := r.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []types.Record{
		{"a", " b ", "c,d", `say "hi"`},
		{"1"},
	}, recs)
	assert.Equal(t, 2, r.RecordNumber())
}

func TestReaderSkip(t *testing.T) {
	r, err := NewReader(strings.NewReader("title\nh1,h2\nx,y\n"), defaultSettings())
	require.NoError(t, err)

	assert.Equal(t, 2, r.Skip(2))
	require.True(t, r.Next())
	assert.Equal(t, types.Record{"x", "y"}, r.Record())
	assert.Equal(t, 3, r.RecordNumber())
	assert.False(t, r.Next())
	assert.NoError(t, r.Err())
}

func TestReaderSkipPastEnd(t *testing.T) {
	r, err := NewReader(strings.NewReader("only\n"), defaultSettings())
	require.NoError(t, err)

	assert.Equal(t, 1, r.Skip(2))
	assert.False(t, r.Next())
}

func TestReaderBlankLinesAndQuotedLineBreaks(t *testing.T) {
	input := "title\n\nh1,h2\r\n\r\n\"x\r\ny\",z\r\n"

	r, err := NewReader(strings.NewReader(input), defaultSettings())
	require.NoError(t, err)

	assert.Equal(t, 2, r.Skip(2))
	require.True(t, r.Next())
	assert.Equal(t, types.Record{"x\ny", "z"}, r.Record())
	assert.False(t, r.Next())
	assert.NoError(t, r.Err())
}

func TestReaderDecodesLatin1(t *testing.T) {
	settings := defaultSettings()
	settings.Encoding = "ISO-8859-1"

	// "Peñasco" in ISO-8859-1.
	raw := []byte{'P', 'e', 0xF1, 'a', 's', 'c', 'o', ',', 'N', 'M', '\n'}

	r, err := NewReader(bytes.NewReader(raw), settings)
	require.NoError(t, err)
	require.True(t, r.Next())
	assert.Equal(t, types.Record{"Peñasco", "NM"}, r.Record())
}

func TestReaderPipeDelimiter(t *testing.T) {
	settings := defaultSettings()
	settings.Delimiter = "|"

	r, err := NewReader(strings.NewReader("a|b,c\n"), settings)
	require.NoError(t, err)
	require.True(t, r.Next())
	assert.Equal(t, types.Record{"a", "b,c"}, r.Record())
}

func TestLookupEncoding(t *testing.T) {
	enc, err := LookupEncoding("UTF-8")
	require.NoError(t, err)
	assert.Nil(t, enc)

	enc, err = LookupEncoding("cp1252")
	require.NoError(t, err)
	assert.NotNil(t, enc)

	enc, err = LookupEncoding("ISO-8859-15")
	require.NoError(t, err)
	assert.NotNil(t, enc)

	_, err = LookupEncoding("no-such-charset")
	assert.Error(t, err)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.csv"), defaultSettings())

	var ioErr *types.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "open", ioErr.Op)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpenReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(path, []byte("h\nv1,v2\n"), 0644))

	r, err := Open(path, defaultSettings())
	require.NoError(t, err)
	defer r.Close()

	r.Skip(1)
	require.True(t, r.Next())
	assert.Equal(t, types.Record{"v1", "v2"}, r.Record())
}
