// =============================================================================
// E911 CSV Converter - 911 Record Normalizer
// =============================================================================
//
// This module is the post-processing stage for the 911 dispatch dataset. It
// receives records already projected to the destination schema:
//
//   | 0   | 1        | 2      | 3     | 4..9                                   | 10             | 11   |
//   |-----|----------|--------|-------|----------------------------------------|----------------|------|
//   | ESN | Customer | Number | Class | House #, House Sfx, Pre Dir,           | Community Name | Type |
//   |     |          |        |       | Street Name, Street Sfx, Post Dir      |                |      |
//
// and emits the seven-column output row:
//
//   SequenceNumber, Customer, Number, ClassAbbr, Address, CommunityName, Listed
//
// The ESN column is read by the projection but dropped here.
//
// =============================================================================

package dispatch

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ginjaninja78/e911-csv-converter/internal/types"
)

// =============================================================================
// LAYOUT
// =============================================================================

// SourceSchema is the column layout of the 911 export.
const SourceSchema = "Number,CompID1,F,House #,House Sfx,Pre Dir,Street Name,Street Sfx,Post Dir,Community Name,County,State,Customer,ESN,Location,Exchange,Class,Type,Main No,Zip,Zip4,CompID2,TAR,Alt. No,Extract,Entry Date,Last_Update"

// DestinationSchema is the layout Normalize expects its input in.
const DestinationSchema = "ESN, Customer, Number, Class, House #, House Sfx, Pre Dir, Street Name, Street Sfx, Post Dir, Community Name, Type"

// Positions within a projected record.
const (
	colESN = iota
	colCustomer
	colNumber
	colClass
	colHouseNum
	colHouseSfx
	colPreDir
	colStreetName
	colStreetSfx
	colPostDir
	colCommunity
	colType

	// InputWidth is the number of fields Normalize requires.
	InputWidth
)

// OutputWidth is the number of fields Normalize emits.
const OutputWidth = 7

// =============================================================================
// SEQUENCE
// =============================================================================

// Sequence numbers output records within one run. The zero value is not
// ready for use; call NewSequence.
type Sequence struct {
	next int
}

// NewSequence returns a sequence whose first number is 1.
func NewSequence() *Sequence {
	return &Sequence{next: 1}
}

// Next returns the current number and advances the sequence.
func (s *Sequence) Next() int {
	n := s.next
	s.next++
	return n
}

// Peek returns the number the next call to Next will return.
func (s *Sequence) Peek() int { return s.next }

// =============================================================================
// NORMALIZATION
// =============================================================================

// Normalize converts one projected 911 record into an output row.
//
// PARAMETERS:
//   - rec: A record in DestinationSchema layout (InputWidth fields).
//   - seq: The run's sequence. It advances by exactly one on success.
//
// RETURNS:
//   - The OutputWidth-field row.
//   - *types.RecordShapeError if rec is not InputWidth wide.
//   - *types.UnknownCodeError if Class or Type is outside its table.
//
// Both lookups happen before the sequence is consulted, so a rejected record
// neither produces output nor consumes a number.
func Normalize(rec types.Record, seq *Sequence) (types.Record, error) {
	if len(rec) != InputWidth {
		return nil, &types.RecordShapeError{Want: InputWidth, Got: len(rec)}
	}

	class, err := ParseServiceClass(rec[colClass])
	if err != nil {
		return nil, err
	}
	listing, err := ParseListing(rec[colType])
	if err != nil {
		return nil, err
	}

	return types.Record{
		strconv.Itoa(seq.Next()),
		rec[colCustomer],
		rec[colNumber],
		class.Abbr(),
		JoinAddress(rec[colHouseNum : colPostDir+1]...),
		rec[colCommunity],
		listing.String(),
	}, nil
}

// Normalizer binds Normalize to a sequence owned by a single run.
type Normalizer struct {
	seq *Sequence
}

// NewNormalizer returns a Normalizer starting at sequence number 1.
func NewNormalizer() *Normalizer {
	return &Normalizer{seq: NewSequence()}
}

// Process normalizes one record. It satisfies converter.PostProcessor.
func (n *Normalizer) Process(rec types.Record) (types.Record, error) {
	return Normalize(rec, n.seq)
}

// InputWidth reports the projected record width Process expects.
func (n *Normalizer) InputWidth() int { return InputWidth }

// Emitted returns how many records have been numbered so far.
func (n *Normalizer) Emitted() int { return n.seq.Peek() - 1 }

// =============================================================================
// ADDRESS CLEANUP
// =============================================================================

// multiSpace matches the same characters as unicode.IsSpace: Go's \s alone
// misses \v, U+0085 and the Unicode separators such as U+00A0.
var multiSpace = regexp.MustCompile(`[\s\v\x{85}\p{Z}]{2,}`)

// JoinAddress joins address components with single spaces, trims the result
// and collapses every run of two or more whitespace characters to one space.
// Empty components disappear.
//
// EXAMPLE:
//   JoinAddress("12", "", "N", "Main", "St", "") => "12 N Main St"
func JoinAddress(parts ...string) string {
	joined := strings.TrimSpace(strings.Join(parts, " "))
	return multiSpace.ReplaceAllString(joined, " ")
}
