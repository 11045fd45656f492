package layout

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regview/regview-go/pkg/bitrange"
	"github.com/regview/regview-go/pkg/periph"
)

func field(name string, offset, width int) periph.Field {
	return periph.Field{Name: name, BitOffset: offset, BitWidth: width}
}

// requirePartition checks that segments cover [wordWidth-1..0] high to low
// with no gap and no overlap.
func requirePartition(t *testing.T, segments []Segment, wordWidth int) {
	t.Helper()
	require.NotEmpty(t, segments)

	next := wordWidth - 1
	for i, s := range segments {
		require.Equalf(t, next, s.Range.MSB, "segment %d starts at %d, want %d", i, s.Range.MSB, next)
		require.GreaterOrEqualf(t, s.Range.MSB, s.Range.LSB, "segment %d is inverted", i)
		next = s.Range.LSB - 1
	}
	require.Equal(t, -1, next, "segments do not reach bit 0")
}

func TestLayout_EmptyFields(t *testing.T) {
	segments, err := Layout(nil, DefaultWordWidth)
	require.NoError(t, err)
	require.Len(t, segments, 1)
	assert.True(t, segments[0].IsReserved())
	assert.Equal(t, bitrange.Range{MSB: 31, LSB: 0}, segments[0].Range)
}

func TestLayout_SingleFullWidthField(t *testing.T) {
	segments, err := Layout([]periph.Field{field("DATA", 0, 32)}, DefaultWordWidth)
	require.NoError(t, err)
	require.Len(t, segments, 1)
	assert.Equal(t, SegmentField, segments[0].Kind)
	assert.Equal(t, bitrange.Range{MSB: 31, LSB: 0}, segments[0].Range)
	assert.Equal(t, "DATA", segments[0].Key())
}

func TestLayout_GapDetection(t *testing.T) {
	fields := []periph.Field{field("LOW", 0, 4), field("HIGH", 8, 4)}

	segments, err := Layout(fields, DefaultWordWidth)
	require.NoError(t, err)
	require.Len(t, segments, 4)

	want := []struct {
		kind SegmentKind
		msb  int
		lsb  int
		key  string
	}{
		{SegmentReserved, 31, 12, ""},
		{SegmentField, 11, 8, "HIGH"},
		{SegmentReserved, 7, 4, ""},
		{SegmentField, 3, 0, "LOW"},
	}
	for i, w := range want {
		assert.Equal(t, w.kind, segments[i].Kind, "segment %d kind", i)
		assert.Equal(t, bitrange.Range{MSB: w.msb, LSB: w.lsb}, segments[i].Range, "segment %d range", i)
		assert.Equal(t, w.key, segments[i].Key(), "segment %d key", i)
	}
}

func TestLayout_InputOrderIrrelevant(t *testing.T) {
	a, err := Layout([]periph.Field{field("A", 0, 1), field("B", 4, 2), field("C", 20, 8)}, 32)
	require.NoError(t, err)
	b, err := Layout([]periph.Field{field("C", 20, 8), field("A", 0, 1), field("B", 4, 2)}, 32)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestLayout_ColorIndex(t *testing.T) {
	segments, err := Layout([]periph.Field{field("A", 0, 1), field("B", 4, 2), field("C", 20, 8)}, 32)
	require.NoError(t, err)

	var colors []int
	for _, s := range segments {
		if !s.IsReserved() {
			colors = append(colors, s.ColorIndex)
		}
	}
	assert.Equal(t, []int{0, 1, 2}, colors)
}

func TestLayout_PartitionCompleteness(t *testing.T) {
	cases := map[string][]periph.Field{
		"single bit at top":    {field("TOP", 31, 1)},
		"single bit at bottom": {field("BOT", 0, 1)},
		"adjacent fields":      {field("A", 0, 16), field("B", 16, 16)},
		"sparse":               {field("EN", 0, 1), field("MODE", 4, 3), field("DIV", 16, 8), field("LOCK", 31, 1)},
	}
	for name, fields := range cases {
		t.Run(name, func(t *testing.T) {
			segments, err := Layout(fields, DefaultWordWidth)
			require.NoError(t, err)
			requirePartition(t, segments, DefaultWordWidth)
		})
	}
}

func TestLayout_PartitionCompleteness_Random(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for iter := 0; iter < 500; iter++ {
		// Walk the word from bit 0 and drop fields into random positions.
		var fields []periph.Field
		bit := 0
		for bit < DefaultWordWidth {
			bit += rng.Intn(4)
			if bit >= DefaultWordWidth {
				break
			}
			width := 1 + rng.Intn(DefaultWordWidth-bit)
			if width > 8 {
				width = 1 + rng.Intn(8)
			}
			fields = append(fields, field(fmt.Sprintf("F%d", len(fields)), bit, width))
			bit += width
		}
		rng.Shuffle(len(fields), func(i, j int) { fields[i], fields[j] = fields[j], fields[i] })

		segments, err := Layout(fields, DefaultWordWidth)
		require.NoError(t, err, "iteration %d", iter)
		requirePartition(t, segments, DefaultWordWidth)

		var fieldSegments int
		for _, s := range segments {
			if !s.IsReserved() {
				fieldSegments++
			}
		}
		require.Equal(t, len(fields), fieldSegments)
	}
}

func TestLayout_OtherWordWidths(t *testing.T) {
	segments, err := Layout([]periph.Field{field("LO", 0, 4)}, 16)
	require.NoError(t, err)
	requirePartition(t, segments, 16)
	assert.Equal(t, bitrange.Range{MSB: 15, LSB: 4}, segments[0].Range)
}

func TestLayout_Errors(t *testing.T) {
	tests := []struct {
		name     string
		fields   []periph.Field
		width    int
		kind     Kind
		sentinel error
	}{
		{
			name:     "field exceeds word",
			fields:   []periph.Field{field("WIDE", 30, 4)},
			width:    32,
			kind:     KindExceedsWord,
			sentinel: ErrFieldExceedsWord,
		},
		{
			name:     "overlapping fields",
			fields:   []periph.Field{field("A", 0, 8), field("B", 4, 8)},
			width:    32,
			kind:     KindOverlap,
			sentinel: ErrOverlappingFields,
		},
		{
			name:     "same msb",
			fields:   []periph.Field{field("A", 4, 4), field("B", 6, 2)},
			width:    32,
			kind:     KindOverlap,
			sentinel: ErrOverlappingFields,
		},
		{
			name:     "duplicate name",
			fields:   []periph.Field{field("EN", 0, 1), field("EN", 8, 1)},
			width:    32,
			kind:     KindDuplicateName,
			sentinel: ErrDuplicateFieldName,
		},
		{
			name:     "zero width",
			fields:   []periph.Field{field("Z", 3, 0)},
			width:    32,
			kind:     KindInvalidField,
			sentinel: ErrInvalidField,
		},
		{
			name:     "negative offset",
			fields:   []periph.Field{field("N", -1, 2)},
			width:    32,
			kind:     KindInvalidField,
			sentinel: ErrInvalidField,
		},
		{
			name:     "missing name",
			fields:   []periph.Field{field("", 0, 1)},
			width:    32,
			kind:     KindInvalidField,
			sentinel: ErrInvalidField,
		},
		{
			name:     "zero word width",
			width:    0,
			kind:     KindInvalidField,
			sentinel: ErrInvalidField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments, err := Layout(tt.fields, tt.width)
			require.Error(t, err)
			assert.Nil(t, segments)

			var layoutErr *LayoutError
			require.True(t, errors.As(err, &layoutErr))
			assert.Equal(t, tt.kind, layoutErr.Kind)
			assert.ErrorIs(t, err, tt.sentinel)

			_, rowErr := Rows(tt.fields, tt.width)
			assert.ErrorIs(t, rowErr, tt.sentinel)
		})
	}
}

func TestLayoutError_Message(t *testing.T) {
	_, err := Layout([]periph.Field{field("A", 0, 8), field("B", 4, 8)}, 32)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overlapping fields")
	assert.Contains(t, err.Error(), "B and A")

	_, err = Layout([]periph.Field{field("WIDE", 30, 4)}, 32)
	require.Error(t, err)
	assert.Equal(t, "field exceeds word width: WIDE (bits 33:30 in 32-bit word)", err.Error())
}

func TestSegment_Presentation(t *testing.T) {
	segments, err := Layout([]periph.Field{field("EN", 0, 1), field("MODE", 4, 3)}, 32)
	require.NoError(t, err)
	require.Len(t, segments, 4)

	reservedTop, mode, gap, en := segments[0], segments[1], segments[2], segments[3]

	assert.Equal(t, "", reservedTop.Label())
	assert.Equal(t, "Reserved [31:7]", reservedTop.Title())
	assert.InDelta(t, 25.0/32.0, reservedTop.Fraction(32), 1e-9)

	assert.Equal(t, "MODE", mode.Label())
	assert.Equal(t, "MODE [6:4]", mode.Title())

	assert.Equal(t, "Reserved [3:1]", gap.Title())

	// A one-bit field still gets its share of the word and a title, but no
	// inline label.
	assert.Equal(t, "", en.Label())
	assert.Equal(t, "EN [0:0]", en.Title())
	assert.InDelta(t, 1.0/32.0, en.Fraction(32), 1e-9)
	assert.Equal(t, "EN", en.Key())
}
