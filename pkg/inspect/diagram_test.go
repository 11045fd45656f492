package inspect

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regview/regview-go/pkg/layout"
	"github.com/regview/regview-go/pkg/periph"
)

func TestBitDiagram(t *testing.T) {
	segs, err := layout.Layout([]periph.Field{{Name: "A", BitOffset: 2, BitWidth: 2}}, 4)
	require.NoError(t, err)

	got := NewFormatter().BitDiagram(segs, 4)
	want := strings.Join([]string{
		"  3  2  1  0",
		"+-----+-----+",
		"|  A  |-----|",
		"+-----+-----+",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestBitDiagram_NarrowField(t *testing.T) {
	segs, err := layout.Layout([]periph.Field{
		{Name: "ENABLE", BitOffset: 1, BitWidth: 1},
		{Name: "OK", BitOffset: 0, BitWidth: 1},
	}, 2)
	require.NoError(t, err)

	lines := strings.Split(NewFormatter().BitDiagram(segs, 2), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "|  |  |", lines[2])
}

func TestBitDiagram_OneBitFieldHasNoLabel(t *testing.T) {
	segs, err := layout.Layout([]periph.Field{{Name: "EN", BitOffset: 0, BitWidth: 1}}, 32)
	require.NoError(t, err)
	require.Equal(t, "", segs[len(segs)-1].Label())

	lines := strings.Split(NewFormatter().BitDiagram(segs, 32), "\n")
	assert.True(t, strings.HasSuffix(lines[2], "-|  |"), lines[2])
	assert.NotContains(t, lines[2], "EN")
}

func TestBitDiagram_WideFieldTooLongName(t *testing.T) {
	segs, err := layout.Layout([]periph.Field{{Name: "LONGNAME", BitOffset: 0, BitWidth: 2}}, 2)
	require.NoError(t, err)

	lines := strings.Split(NewFormatter().BitDiagram(segs, 2), "\n")
	assert.Equal(t, "|  *  |", lines[2])
}

func TestBitDiagram_NonASCIIName(t *testing.T) {
	segs, err := layout.Layout([]periph.Field{{Name: "ÄB", BitOffset: 0, BitWidth: 2}}, 2)
	require.NoError(t, err)

	lines := strings.Split(NewFormatter().BitDiagram(segs, 2), "\n")
	assert.Equal(t, "| ÄB  |", lines[2])
	assert.Equal(t, utf8.RuneCountInString(lines[1]), utf8.RuneCountInString(lines[2]))
}

func TestBitDiagram_WidthMatchesWord(t *testing.T) {
	segs, err := layout.Layout([]periph.Field{
		{Name: "MODE", BitOffset: 8, BitWidth: 4},
		{Name: "EN", BitOffset: 0, BitWidth: 1},
	}, 32)
	require.NoError(t, err)

	lines := strings.Split(NewFormatter().BitDiagram(segs, 32), "\n")
	// Every boxed line spans one cell per bit plus the leading edge.
	for _, l := range lines[1:4] {
		assert.Len(t, l, 32*3+1)
	}
	assert.True(t, strings.HasPrefix(lines[0], " 31 30"))
	assert.Contains(t, lines[2], "MODE")
}
