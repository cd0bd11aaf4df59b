package layout

import (
	"testing"

	"github.com/coreman2200/funtimes-neomatrix/internal/pixel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexIsPermutation(t *testing.T) {
	for _, w := range []Wiring{
		{},
		{Serpentine: true},
		{FlipX: true, FlipY: true},
		{Transpose: true, Serpentine: true},
		{Serpentine: true, FlipX: true, FlipY: true, Transpose: true},
	} {
		l := Layout{Order: w}
		seen := map[int]bool{}
		for _, p := range l.Map() {
			require.True(t, p >= 0 && p < pixel.Count)
			seen[p] = true
		}
		assert.Len(t, seen, pixel.Count, "%+v", w)
	}
}

func TestRowMajorIsIdentity(t *testing.T) {
	l := Layout{}
	for i := 0; i < pixel.Count; i++ {
		r, c := pixel.RowCol(i)
		assert.Equal(t, i, l.Index(r, c))
	}
}

func TestSerpentine(t *testing.T) {
	l := Layout{Order: Wiring{Serpentine: true}}
	assert.Equal(t, 7, l.Index(0, 7))
	assert.Equal(t, 8, l.Index(1, 7))
	assert.Equal(t, 15, l.Index(1, 0))
	assert.Equal(t, 16, l.Index(2, 0))
}

func TestRGBFollowsWiring(t *testing.T) {
	var b pixel.Buffer
	b[pixel.Index(1, 0)] = pixel.RGB(9, 8, 7)
	out := Layout{Order: Wiring{Serpentine: true}}.RGB(b, nil)
	require.Len(t, out, pixel.Count*3)
	assert.Equal(t, []byte{9, 8, 7}, out[15*3:15*3+3])
	assert.Equal(t, []byte{0, 0, 0}, out[8*3:8*3+3])
}
