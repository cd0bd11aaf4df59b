package pixel_test

import (
	"strconv"
	"testing"

	. "github.com/coreman2200/funtimes-neomatrix/internal/pixel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var TestSatClampsToChannelRange = []struct {
	Given  int
	Expect uint8
}{
	{-20, 0},
	{0, 0},
	{128, 128},
	{255, 255},
	{256, 255},
	{1000, 255},
}

var TestOrderedChannels = []struct {
	Order  string
	Expect [3]byte
}{
	{"RGB", [3]byte{0x11, 0x22, 0x33}},
	{"GRB", [3]byte{0x22, 0x11, 0x33}},
	{"BRG", [3]byte{0x33, 0x11, 0x22}},
	{"", [3]byte{0x22, 0x11, 0x33}},
}

func TestSat(t *testing.T) {
	for k, v := range TestSatClampsToChannelRange {
		t.Run("Given"+strconv.Itoa(k), func(t *testing.T) {
			assert.Equal(t, v.Expect, Sat(v.Given))
		})
	}
	assert.Equal(t, uint8(255), AddSat(250, 10))
	assert.Equal(t, uint8(0), AddSat(3, -5))
}

func TestColorOrder(t *testing.T) {
	c := RGB(0x11, 0x22, 0x33)
	for _, v := range TestOrderedChannels {
		t.Run("Order"+v.Order, func(t *testing.T) {
			var dst [3]byte
			c.Order(v.Order, dst[:])
			assert.Equal(t, v.Expect, dst)
		})
	}
}

func TestPackedRoundTrip(t *testing.T) {
	c := RGB(0xAB, 0x3B, 0x88)
	assert.Equal(t, uint32(0xAB3B88), c.Packed())
	assert.Equal(t, c, FromPacked(c.Packed()))
}

func TestBufferClearAndPaint(t *testing.T) {
	var b Buffer
	b.Paint(NewSet(0, 9, 63), White)
	assert.Equal(t, 3, b.Lit())
	assert.Equal(t, []int{0, 9, 63}, b.LitIndices())

	red := RGB(255, 0, 0)
	b.Paint(NewSet(9, 10), red)
	assert.Equal(t, White, b[0], "paint must leave pixels outside the set untouched")
	assert.Equal(t, red, b[9])
	assert.Equal(t, red, b[10])

	b.Clear()
	assert.Equal(t, 0, b.Lit())
	assert.Len(t, b, Count)
}

func TestBufferRGBAndImage(t *testing.T) {
	var b Buffer
	b[Index(2, 5)] = RGB(1, 2, 3)
	rgb := b.RGB(nil)
	require.Len(t, rgb, Count*3)
	off := Index(2, 5) * 3
	assert.Equal(t, []byte{1, 2, 3}, rgb[off:off+3])

	im := b.Image()
	assert.Equal(t, RGB(1, 2, 3).NRGBA(), im.NRGBAAt(5, 2))
}

func TestIndexRowCol(t *testing.T) {
	for i := 0; i < Count; i++ {
		r, c := RowCol(i)
		assert.Equal(t, i, Index(r, c))
	}
}

func TestSetShift(t *testing.T) {
	s := NewSet(63, 15, 47, 31)
	assert.Equal(t, Set{15, 31, 47, 63}, s)

	up, ok := s.Shift(-8)
	require.True(t, ok)
	assert.Equal(t, Set{7, 23, 39, 55}, up)

	_, ok = s.Shift(8)
	assert.False(t, ok, "63+8 leaves the matrix")

	assert.True(t, s.Contains(47))
	assert.False(t, s.Contains(46))
	assert.True(t, s.Overlaps(NewSet(1, 63)))
	assert.False(t, s.Overlaps(up))
}

func TestNewSetRejectsBadGeometry(t *testing.T) {
	assert.Panics(t, func() { NewSet(64) })
	assert.Panics(t, func() { NewSet(-1) })
	assert.Panics(t, func() { NewSet(3, 3) })
}

func TestPaletteWraps(t *testing.T) {
	p := Palette{RGB(1, 0, 0), RGB(0, 1, 0), RGB(0, 0, 1)}
	assert.Equal(t, p[0], p.At(3))
	assert.Equal(t, p[2], p.At(-1))
	assert.Equal(t, Black, Palette{}.At(4))
}

func TestScale(t *testing.T) {
	c := RGB(200, 100, 50)
	assert.Equal(t, c, c.Scale(1))
	assert.Equal(t, Black, c.Scale(0))
	assert.Equal(t, RGB(100, 50, 25), c.Scale(0.5))
}
