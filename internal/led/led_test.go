package led

import (
	"bytes"
	"testing"

	"github.com/coreman2200/funtimes-neomatrix/internal/layout"
	"github.com/coreman2200/funtimes-neomatrix/internal/pixel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial"
	"periph.io/x/conn/v3/spi/spitest"
)

type recorder struct {
	bytes.Buffer
	closed bool
}

func (r *recorder) Close() error { r.closed = true; return nil }

func TestSimRejectsShortFrame(t *testing.T) {
	s := NewSim()
	assert.Error(t, s.Write(make([]byte, 10)))
	assert.Equal(t, 0, s.Frames())
}

func TestSimKeepsLastFrame(t *testing.T) {
	s := NewSim()
	f := make([]byte, FrameBytes)
	f[5] = 9
	require.NoError(t, s.Write(f))
	require.NoError(t, s.Write(f))
	assert.Equal(t, 2, s.Frames())
	assert.Equal(t, f, s.Last())
}

func TestOutputAppliesLayoutAndBrightness(t *testing.T) {
	sim := NewSim()
	out := NewOutput(sim, layout.Layout{Order: layout.Wiring{Serpentine: true}}, 0.5)

	var b pixel.Buffer
	b[pixel.Index(1, 0)] = pixel.RGB(200, 100, 50)
	require.NoError(t, out.Write(b))

	// Row 1 runs backwards on a serpentine strip.
	p := 15 * 3
	assert.Equal(t, []byte{100, 50, 25}, sim.Last()[p:p+3])
	lit := 0
	for i := 0; i < FrameBytes; i += 3 {
		if sim.Last()[i]|sim.Last()[i+1]|sim.Last()[i+2] != 0 {
			lit++
		}
	}
	assert.Equal(t, 1, lit)
}

func TestOutputWithoutDriver(t *testing.T) {
	out := &Output{}
	assert.NoError(t, out.Write(pixel.Buffer{}))
	assert.NoError(t, out.Close())
}

func TestEncodeWS2812(t *testing.T) {
	enc := EncodeWS2812([]byte{0xFF, 0x00, 0x00}, "GRB", nil)
	require.Len(t, enc, 9)
	zero := []byte{0x92, 0x49, 0x24}
	one := []byte{0xDB, 0x6D, 0xB6}
	assert.Equal(t, zero, enc[0:3], "green first")
	assert.Equal(t, one, enc[3:6])
	assert.Equal(t, zero, enc[6:9])
}

func TestSerialFrames(t *testing.T) {
	rec := &recorder{}
	s := NewSerial(rec)
	f := make([]byte, FrameBytes)
	f[0], f[1] = 3, 4
	require.NoError(t, s.Write(f))
	first := append([]byte(nil), rec.Bytes()...)
	rec.Reset()
	require.NoError(t, s.Write(f))

	seq, rgb, err := ParseFrame(first)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), seq)
	assert.Equal(t, f, rgb)
	assert.Equal(t, byte(7), first[len(first)-1])

	seq, _, err = ParseFrame(rec.Bytes())
	require.NoError(t, err)
	assert.Equal(t, uint8(1), seq)

	require.NoError(t, s.Close())
	assert.True(t, rec.closed)
	assert.Error(t, s.Write(f))
}

func TestParseFrameRejectsCorruption(t *testing.T) {
	fr := AppendFrame(nil, 1, []byte{1, 2, 3})
	fr[6]++
	_, _, err := ParseFrame(fr)
	assert.Error(t, err)
	_, _, err = ParseFrame([]byte{0, 1, 2})
	assert.Error(t, err)
}

var TestPortOptionsNormalize = []struct {
	Given  PortOptions
	Expect PortOptions
	Err    bool
}{
	{PortOptions{}, PortOptions{BaudRate: 115200, DataBits: 8, StopBits: 1, Parity: "N"}, false},
	{PortOptions{BaudRate: 9600, Parity: "even"}, PortOptions{BaudRate: 9600, DataBits: 8, StopBits: 1, Parity: "E"}, false},
	{PortOptions{DataBits: 9}, PortOptions{}, true},
	{PortOptions{StopBits: 3}, PortOptions{}, true},
	{PortOptions{Parity: "mark"}, PortOptions{}, true},
}

func TestNormalize(t *testing.T) {
	for _, v := range TestPortOptionsNormalize {
		got, err := v.Given.Normalize()
		if v.Err {
			assert.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, v.Expect, got)
	}
}

func TestSerialMode(t *testing.T) {
	m, err := PortOptions{StopBits: 2, Parity: "O"}.SerialMode()
	require.NoError(t, err)
	assert.Equal(t, serial.TwoStopBits, m.StopBits)
	assert.Equal(t, serial.OddParity, m.Parity)
	assert.Equal(t, 115200, m.BaudRate)
}

func TestNRZOverRecorder(t *testing.T) {
	buf := bytes.Buffer{}
	n, err := NewNRZ(spitest.NewRecordRaw(&buf), 0)
	require.NoError(t, err)
	assert.Equal(t, "nrzled{recordraw}", n.String())

	assert.Error(t, n.Write([]byte{1, 2, 3}))
	require.NoError(t, n.Write(make([]byte, FrameBytes)))
	assert.NotZero(t, buf.Len())
	assert.NoError(t, n.Close())
}

func white(n int) pixel.Buffer {
	var b pixel.Buffer
	for i := 0; i < n; i++ {
		b[i] = pixel.White
	}
	return b
}

func TestPowerBudgetClamp(t *testing.T) {
	// 10 white LEDs draw 600mA at 20mA per channel.
	b := white(10)
	p := Power{ChanMA: 20, BudgetMA: 300}
	assert.InDelta(t, 600, p.Current(&b), 1e-9)
	p.Limit(&b)
	assert.LessOrEqual(t, p.Current(&b), 300.0)
	assert.Greater(t, p.Current(&b), 290.0)
}

func TestPowerKnee(t *testing.T) {
	b := white(10)
	p := Power{BudgetMA: 1000, Knee: 0.5}
	p.Limit(&b)
	// 600mA against 1000mA with the knee at 0.5 bends slightly.
	cur := p.Current(&b)
	assert.Less(t, cur, 600.0)
	assert.Greater(t, cur, 500.0)

	under := white(1)
	Power{BudgetMA: 1000}.Limit(&under)
	assert.Equal(t, pixel.White, under[0])
}

func TestPowerWhiteCap(t *testing.T) {
	b := white(1)
	b[1] = pixel.RGB(255, 0, 0)
	Power{WhiteCap: 1.5}.Limit(&b)
	sum := int(b[0].R) + int(b[0].G) + int(b[0].B)
	assert.LessOrEqual(t, sum, 383)
	assert.Equal(t, pixel.RGB(255, 0, 0), b[1], "under the cap")
}
