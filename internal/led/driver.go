package led

import (
	"fmt"

	"github.com/coreman2200/funtimes-neomatrix/internal/layout"
	"github.com/coreman2200/funtimes-neomatrix/internal/pixel"
)

// Driver abstracts an LED output sink.
type Driver interface {
	// Write pushes an RGB frame to hardware. len(rgb) must be 3*pixel.Count.
	Write(rgb []byte) error
	// Close releases resources.
	Close() error
}

// FrameBytes is the size of one serialised frame.
const FrameBytes = pixel.Count * 3

func checkFrame(rgb []byte) error {
	if len(rgb) != FrameBytes {
		return fmt.Errorf("rgb length %d does not match %d pixels", len(rgb), pixel.Count)
	}
	return nil
}

// Output turns matrix frames into strip-ordered bytes for a Driver.
type Output struct {
	Drv    Driver
	Layout layout.Layout
	// Brightness scales every channel when in (0,1); other values leave the frame as is.
	Brightness float64
	Power      Power

	buf []byte
}

func NewOutput(drv Driver, l layout.Layout, brightness float64) *Output {
	return &Output{Drv: drv, Layout: l, Brightness: brightness, buf: make([]byte, FrameBytes)}
}

// Write implements scheduler.Sink.
func (o *Output) Write(b pixel.Buffer) error {
	if o.Drv == nil {
		return nil
	}
	if o.Brightness > 0 && o.Brightness < 1 {
		for i := range b {
			b[i] = b[i].Scale(o.Brightness)
		}
	}
	o.Power.Limit(&b)
	o.buf = o.Layout.RGB(b, o.buf)
	return o.Drv.Write(o.buf)
}

func (o *Output) Close() error {
	if o.Drv == nil {
		return nil
	}
	return o.Drv.Close()
}
