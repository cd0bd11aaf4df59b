package led

import (
	"fmt"
	"io"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
)

// DefaultNRZFreq is the SPI clock for nrzled; three SPI bits per data bit
// at an 800kHz refresh plus headroom.
const DefaultNRZFreq = (800*3 + 100) * physic.KiloHertz

// NRZ drives the chain through periph's nrzled encoder on any SPI port.
type NRZ struct {
	dev    *nrzled.Dev
	closer io.Closer
}

// NewNRZ wraps an already opened port.
func NewNRZ(p spi.Port, freq physic.Frequency) (*NRZ, error) {
	if freq <= 0 {
		freq = DefaultNRZFreq
	}
	d, err := nrzled.NewSPI(p, &nrzled.Opts{
		NumPixels: FrameBytes / 3,
		Channels:  3,
		Freq:      freq,
	})
	if err != nil {
		return nil, fmt.Errorf("nrzled: %w", err)
	}
	return &NRZ{dev: d}, nil
}

// OpenNRZ opens a port from spireg by name; "" picks the first one.
// host.Init must have run.
func OpenNRZ(name string, freq physic.Frequency) (*NRZ, error) {
	p, err := spireg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("spireg open %q: %w", name, err)
	}
	n, err := NewNRZ(p, freq)
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	n.closer = p
	if err := n.dev.Halt(); err != nil {
		_ = n.Close()
		return nil, fmt.Errorf("nrzled halt: %w", err)
	}
	return n, nil
}

func (n *NRZ) String() string { return n.dev.String() }

func (n *NRZ) Write(rgb []byte) error {
	if err := checkFrame(rgb); err != nil {
		return err
	}
	if _, err := n.dev.Write(rgb); err != nil {
		return fmt.Errorf("nrzled write: %w", err)
	}
	return nil
}

func (n *NRZ) Close() error {
	err := n.dev.Halt()
	if n.closer != nil {
		if cerr := n.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
