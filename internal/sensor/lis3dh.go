package sensor

import (
	"encoding/binary"
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/mmr"
)

// LIS3DH register map subset.
const (
	lisWhoAmI   = 0x0F
	lisCtrlReg1 = 0x20
	lisCtrlReg4 = 0x23
	lisOutXL    = 0x28
	lisAutoInc  = 0x80

	lisChipID = 0x33
	// 400Hz, normal mode, X Y Z enabled.
	lisODR400XYZ = 0x77
	lisBDU       = 0x80
	lisHR        = 0x08
)

// DefaultAddr is the LIS3DH address with SA0 low.
const DefaultAddr uint16 = 0x18

// Range is the accelerometer full scale. The zero value selects G8.
type Range uint8

const (
	G2 Range = iota + 1
	G4
	G8
	G16
)

// milli-g per digit in high resolution mode.
var sensitivity = [...]float64{G2: 1, G4: 2, G8: 4, G16: 12}

// bits is the CTRL_REG4 full scale field.
func (r Range) bits() uint8 { return uint8(r-G2) << 4 }

// ParseRange maps a full scale in g (2, 4, 8, 16) to a Range.
func ParseRange(g int) (Range, error) {
	switch g {
	case 2:
		return G2, nil
	case 4:
		return G4, nil
	case 0, 8:
		return G8, nil
	case 16:
		return G16, nil
	}
	return G8, fmt.Errorf("unsupported range %dg", g)
}

type LIS3DHOpts struct {
	Addr  uint16
	Range Range
}

// LIS3DH is a 3-axis accelerometer on I²C.
type LIS3DH struct {
	c   mmr.Dev8
	rng Range
}

// NewLIS3DH checks the chip id and configures 400Hz high resolution output.
func NewLIS3DH(b i2c.Bus, opts *LIS3DHOpts) (*LIS3DH, error) {
	o := LIS3DHOpts{Addr: DefaultAddr, Range: G8}
	if opts != nil {
		if opts.Addr != 0 {
			o.Addr = opts.Addr
		}
		if opts.Range != 0 {
			o.Range = opts.Range
		}
	}
	if o.Range > G16 {
		return nil, fmt.Errorf("lis3dh: invalid range %d", o.Range)
	}
	d := &LIS3DH{
		c:   mmr.Dev8{Conn: &i2c.Dev{Bus: b, Addr: o.Addr}, Order: binary.LittleEndian},
		rng: o.Range,
	}
	id, err := d.c.ReadUint8(lisWhoAmI)
	if err != nil {
		return nil, fmt.Errorf("lis3dh: %w", err)
	}
	if id != lisChipID {
		return nil, fmt.Errorf("lis3dh: unexpected chip id 0x%02x", id)
	}
	if err := d.c.WriteUint8(lisCtrlReg1, lisODR400XYZ); err != nil {
		return nil, fmt.Errorf("lis3dh: %w", err)
	}
	if err := d.c.WriteUint8(lisCtrlReg4, lisBDU|lisHR|o.Range.bits()); err != nil {
		return nil, fmt.Errorf("lis3dh: %w", err)
	}
	return d, nil
}

func (d *LIS3DH) String() string {
	return fmt.Sprintf("LIS3DH{%s}", d.c.Conn)
}

// Acceleration reads all three axes in one burst.
func (d *LIS3DH) Acceleration() (x, y, z float64, err error) {
	var raw [6]byte
	if err := d.c.Conn.Tx([]byte{lisOutXL | lisAutoInc}, raw[:]); err != nil {
		return 0, 0, 0, fmt.Errorf("lis3dh: %w", err)
	}
	s := sensitivity[d.rng] / 1000
	axis := func(i int) float64 {
		// 12-bit left-justified.
		return float64(int16(binary.LittleEndian.Uint16(raw[i:]))>>4) * s
	}
	return axis(0), axis(2), axis(4), nil
}
