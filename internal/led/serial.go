package led

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"go.bug.st/serial"
)

// ErrUnsupported is returned by drivers not built for this platform.
var ErrUnsupported = errors.New("led driver not supported on this platform")

// PortOptions describes the serial link to a matrix controller.
type PortOptions struct {
	BaudRate int    `yaml:"baud_rate"`
	DataBits int    `yaml:"data_bits"`
	StopBits int    `yaml:"stop_bits"`
	Parity   string `yaml:"parity"`
}

// Normalize validates the options and applies defaults for unset values.
func (o PortOptions) Normalize() (PortOptions, error) {
	opts := o
	if opts.BaudRate <= 0 {
		opts.BaudRate = 115200
	}
	if opts.DataBits == 0 {
		opts.DataBits = 8
	}
	if opts.DataBits < 5 || opts.DataBits > 8 {
		return opts, fmt.Errorf("invalid data bits %d: must be between 5 and 8", opts.DataBits)
	}
	if opts.StopBits == 0 {
		opts.StopBits = 1
	}
	if opts.StopBits != 1 && opts.StopBits != 2 {
		return opts, fmt.Errorf("invalid stop bits %d: supported values are 1 or 2", opts.StopBits)
	}
	switch p := strings.TrimSpace(strings.ToUpper(opts.Parity)); p {
	case "", "N", "NONE":
		opts.Parity = "N"
	case "E", "EVEN":
		opts.Parity = "E"
	case "O", "ODD":
		opts.Parity = "O"
	default:
		return opts, fmt.Errorf("unsupported parity %q: expected N, E, or O", o.Parity)
	}
	return opts, nil
}

// SerialMode converts the options into a go.bug.st/serial mode.
func (o PortOptions) SerialMode() (*serial.Mode, error) {
	opts, err := o.Normalize()
	if err != nil {
		return nil, err
	}
	mode := &serial.Mode{BaudRate: opts.BaudRate, DataBits: opts.DataBits, StopBits: serial.OneStopBit}
	if opts.StopBits == 2 {
		mode.StopBits = serial.TwoStopBits
	}
	switch opts.Parity {
	case "E":
		mode.Parity = serial.EvenParity
	case "O":
		mode.Parity = serial.OddParity
	default:
		mode.Parity = serial.NoParity
	}
	return mode, nil
}

// Frame layout on the wire:
//
//	0xA5 0x5A | seq | len (uint16 BE) | rgb payload | sum8(payload)
const (
	frameMagic0 = 0xA5
	frameMagic1 = 0x5A
	frameHeader = 5
)

// AppendFrame appends one framed payload to dst.
func AppendFrame(dst []byte, seq uint8, rgb []byte) []byte {
	dst = append(dst, frameMagic0, frameMagic1, seq)
	dst = binary.BigEndian.AppendUint16(dst, uint16(len(rgb)))
	dst = append(dst, rgb...)
	var sum uint8
	for _, b := range rgb {
		sum += b
	}
	return append(dst, sum)
}

// ParseFrame decodes one frame produced by AppendFrame.
func ParseFrame(b []byte) (seq uint8, rgb []byte, err error) {
	if len(b) < frameHeader+1 || b[0] != frameMagic0 || b[1] != frameMagic1 {
		return 0, nil, errors.New("bad frame header")
	}
	n := int(binary.BigEndian.Uint16(b[3:5]))
	if len(b) != frameHeader+n+1 {
		return 0, nil, fmt.Errorf("frame length %d, payload says %d", len(b), n)
	}
	rgb = b[frameHeader : frameHeader+n]
	var sum uint8
	for _, v := range rgb {
		sum += v
	}
	if sum != b[len(b)-1] {
		return 0, nil, errors.New("frame checksum mismatch")
	}
	return b[2], rgb, nil
}

// Serial streams framed RGB data to a microcontroller that owns the strip.
type Serial struct {
	mu  sync.Mutex
	rw  io.WriteCloser
	seq uint8
	buf []byte
}

// NewSerial wraps any writer; serial.Port satisfies it.
func NewSerial(w io.WriteCloser) *Serial { return &Serial{rw: w} }

// OpenSerial opens a device path such as /dev/ttyACM0.
func OpenSerial(path string, opts PortOptions) (*Serial, error) {
	mode, err := opts.SerialMode()
	if err != nil {
		return nil, err
	}
	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", path, err)
	}
	return NewSerial(port), nil
}

func (s *Serial) Write(rgb []byte) error {
	if err := checkFrame(rgb); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rw == nil {
		return errors.New("serial closed")
	}
	s.buf = AppendFrame(s.buf[:0], s.seq, rgb)
	s.seq++
	if _, err := s.rw.Write(s.buf); err != nil {
		return fmt.Errorf("serial write: %w", err)
	}
	return nil
}

func (s *Serial) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rw == nil {
		return nil
	}
	err := s.rw.Close()
	s.rw = nil
	return err
}
