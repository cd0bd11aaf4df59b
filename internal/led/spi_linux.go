//go:build linux

package led

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"syscall"
	"unsafe"
)

const (
	spiIOCWriteMode        = 0x40016b01
	spiIOCWriteBitsPerWord = 0x40016b03
	spiIOCWriteMaxSpeedHz  = 0x40046b04
)

// SPI drives a WS2812 chain from a raw spidev node using the 3x bit
// expansion in EncodeWS2812.
type SPI struct {
	mu      sync.Mutex
	f       *os.File
	order   string
	resetUs int
	enc     []byte
}

// NewSPI opens spidev (e.g. "/dev/spidev0.0").
// speedHz in the 2_400_000–3_200_000 range suits the 3x expansion.
// resetUs is the latch, usually >= 280µs.
func NewSPI(spiDev string, colorOrder string, speedHz int, resetUs int) (*SPI, error) {
	if speedHz <= 0 {
		speedHz = 2400000
	}
	if resetUs <= 0 {
		resetUs = 300
	}
	f, err := os.OpenFile(spiDev, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open spidev: %w", err)
	}
	mode := byte(0)
	if err := ioctl(f, spiIOCWriteMode, unsafe.Pointer(&mode)); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("SPI set mode: %w", err)
	}
	bpw := byte(8)
	if err := ioctl(f, spiIOCWriteBitsPerWord, unsafe.Pointer(&bpw)); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("SPI set bits-per-word: %w", err)
	}
	speed := uint32(speedHz)
	if err := ioctl(f, spiIOCWriteMaxSpeedHz, unsafe.Pointer(&speed)); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("SPI set speed: %w", err)
	}
	return &SPI{f: f, order: colorOrder, resetUs: resetUs}, nil
}

func ioctl(f *os.File, req uintptr, arg unsafe.Pointer) error {
	if _, _, e := syscall.Syscall(syscall.SYS_IOCTL, f.Fd(), req, uintptr(arg)); e != 0 {
		return e
	}
	return nil
}

func (s *SPI) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f != nil {
		err := s.f.Close()
		s.f = nil
		return err
	}
	return nil
}

func (s *SPI) Write(rgb []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.f == nil {
		return errors.New("SPI closed")
	}
	if err := checkFrame(rgb); err != nil {
		return err
	}
	s.enc = EncodeWS2812(rgb, s.order, s.enc)
	if _, err := s.f.Write(s.enc); err != nil {
		return fmt.Errorf("spi write: %w", err)
	}

	// Latch by holding the line low; at 2.4MHz one byte is about 3.3µs.
	resetBytes := s.resetUs/3 + 1
	if resetBytes < 128 {
		resetBytes = 128
	}
	if _, err := s.f.Write(make([]byte, resetBytes)); err != nil {
		return fmt.Errorf("spi latch: %w", err)
	}
	return nil
}
