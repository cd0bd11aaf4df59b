//go:build !linux

package led

type SPI struct{}

func NewSPI(spiDev string, colorOrder string, speedHz int, resetUs int) (*SPI, error) {
	return nil, ErrUnsupported
}

func (s *SPI) Write(rgb []byte) error { return ErrUnsupported }

func (s *SPI) Close() error { return nil }
