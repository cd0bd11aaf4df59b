//go:build !linux || !ws2811

package led

// PWM needs rpi_ws281x; build with -tags ws2811 on linux.
type PWM struct{}

func NewPWM(gpio int, colorOrder string, brightness float64) (*PWM, error) {
	return nil, ErrUnsupported
}

func (p *PWM) Write(rgb []byte) error { return ErrUnsupported }
func (p *PWM) Close() error           { return nil }
