//go:build linux && ws2811

package led

/*
#cgo LDFLAGS: -lws2811
#include <stdlib.h>
#include <stdint.h>
#include <ws2811/ws2811.h>
*/
import "C"
import (
	"errors"
	"fmt"
	"sync"
	"unsafe"
)

// PWM drives the chain through rpi_ws281x DMA output.
type PWM struct {
	mu  sync.Mutex
	dev *C.ws2811_t
	buf unsafe.Pointer
}

func NewPWM(gpio int, colorOrder string, brightness float64) (*PWM, error) {
	p := &PWM{}
	p.dev = (*C.ws2811_t)(C.calloc(1, C.size_t(unsafe.Sizeof(*p.dev))))
	if p.dev == nil {
		return nil, errors.New("calloc ws2811_t failed")
	}

	p.dev.freq = 800000
	p.dev.dmanum = 10
	ch := &p.dev.channel[0]
	ch.gpionum = C.int(gpio)
	ch.count = C.int(FrameBytes / 3)
	ch.invert = 0
	switch colorOrder {
	case "RGB":
		ch.strip_type = C.WS2811_STRIP_RGB
	case "BRG":
		ch.strip_type = C.WS2811_STRIP_BRG
	default:
		ch.strip_type = C.WS2811_STRIP_GRB
	}
	if brightness <= 0 || brightness > 1 {
		brightness = 1
	}
	ch.brightness = C.uint8_t(int(brightness * 255))

	if st := C.ws2811_init(p.dev); st != C.WS2811_SUCCESS {
		C.free(unsafe.Pointer(p.dev))
		return nil, fmt.Errorf("ws2811_init failed: %d", int(st))
	}
	p.buf = unsafe.Pointer(ch.leds)
	return p, nil
}

func (p *PWM) Write(rgb []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.dev == nil {
		return errors.New("pwm not initialized")
	}
	if err := checkFrame(rgb); err != nil {
		return err
	}
	n := len(rgb) / 3
	// Packed 0x00RRGGBB; strip_type handles the wire order.
	leds := (*[1 << 16]C.ws2811_led_t)(p.buf)[:n:n]
	for i := range leds {
		leds[i] = C.ws2811_led_t(uint32(rgb[i*3])<<16 | uint32(rgb[i*3+1])<<8 | uint32(rgb[i*3+2]))
	}
	if st := C.ws2811_render(p.dev); st != C.WS2811_SUCCESS {
		return fmt.Errorf("ws2811_render failed: %d", int(st))
	}
	return nil
}

func (p *PWM) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.dev != nil {
		C.ws2811_fini(p.dev)
		C.free(unsafe.Pointer(p.dev))
		p.dev = nil
	}
	return nil
}
