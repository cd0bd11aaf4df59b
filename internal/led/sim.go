package led

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Sim is a driver with no hardware behind it. It keeps the last frame and
// logs a compact summary at debug level.
type Sim struct {
	mu    sync.Mutex
	count int
	last  []byte
}

func NewSim() *Sim { return &Sim{last: make([]byte, FrameBytes)} }

func (s *Sim) Write(rgb []byte) error {
	if err := checkFrame(rgb); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count++
	copy(s.last, rgb)

	lit := 0
	var r, g, b int
	for i := 0; i+2 < len(rgb); i += 3 {
		if rgb[i]|rgb[i+1]|rgb[i+2] != 0 {
			lit++
		}
		r += int(rgb[i])
		g += int(rgb[i+1])
		b += int(rgb[i+2])
	}
	n := len(rgb) / 3
	log.Debug().
		Int("frame", s.count).
		Int("lit", lit).
		Ints("avg", []int{r / n, g / n, b / n}).
		Msg("sim frame")
	return nil
}

// Frames is the number of frames written so far.
func (s *Sim) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Last returns a copy of the last frame written.
func (s *Sim) Last() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.last...)
}

func (s *Sim) Close() error { return nil }
