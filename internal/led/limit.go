package led

import (
	"math"

	"github.com/coreman2200/funtimes-neomatrix/internal/pixel"
)

// Power caps what a frame may draw before it reaches the strip.
//
//   - WhiteCap: per-LED cap on R+G+B in units of one full channel (0 or >= 3 means no cap)
//   - ChanMA: mA per channel at full scale; WS2812 ≈ 20
//   - BudgetMA: whole-frame budget in mA; 0 disables the budget
//   - Knee: fraction of the budget where soft limiting begins (default 0.9)
type Power struct {
	WhiteCap float64 `yaml:"white_cap"`
	ChanMA   float64 `yaml:"chan_ma"`
	BudgetMA float64 `yaml:"budget_ma"`
	Knee     float64 `yaml:"knee"`
}

// Current estimates the draw of b in mA.
func (p Power) Current(b *pixel.Buffer) float64 {
	chanMA := p.ChanMA
	if chanMA <= 0 {
		chanMA = 20
	}
	var total float64
	for _, c := range b {
		total += float64(int(c.R)+int(c.G)+int(c.B)) / 255 * chanMA
	}
	return total
}

// Limit applies the white cap and then the budget to b in place.
func (p Power) Limit(b *pixel.Buffer) {
	if p.WhiteCap > 0 && p.WhiteCap < 3 {
		limit := p.WhiteCap * 255
		for i, c := range b {
			s := float64(int(c.R) + int(c.G) + int(c.B))
			if s > limit {
				b[i] = scaleFloor(c, limit/s)
			}
		}
	}
	if p.BudgetMA <= 0 {
		return
	}
	knee := p.Knee
	if knee <= 0 || knee >= 1 {
		knee = 0.9
	}
	total := p.Current(b)
	if total <= 0 {
		return
	}
	ratio := total / p.BudgetMA
	if ratio <= knee {
		return
	}
	// Above the knee the output current bends smoothly toward the budget
	// and never reaches it.
	x := (ratio - knee) / (1 - knee)
	target := p.BudgetMA * (knee + (1-knee)*(1-math.Exp(-x)))
	s := target / total
	for i, c := range b {
		b[i] = scaleFloor(c, s)
	}
}

// scaleFloor never rounds up so the budget holds after quantisation.
func scaleFloor(c pixel.Color, s float64) pixel.Color {
	return pixel.Color{
		R: uint8(float64(c.R) * s),
		G: uint8(float64(c.G) * s),
		B: uint8(float64(c.B) * s),
	}
}
