package sequence

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/coreman2200/funtimes-neomatrix/internal/orient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeEval(t *testing.T) {
	env := Envelope{Keys: []Keyframe{
		{T: 0, V: 0, Ease: "linear"},
		{T: 10, V: 10, Ease: "linear"},
	}}
	assert.Equal(t, 0.0, env.Eval(-1), "before start")
	assert.Equal(t, 0.0, env.Eval(0))
	assert.Equal(t, 5.0, env.Eval(5))
	assert.Equal(t, 10.0, env.Eval(10))
	assert.Equal(t, 10.0, env.Eval(11), "after end")
	assert.Equal(t, 0.0, Envelope{}.Eval(3))
}

func TestRampEases(t *testing.T) {
	for _, ease := range []string{"", "linear", "smooth", "cubic"} {
		r := Ramp(2, 4, ease)
		assert.Equal(t, 0.0, r.Eval(2), ease)
		assert.InDelta(t, 0.5, r.Eval(3), 1e-9, ease)
		assert.Equal(t, 1.0, r.Eval(4), ease)
	}
	assert.Less(t, Ramp(0, 1, "smooth").Eval(0.25), Ramp(0, 1, "linear").Eval(0.25))
}

func tiltProgram(loop bool) Program {
	return Program{
		Version: "orient.v1",
		Loop:    loop,
		Steps: []Step{
			{Name: "A", Orientation: orient.LandscapeUp, DurationS: 2, TiltS: 1},
			{Name: "B", Orientation: orient.PortraitUp, DurationS: 2},
		},
	}
}

func TestPlayerTilt(t *testing.T) {
	var seen []orient.Orientation
	done := false
	p := NewPlayer(Hooks{
		SetOrientation: func(o orient.Orientation) { seen = append(seen, o) },
		Done:           func() { done = true },
	})
	require.NoError(t, p.Load(tiltProgram(false)))
	p.Start()

	p.Tick(0.5)
	x, y, z := p.Gravity()
	assert.Equal(t, [3]float64{0, 1, 0}, [3]float64{x, y, z})

	p.Tick(1.0) // halfway through the tilt
	x, y, z = p.Gravity()
	assert.InDelta(t, 0.5, x, 1e-9)
	assert.InDelta(t, 0.5, y, 1e-9)
	assert.Equal(t, 0.0, z)
	assert.Equal(t, orient.Unknown, orient.NewTracker(0).Update(x, y, z))

	p.Tick(0.6)
	assert.Equal(t, "B", p.Step().Name)
	x, y, z = p.Gravity()
	assert.Equal(t, [3]float64{1, 0, 0}, [3]float64{x, y, z})

	p.Tick(2)
	assert.True(t, done)
	assert.Equal(t, Idle, p.State)
	assert.Equal(t, []orient.Orientation{orient.LandscapeUp, orient.PortraitUp}, seen)
}

func TestPlayerLoops(t *testing.T) {
	p := NewPlayer(Hooks{})
	require.NoError(t, p.Load(tiltProgram(true)))
	p.Start()
	p.Tick(4.5)
	assert.Equal(t, Running, p.State)
	assert.Equal(t, "A", p.Step().Name)
	assert.InDelta(t, 0.5, p.Now(), 1e-9)
}

func TestPlayerPauseAndSeek(t *testing.T) {
	p := NewPlayer(Hooks{})
	require.NoError(t, p.Load(tiltProgram(false)))
	p.Start()
	p.Pause()
	p.Tick(3)
	assert.Equal(t, 0.0, p.Now())
	p.Resume()

	p.Seek(2.5)
	assert.Equal(t, "B", p.Step().Name)
	p.Seek(100)
	assert.Less(t, p.Now(), 4.0)
	p.Stop()
	assert.Equal(t, Idle, p.State)
	assert.Equal(t, "A", p.Step().Name)
}

func TestProgramValidate(t *testing.T) {
	assert.ErrorIs(t, Program{}.Validate(), ErrEmptyProgram)
	assert.Error(t, Program{Steps: []Step{{DurationS: 0}}}.Validate())
	assert.Error(t, Program{Steps: []Step{{DurationS: 1, TiltS: 2}}}.Validate())
	assert.NoError(t, tiltProgram(false).Validate())
}

func TestProgramJSON(t *testing.T) {
	raw := `{"version":"orient.v1","loop":true,"steps":[
		{"orientation":"portrait_down","durationS":1.5,"tiltS":0.5,"ease":"smooth"},
		{"orientation":"face_up","durationS":1}]}`
	var prog Program
	require.NoError(t, json.Unmarshal([]byte(raw), &prog))
	require.Len(t, prog.Steps, 2)
	assert.Equal(t, orient.PortraitDown, prog.Steps[0].Orientation)
	assert.Equal(t, orient.FaceUp, prog.Steps[1].Orientation)
	assert.Equal(t, 2.5, prog.Duration())
}

func TestSafePlayerSerialisesTicks(t *testing.T) {
	sp := NewSafePlayer(Hooks{})
	sp.With(func(p *Player) {
		require.NoError(t, p.Load(tiltProgram(false)))
		p.Start()
	})
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 60; i++ {
				sp.With(func(p *Player) { p.Tick(0.0125) })
			}
		}()
	}
	wg.Wait()
	sp.With(func(p *Player) {
		assert.InDelta(t, 3.0, p.Now(), 1e-9)
		assert.Equal(t, "B", p.Step().Name)
	})
}
