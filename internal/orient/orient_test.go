package orient

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var all = []Orientation{Unknown, FaceUp, FaceDown, LandscapeUp, LandscapeDown, PortraitUp, PortraitDown}

func TestClassifyIndeterminateKeepsMode(t *testing.T) {
	for m := Mode(0); m < NumModes; m++ {
		for _, o := range []Orientation{Unknown, FaceUp, FaceDown} {
			assert.Equal(t, m, Classify(o, m), "%s with prev %s", o, m)
		}
	}
}

func TestClassifyDefinite(t *testing.T) {
	want := map[Orientation]Mode{
		LandscapeUp:   0,
		PortraitUp:    1,
		PortraitDown:  2,
		LandscapeDown: 3,
	}
	for o, m := range want {
		for prev := Mode(0); prev < NumModes; prev++ {
			assert.Equal(t, m, Classify(o, prev), "%s with prev %s", o, prev)
		}
	}
}

func TestClassifierSequence(t *testing.T) {
	c := NewClassifier(ModeSpiral)
	var got []Mode
	for _, o := range []Orientation{LandscapeUp, Unknown, FaceDown, PortraitUp} {
		m, _ := c.Update(o)
		got = append(got, m)
	}
	if d := cmp.Diff([]Mode{0, 0, 0, 1}, got); d != "" {
		t.Fatalf("mode sequence (-want +got):\n%s", d)
	}
}

func TestClassifierReportsChangesOnlyOnDefinite(t *testing.T) {
	c := NewClassifier(ModeHeart)
	for _, o := range all {
		_, changed := c.Update(o)
		if changed {
			require.True(t, o.Definite(), "%s changed the mode", o)
		}
	}
	m, changed := c.Update(LandscapeDown)
	assert.True(t, changed, "heart to ghost")
	assert.Equal(t, ModeGhost, m)
	m, changed = c.Update(LandscapeDown)
	assert.False(t, changed, "same definite reading twice")
	assert.Equal(t, ModeGhost, m)
}

func TestParseRoundTrip(t *testing.T) {
	for _, o := range all {
		got, err := Parse(o.String())
		require.NoError(t, err)
		assert.Equal(t, o, got)
	}
	o, err := Parse(" Portrait-Up ")
	require.NoError(t, err)
	assert.Equal(t, PortraitUp, o)

	_, err = Parse("sideways")
	assert.Error(t, err)

	var v Orientation
	require.NoError(t, v.UnmarshalText([]byte("face_down")))
	assert.Equal(t, FaceDown, v)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "firework", ModeFirework.String())
	assert.Equal(t, "mode(7)", Mode(7).String())
	assert.False(t, Mode(-1).Valid())
	assert.False(t, Mode(NumModes).Valid())
}

func TestTracker(t *testing.T) {
	cases := []struct {
		x, y, z float64
		want    Orientation
	}{
		{0, 1, 0, LandscapeUp},
		{0.1, -0.95, 0.2, LandscapeDown},
		{1, 0.1, 0, PortraitUp},
		{-0.9, 0, 0.3, PortraitDown},
		{0, 0, 1, FaceUp},
		{0.1, 0, -1, FaceDown},
		{0.6, 0.6, 0.5, Unknown},
		{0, 0, 0, Unknown},
	}
	tr := NewTracker(0)
	assert.Equal(t, DefaultThreshold, tr.Threshold)
	for _, c := range cases {
		assert.Equal(t, c.want, tr.Update(c.x, c.y, c.z), "(%v,%v,%v)", c.x, c.y, c.z)
		assert.Equal(t, c.want, tr.Last())
	}
}

func TestThresholdToleratesTilt(t *testing.T) {
	// A panel resting a few degrees off level reads just under 1 g.
	lenient, strict := NewTracker(DefaultThreshold), NewTracker(1)
	assert.Equal(t, LandscapeUp, lenient.Update(0.2, 0.96, 0.15))
	assert.Equal(t, Unknown, strict.Update(0.2, 0.96, 0.15))
	assert.Equal(t, LandscapeUp, strict.Update(0, 1, 0))
}

func TestGravityRoundTripsThroughTracker(t *testing.T) {
	tr := NewTracker(DefaultThreshold)
	for _, o := range all {
		assert.Equal(t, o, tr.Update(Gravity(o)), o.String())
	}
}
