package diagnostics

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithCopiesEvidence(t *testing.T) {
	a := New(Info, ModeChange, "spiral -> heart").With("from", "spiral")
	b := a.With("to", "heart")
	assert.Len(t, a.Evidence, 1)
	assert.Len(t, b.Evidence, 2)
}

func TestFromError(t *testing.T) {
	assert.Equal(t, Diagnostic{}, FromError(FrameWrite, nil))
	d := FromError(FrameWrite, errors.New("spi write: broken pipe"), "check wiring")
	assert.Equal(t, Err, d.Severity)
	assert.Equal(t, []string{"check wiring"}, d.SuggestedFixes)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"code":"FRAME.WRITE"`)
	assert.NotContains(t, string(b), "evidence")
}
