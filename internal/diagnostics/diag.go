// Package diagnostics carries structured events pushed to diag clients.
package diagnostics

import "time"

type Severity string

const (
	Info Severity = "info"
	Warn Severity = "warning"
	Err  Severity = "error"
)

// Codes emitted by the daemon.
const (
	ModeChange     = "MODE.CHANGE"
	DriverFallback = "DRIVER.FALLBACK"
	FrameWrite     = "FRAME.WRITE"
	SensorRead     = "SENSOR.READ"
	TestStarted    = "TEST.START"
	TestFinished   = "TEST.DONE"
	ClientJoined   = "WS.JOIN"
)

type Diagnostic struct {
	Severity       Severity       `json:"severity"`
	Code           string         `json:"code"`
	Summary        string         `json:"summary"`
	Detail         string         `json:"detail,omitempty"`
	LikelyCauses   []string       `json:"likely_causes,omitempty"`
	SuggestedFixes []string       `json:"suggested_fixes,omitempty"`
	Evidence       map[string]any `json:"evidence,omitempty"`
	At             time.Time      `json:"at"`
}

func New(sev Severity, code, summary string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Summary: summary, At: time.Now()}
}

// With returns a copy of d carrying one more piece of evidence.
func (d Diagnostic) With(key string, v any) Diagnostic {
	ev := make(map[string]any, len(d.Evidence)+1)
	for k, x := range d.Evidence {
		ev[k] = x
	}
	ev[key] = v
	d.Evidence = ev
	return d
}

// FromError describes a failure; nil yields the zero Diagnostic.
func FromError(code string, err error, fixes ...string) Diagnostic {
	if err == nil {
		return Diagnostic{}
	}
	d := New(Err, code, err.Error())
	d.SuggestedFixes = fixes
	return d
}
