// Package ws serves the live preview, diagnostics and remote control surface.
package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-neomatrix/internal/config"
	diag "github.com/coreman2200/funtimes-neomatrix/internal/diagnostics"
	"github.com/coreman2200/funtimes-neomatrix/internal/orient"
	"github.com/coreman2200/funtimes-neomatrix/internal/pixel"
	"github.com/coreman2200/funtimes-neomatrix/internal/sensor"
	"github.com/coreman2200/funtimes-neomatrix/internal/tests"
)

const writeWait = 200 * time.Millisecond

type client struct {
	id   string
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *client) send(b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, b)
}

// State is the shared view of the running matrix. It is a frame sink
// for previews and hands remote orientation to Remote.
type State struct {
	mu      sync.RWMutex
	Cadence int

	ConfigPath string
	Config     *config.Config

	// Remote receives orientations pushed over /control.
	Remote *sensor.Override
	// Tests runs patterns requested over /control; nil disables runTest.
	Tests         *tests.Overlay
	CurrentDriver string

	frameID     uint64
	mode        orient.Mode
	orientation orient.Orientation
	startTime   time.Time
	clients     map[*client]bool
	diagClients map[*client]bool
}

func NewState(cadence int, remote *sensor.Override) *State {
	if remote == nil {
		remote = &sensor.Override{}
	}
	return &State{
		Cadence:     cadence,
		Remote:      remote,
		startTime:   time.Now(),
		clients:     map[*client]bool{},
		diagClients: map[*client]bool{},
	}
}

// Routes registers every endpoint on mux.
func (s *State) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", s.HandleFramesWS)
	mux.HandleFunc("/diag", s.HandleDiagWS)
	mux.HandleFunc("/control", s.HandleControlWS)
	mux.HandleFunc("/health", s.HandleHealth)
}

// Write broadcasts one frame to preview clients.
func (s *State) Write(b pixel.Buffer) error {
	s.mu.Lock()
	s.frameID++
	msg := frame{
		T:       time.Now().UnixNano(),
		FrameID: s.frameID,
		Mode:    s.mode.String(),
		RGB:     b.RGB(nil),
	}
	s.mu.Unlock()
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	s.broadcast(s.clients, data)
	return nil
}

// SetStatus records the latest sample for /health and /control replies.
func (s *State) SetStatus(o orient.Orientation, m orient.Mode) {
	s.mu.Lock()
	s.orientation, s.mode = o, m
	s.mu.Unlock()
}

// ModeChanged pushes a MODE.CHANGE diagnostic.
func (s *State) ModeChanged(from, to orient.Mode) {
	s.mu.Lock()
	s.mode = to
	s.mu.Unlock()
	s.PushDiag(diag.New(diag.Info, diag.ModeChange, from.String()+" -> "+to.String()).
		With("from", from.String()).
		With("to", to.String()))
}

func (s *State) FrameID() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frameID
}

type frame struct {
	T       int64  `json:"t"`
	FrameID uint64 `json:"frame_id"`
	Mode    string `json:"mode"`
	RGB     []byte `json:"rgb"`
}

// Status is the /health body and the /control reply.
type Status struct {
	FrameID     uint64  `json:"frame_id"`
	Mode        string  `json:"mode"`
	Orientation string  `json:"orientation"`
	Forced      string  `json:"forced,omitempty"`
	UptimeS     float64 `json:"uptime_s"`
	Cadence     int     `json:"cadence"`
	Driver      string  `json:"driver,omitempty"`
	Test        string  `json:"test,omitempty"`
	Clients     int     `json:"clients"`
}

func (s *State) Status() Status {
	s.mu.RLock()
	st := Status{
		FrameID:     s.frameID,
		Mode:        s.mode.String(),
		Orientation: s.orientation.String(),
		UptimeS:     time.Since(s.startTime).Seconds(),
		Cadence:     s.Cadence,
		Driver:      s.CurrentDriver,
		Clients:     len(s.clients),
	}
	s.mu.RUnlock()
	if o, ok := s.Remote.Forced(); ok {
		st.Forced = o.String()
	}
	if s.Tests != nil {
		st.Test = string(s.Tests.Active())
	}
	return st
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

func (s *State) join(w http.ResponseWriter, r *http.Request, set map[*client]bool, kind string) *client {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Str("path", r.URL.Path).Msg("upgrade")
		return nil
	}
	c := &client{id: uuid.NewString(), conn: conn}
	s.mu.Lock()
	set[c] = true
	s.mu.Unlock()
	log.Debug().Str("client", c.id).Str("kind", kind).Str("remote", r.RemoteAddr).Msg("ws join")
	return c
}

func (s *State) leave(set map[*client]bool, c *client) {
	s.mu.Lock()
	delete(set, c)
	s.mu.Unlock()
	_ = c.conn.Close()
	log.Debug().Str("client", c.id).Msg("ws leave")
}

// drain discards inbound messages until the peer goes away.
func (s *State) drain(set map[*client]bool, c *client) {
	defer s.leave(set, c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *State) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	c := s.join(w, r, s.clients, "frames")
	if c == nil {
		return
	}
	s.sendStatus(c)
	go s.drain(s.clients, c)
}

func (s *State) HandleDiagWS(w http.ResponseWriter, r *http.Request) {
	c := s.join(w, r, s.diagClients, "diag")
	if c == nil {
		return
	}
	_ = c.send(mustJSON(diag.New(diag.Info, diag.ClientJoined, "diagnostics attached").With("client", c.id)))
	go s.drain(s.diagClients, c)
}

// Control is one message on /control. Orientation forces the remote
// source; "release" returns it to the sensor.
type Control struct {
	Orientation string `json:"orientation,omitempty"`
	RunTest     string `json:"runTest,omitempty"`
}

func (s *State) HandleControlWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &client{id: uuid.NewString(), conn: conn}
	defer conn.Close()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg Control
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Debug().Err(err).Str("client", c.id).Msg("bad control message")
			continue
		}
		s.applyControl(msg)
		s.sendStatus(c)
	}
}

func (s *State) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.Status())
}

func (s *State) applyControl(msg Control) {
	if msg.Orientation != "" {
		if msg.Orientation == "release" {
			s.Remote.Release()
		} else if o, err := orient.Parse(msg.Orientation); err != nil {
			s.PushDiag(diag.New(diag.Warn, "CONTROL.ORIENTATION", "Unknown orientation").With("name", msg.Orientation))
		} else {
			s.Remote.Force(o)
		}
		s.saveConfig()
	}
	if msg.RunTest != "" {
		if s.Tests == nil {
			s.PushDiag(diag.New(diag.Warn, diag.TestStarted, "Test patterns unavailable"))
		} else if err := s.Tests.Start(tests.Kind(msg.RunTest)); err != nil {
			s.PushDiag(diag.New(diag.Warn, "TEST.UNKNOWN", "Unknown test name").With("name", msg.RunTest))
		} else {
			d := diag.New(diag.Info, diag.TestStarted, "Running test")
			d.Detail = msg.RunTest
			s.PushDiag(d)
		}
	}
}

// saveConfig persists the forced orientation so a restart keeps it.
func (s *State) saveConfig() {
	if s.ConfigPath == "" || s.Config == nil {
		return
	}
	s.Config.Sensor.Forced = ""
	if o, ok := s.Remote.Forced(); ok {
		s.Config.Sensor.Forced = o.String()
	}
	if err := config.Save(s.ConfigPath, s.Config); err != nil {
		log.Warn().Err(err).Str("path", s.ConfigPath).Msg("save config")
	}
}

func (s *State) sendStatus(c *client) {
	if err := c.send(mustJSON(s.Status())); err != nil {
		log.Debug().Err(err).Str("client", c.id).Msg("write status")
	}
}

// PushDiag sends d to every diagnostics client.
func (s *State) PushDiag(d diag.Diagnostic) {
	s.broadcast(s.diagClients, mustJSON(d))
}

func (s *State) broadcast(set map[*client]bool, b []byte) {
	s.mu.RLock()
	targets := make([]*client, 0, len(set))
	for c := range set {
		targets = append(targets, c)
	}
	s.mu.RUnlock()
	for _, c := range targets {
		if err := c.send(b); err != nil {
			log.Debug().Err(err).Str("client", c.id).Msg("ws write")
		}
	}
}

func mustJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
