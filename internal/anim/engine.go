// Package anim holds the matrix animations. Each Engine is a deterministic
// state machine that owns its frame; Advance is its only mutator.
package anim

import (
	"errors"

	"github.com/coreman2200/funtimes-neomatrix/internal/pixel"
)

// Engine is one animation.
type Engine interface {
	Name() string
	// Advance moves the animation one tick and re-renders its frame.
	Advance()
	// Pixels returns a copy of the current frame.
	Pixels() pixel.Buffer
}

// Default returns fresh engines in mode order: spiral, firework, heart, ghost.
func Default() []Engine {
	return []Engine{NewSpiral(), NewFirework(), NewHeart(), NewGhost()}
}

// Registry keeps engines by name while preserving registration order.
type Registry struct {
	m     map[string]Engine
	order []string
}

func NewRegistry() *Registry { return &Registry{m: map[string]Engine{}} }

// Register adds e. Registering the same name twice is an error.
func (r *Registry) Register(e Engine) error {
	if e == nil {
		return errors.New("nil engine")
	}
	if _, ok := r.m[e.Name()]; ok {
		return errors.New("engine already registered: " + e.Name())
	}
	r.m[e.Name()] = e
	r.order = append(r.order, e.Name())
	return nil
}

func (r *Registry) Get(name string) (Engine, bool) { e, ok := r.m[name]; return e, ok }

// List returns names in registration order.
func (r *Registry) List() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Engines returns engines in registration order.
func (r *Registry) Engines() []Engine {
	out := make([]Engine, 0, len(r.order))
	for _, n := range r.order {
		out = append(out, r.m[n])
	}
	return out
}
