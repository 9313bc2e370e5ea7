package engine2D

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"cellring/internal/config"
	"cellring/internal/engine2D/particle"
	"cellring/internal/engine2D/sprite"
	"cellring/internal/utils"
)

// ErrNoContext is returned by Host.Surface when no drawing context can be
// acquired for the requested size.
var ErrNoContext = errors.New("drawing context unavailable")

type LoopState int

const (
	Idle LoopState = iota
	Running
)

func (s LoopState) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// Mode is the visual mode requested by the embedding view. It is stored
// and reported but does not change the animation.
type Mode int

const (
	ModeNormal Mode = iota
	ModeActive
)

func (m Mode) String() string {
	if m == ModeActive {
		return "active"
	}
	return "normal"
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "normal":
		return ModeNormal, nil
	case "active":
		return ModeActive, nil
	}
	return ModeNormal, fmt.Errorf("unknown mode %q", s)
}

// Host provides frame scheduling, viewport events and drawing surfaces.
type Host interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
	OnResize(fn func(width, height int)) ListenerID
	OnPointerMove(fn func(x, y float64)) ListenerID
	RemoveListener(id ListenerID)
	ViewportSize() (width, height int)
	Surface(width, height int) (particle.Surface, error)
}

type RingOptions struct {
	Tuning config.Tuning
	Mode   Mode
	Rand   *rand.Rand
	// Atlas skips the atlas build when set.
	Atlas *sprite.Atlas
}

// Ring owns the particle field and drives it from host frame callbacks.
// All methods must be called from the goroutine that runs the host's
// callbacks.
type Ring struct {
	host   Host
	tuning config.Tuning
	mode   Mode
	rng    *rand.Rand

	atlas   *sprite.Atlas
	field   *particle.Field
	surface particle.Surface
	pointer particle.Pointer

	state     LoopState
	frame     FrameID
	scheduled bool
	mounted   bool
	listeners []ListenerID

	width, height int
	allocations   int
	draws         uint64
}

func NewRing(host Host, opts RingOptions) *Ring {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Ring{
		host:   host,
		tuning: opts.Tuning,
		mode:   opts.Mode,
		rng:    rng,
		atlas:  opts.Atlas,
	}
}

// Mount registers the resize and pointer listeners and initializes the
// field from the current viewport size.
func (r *Ring) Mount() {
	if r.mounted {
		return
	}
	r.mounted = true
	r.listeners = append(r.listeners,
		r.host.OnResize(r.handleResize),
		r.host.OnPointerMove(r.handlePointer),
	)

	w, h := r.host.ViewportSize()
	r.handleResize(w, h)
}

// Teardown revokes the pending frame and every listener registered by
// Mount. The ring can be mounted again afterwards.
func (r *Ring) Teardown() {
	if !r.mounted {
		return
	}
	r.cancelFrame()
	for _, id := range r.listeners {
		r.host.RemoveListener(id)
	}
	r.listeners = nil
	r.mounted = false
	r.state = Idle
	r.field = nil
	r.surface = nil
	r.pointer = particle.Pointer{}
}

func (r *Ring) cancelFrame() {
	if r.scheduled {
		r.host.CancelFrame(r.frame)
		r.scheduled = false
	}
}

func (r *Ring) handleResize(width, height int) {
	if r.field != nil && width == r.width {
		if r.ready() {
			return
		}
		// keep the population, only retry what failed last time
		r.cancelFrame()
		r.height = height
		r.acquire(width, height)
		r.frameStep()
		return
	}

	r.cancelFrame()
	r.width, r.height = width, height
	r.field = nil
	r.surface = nil

	field, err := particle.NewField(width, height, r.tuning, r.rng)
	if err != nil {
		utils.Debug("Ring not ready: %v", err)
		r.state = Idle
		return
	}
	r.field = field
	r.allocations++
	utils.Debug("Allocated %d cells for %dx%d (%s)", field.Len(), width, height, field.Class)

	r.acquire(width, height)
	r.frameStep()
}

// acquire builds the atlas once and fetches a drawing surface.
func (r *Ring) acquire(width, height int) {
	if r.atlas == nil {
		atlas, err := sprite.Build(sprite.Options{
			TileSize: r.tuning.TileSize,
			Variants: r.tuning.VariantsPerKind,
			Rand:     r.rng,
		})
		if err != nil {
			utils.Warn("Failed to build sprite atlas: %v", err)
		} else {
			r.atlas = atlas
		}
	}

	if r.surface != nil {
		return
	}
	surface, err := r.host.Surface(width, height)
	if err != nil {
		utils.Debug("Skipping draw: %v", err)
		return
	}
	r.surface = surface
}

func (r *Ring) handlePointer(x, y float64) {
	r.pointer = particle.Pointer{X: x, Y: y, Active: true}
}

func (r *Ring) ready() bool {
	return r.field != nil && r.surface != nil && r.atlas != nil
}

func (r *Ring) frameStep() {
	r.scheduled = false
	if !r.ready() {
		r.state = Idle
		return
	}

	r.field.Step(r.pointer)
	if r.field.Draw(r.surface, r.atlas) {
		r.draws++
	}

	w, _ := r.surface.Size()
	if !r.tuning.Animated(w) {
		r.state = Idle
		return
	}

	r.state = Running
	r.frame = r.host.RequestFrame(r.frameStep)
	r.scheduled = true
}

func (r *Ring) State() LoopState { return r.state }
func (r *Ring) Mode() Mode { return r.mode }

// Field returns the current population, or nil when not ready.
func (r *Ring) Field() *particle.Field { return r.field }

func (r *Ring) Atlas() *sprite.Atlas { return r.atlas }

// Allocations counts population allocations since creation.
func (r *Ring) Allocations() int { return r.allocations }

// Draws counts frames composited since creation.
func (r *Ring) Draws() uint64 { return r.draws }

// Fallback reports whether the viewport is too narrow for the animation
// and the static image should be shown instead.
func (r *Ring) Fallback() bool {
	return r.width > 0 && !r.tuning.Animated(r.width)
}
