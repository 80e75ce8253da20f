// Package player is the host-side runtime for a generated graphic: the
// lifecycle and slide-transition state machine that the generated artifact
// embodies in the browser. The editor uses it to preview playout and the
// tests use it to pin down the contract the artifact must honor.
package player

import (
	"fmt"
	"sync"
	"time"

	"github.com/eyevinn-osaas/ograf-editor/internal/interpolate"
	"github.com/eyevinn-osaas/ograf-editor/internal/models"
)

// State of a graphic instance.
type State string

const (
	StateUnloaded     State = "unloaded"
	StateLoaded       State = "loaded" // loaded but hidden
	StateAnimatingIn  State = "animating-in"
	StateVisible      State = "visible"
	StateAnimatingOut State = "animating-out"
	StateDisposed     State = "disposed"
)

// RenderedElement is one element of the visible output with its content
// already interpolated against the current data map.
type RenderedElement struct {
	ID      string            `json:"id"`
	Type    string            `json:"type"`
	X       float64           `json:"x"`
	Y       float64           `json:"y"`
	Width   float64           `json:"width"`
	Height  float64           `json:"height"`
	Content string            `json:"content,omitempty"`
	Style   map[string]string `json:"style,omitempty"`
}

// Frame is the rendered output of an instance. All elements share one
// transform and transition; they move in lockstep.
type Frame struct {
	Transform  string            `json:"transform"`
	Transition string            `json:"transition"`
	Elements   []RenderedElement `json:"elements"`
}

// transition is the single in-flight timed transition. Starting any new
// transition replaces and cancels the previous handle, so a superseded
// completion can never fire.
type transition struct {
	timer Timer
	done  chan struct{}
}

// Instance is a single playing graphic. Methods return a channel that closes
// when the operation has completed; for an animated transition that is no
// earlier than its configured duration. A transition superseded by a newer
// one is abandoned: its channel never closes.
type Instance struct {
	mu sync.Mutex

	elements  []models.Element
	animation models.AnimationSettings
	sched     Scheduler

	state   State
	data    map[string]any
	frame   *Frame
	pending *transition
}

// NewInstance builds an instance for the given snapshot. A nil scheduler
// selects the wall clock.
func NewInstance(snap models.Snapshot, sched Scheduler) *Instance {
	if sched == nil {
		sched = SystemScheduler()
	}
	anim := snap.Animation
	if anim == (models.AnimationSettings{}) {
		anim = models.DefaultAnimationSettings()
	}

	elements := make([]models.Element, len(snap.Elements))
	for i, el := range snap.Elements {
		elements[i] = el.Clone()
	}

	return &Instance{
		elements:  elements,
		animation: anim,
		sched:     sched,
		state:     StateUnloaded,
		data:      map[string]any{},
	}
}

// State returns the current lifecycle state.
func (in *Instance) State() State {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.state
}

// Frame returns the rendered output, if any.
func (in *Instance) Frame() (Frame, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.frame == nil {
		return Frame{}, false
	}
	return in.copyFrame(), true
}

// Load moves the instance to the loaded (hidden) state from any state,
// resetting the data map and clearing any rendered output. Idempotent.
func (in *Instance) Load() <-chan struct{} {
	in.mu.Lock()
	defer in.mu.Unlock()

	in.cancelPending()
	in.data = map[string]any{}
	in.frame = nil
	in.state = StateLoaded
	return closedChan()
}

// Dispose terminates the instance from any state, clearing rendered output.
// Idempotent.
func (in *Instance) Dispose() <-chan struct{} {
	in.mu.Lock()
	defer in.mu.Unlock()

	in.cancelPending()
	in.frame = nil
	in.state = StateDisposed
	return closedChan()
}

// Play animates the graphic in. With skipAnimation the instance jumps
// straight to visible with no timing; otherwise the elements render at their
// slide-in offset and transition to the neutral position over
// SlideInDuration. The returned channel closes once the transition has run
// its full duration.
func (in *Instance) Play(skipAnimation bool) <-chan struct{} {
	in.mu.Lock()

	if in.state == StateDisposed || in.state == StateUnloaded {
		in.mu.Unlock()
		return closedChan()
	}

	in.cancelPending()

	if skipAnimation {
		in.frame = in.renderFrame(neutralTransform, "none")
		in.state = StateVisible
		in.mu.Unlock()
		return closedChan()
	}

	// Render at the offset position with no transition, then transition to
	// neutral. The artifact does the same via a forced style flush.
	in.frame = in.renderFrame(offsetTransform(in.animation.SlideInDirection), "none")
	in.frame.Transform = neutralTransform
	in.frame.Transition = transitionCSS(in.animation.SlideInDuration, in.animation.SlideInType)
	in.state = StateAnimatingIn

	tr := &transition{done: make(chan struct{})}
	in.pending = tr
	duration := time.Duration(in.animation.SlideInDuration) * time.Millisecond
	in.mu.Unlock()

	in.armTransition(tr, duration, StateVisible, false)
	return tr.done
}

// Stop animates the graphic out. With skipAnimation the rendered output is
// cleared immediately; otherwise the elements transition to the slide-out
// offset over SlideOutDuration and the output is cleared only after the full
// duration has elapsed. The end state is loaded (hidden).
func (in *Instance) Stop(skipAnimation bool) <-chan struct{} {
	in.mu.Lock()

	if in.state == StateDisposed || in.state == StateUnloaded {
		in.mu.Unlock()
		return closedChan()
	}

	in.cancelPending()

	if skipAnimation || in.frame == nil {
		in.frame = nil
		in.state = StateLoaded
		in.mu.Unlock()
		return closedChan()
	}

	direction := in.animation.SlideOutDirection
	if direction == "" {
		direction = in.animation.SlideInDirection
	}

	in.frame.Transform = offsetTransform(direction)
	in.frame.Transition = transitionCSS(in.animation.SlideOutDuration, in.animation.SlideOutType)
	in.state = StateAnimatingOut

	tr := &transition{done: make(chan struct{})}
	in.pending = tr
	duration := time.Duration(in.animation.SlideOutDuration) * time.Millisecond
	in.mu.Unlock()

	in.armTransition(tr, duration, StateLoaded, true)
	return tr.done
}

// Update shallow-merges data into the instance's data map and re-renders
// element content. It never changes visibility and never starts a timed
// transition.
func (in *Instance) Update(data map[string]any) <-chan struct{} {
	in.mu.Lock()
	defer in.mu.Unlock()

	if in.state == StateDisposed {
		return closedChan()
	}

	for k, v := range data {
		in.data[k] = v
	}
	if in.frame != nil {
		in.frame.Elements = in.renderElements()
	}
	return closedChan()
}

// CustomAction dispatches slideIn/slideOut by name. Unrecognized names are a
// no-op that still completes; the sandbox's call sequencing must never be
// broken by a throw.
func (in *Instance) CustomAction(name string, data map[string]any) <-chan struct{} {
	switch name {
	case "slideIn":
		return in.Play(false)
	case "slideOut":
		return in.Stop(false)
	default:
		return closedChan()
	}
}

// Data returns a copy of the current data map.
func (in *Instance) Data() map[string]any {
	in.mu.Lock()
	defer in.mu.Unlock()

	out := make(map[string]any, len(in.data))
	for k, v := range in.data {
		out[k] = v
	}
	return out
}

// armTransition schedules tr's completion. The timer is armed without
// holding the lock: a scheduler may run the callback inline, and
// completeTransition takes the lock itself. If tr was superseded before the
// timer existed, the fresh timer is stopped instead of stored.
func (in *Instance) armTransition(tr *transition, d time.Duration, end State, clear bool) {
	timer := in.sched.AfterFunc(d, func() {
		in.completeTransition(tr, end, clear)
	})

	in.mu.Lock()
	defer in.mu.Unlock()
	if in.pending == tr {
		tr.timer = timer
	} else {
		timer.Stop()
	}
}

// completeTransition runs when a transition timer fires. tr is ignored if it
// is no longer the pending transition: cancellation replaced it and none of
// its effects may apply.
func (in *Instance) completeTransition(tr *transition, end State, clear bool) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if in.pending != tr {
		return
	}
	in.pending = nil

	if clear {
		in.frame = nil
	} else if in.frame != nil {
		in.frame.Transition = "none"
	}
	in.state = end
	close(tr.done)
}

// cancelPending stops and discards the in-flight transition timer, if any.
// Callers hold the lock. The superseded transition's done channel is
// abandoned, never closed.
func (in *Instance) cancelPending() {
	if in.pending == nil {
		return
	}
	// timer is nil while a transition is still being armed; armTransition
	// notices the supersession and stops the fresh timer itself.
	if in.pending.timer != nil {
		in.pending.timer.Stop()
	}
	in.pending = nil
}

const neutralTransform = "translate(0, 0)"

// offsetTransform maps a slide direction to the shared container transform.
// Anything unrecognized falls back to left.
func offsetTransform(direction string) string {
	switch direction {
	case models.DirectionRight:
		return "translate(100%, 0)"
	case models.DirectionTop:
		return "translate(0, -100%)"
	case models.DirectionBottom:
		return "translate(0, 100%)"
	default:
		return "translate(-100%, 0)"
	}
}

func transitionCSS(durationMs int, easing string) string {
	return fmt.Sprintf("transform %dms %s", durationMs, easing)
}

func (in *Instance) renderFrame(transform, transitionValue string) *Frame {
	return &Frame{
		Transform:  transform,
		Transition: transitionValue,
		Elements:   in.renderElements(),
	}
}

func (in *Instance) renderElements() []RenderedElement {
	out := make([]RenderedElement, len(in.elements))
	for i, el := range in.elements {
		out[i] = RenderedElement{
			ID:      el.ID,
			Type:    el.Type,
			X:       el.X,
			Y:       el.Y,
			Width:   el.Width,
			Height:  el.Height,
			Content: interpolate.Apply(el.Content, in.data),
			Style:   el.Style,
		}
	}
	return out
}

func (in *Instance) copyFrame() Frame {
	f := Frame{
		Transform:  in.frame.Transform,
		Transition: in.frame.Transition,
		Elements:   make([]RenderedElement, len(in.frame.Elements)),
	}
	copy(f.Elements, in.frame.Elements)
	return f
}

func closedChan() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
