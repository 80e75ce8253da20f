package player

import (
	"testing"
	"time"

	"github.com/eyevinn-osaas/ograf-editor/internal/models"
)

// fakeScheduler is a manual clock. Timers fire only when Advance moves the
// simulated time past their deadline, from the calling goroutine.
type fakeScheduler struct {
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (s *fakeScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	t := &fakeTimer{at: s.now + d, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

func (s *fakeScheduler) Advance(d time.Duration) {
	s.now += d
	for _, t := range s.timers {
		if !t.stopped && !t.fired && t.at <= s.now {
			t.fired = true
			t.fn()
		}
	}
}

// Pending counts timers that are armed but have neither fired nor been
// stopped.
func (s *fakeScheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func testSnapshot() models.Snapshot {
	return models.Snapshot{
		Elements: []models.Element{
			{ID: "background", Type: models.ElementRect, X: 0, Y: 0, Width: 100, Height: 50},
			{ID: "name", Type: models.ElementText, X: 10, Y: 10, Width: 80, Height: 20, Content: "{{name}}"},
		},
		Animation: models.AnimationSettings{
			SlideInDuration:  500,
			SlideOutDuration: 300,
			SlideInType:      models.EaseOut,
			SlideOutType:     models.EaseIn,
			SlideInDirection: models.DirectionLeft,
		},
	}
}

func newTestInstance() (*Instance, *fakeScheduler) {
	sched := &fakeScheduler{}
	return NewInstance(testSnapshot(), sched), sched
}

// inlineScheduler runs callbacks synchronously inside AfterFunc, the way a
// zero-duration wall-clock timer may. Transitions must survive that without
// deadlocking on the instance mutex.
type inlineScheduler struct{}

type inlineTimer struct{}

func (inlineScheduler) AfterFunc(_ time.Duration, fn func()) Timer {
	fn()
	return inlineTimer{}
}

func (inlineTimer) Stop() bool { return false }

func closed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestLoadThenSkipPlay(t *testing.T) {
	in, sched := newTestInstance()

	if !closed(in.Load()) {
		t.Fatal("load must complete immediately")
	}
	if in.State() != StateLoaded {
		t.Fatalf("state = %s, want %s", in.State(), StateLoaded)
	}

	if !closed(in.Play(true)) {
		t.Fatal("skip play must complete immediately")
	}
	if in.State() != StateVisible {
		t.Fatalf("state = %s, want %s", in.State(), StateVisible)
	}
	if sched.Pending() != 0 {
		t.Fatalf("pending timers = %d, want 0", sched.Pending())
	}

	frame, ok := in.Frame()
	if !ok {
		t.Fatal("expected rendered output")
	}
	if frame.Transform != "translate(0, 0)" || frame.Transition != "none" {
		t.Errorf("frame %+v", frame)
	}
}

func TestAnimatedPlayCompletesAfterDuration(t *testing.T) {
	in, sched := newTestInstance()
	in.Load()

	done := in.Play(false)
	if in.State() != StateAnimatingIn {
		t.Fatalf("state = %s, want %s", in.State(), StateAnimatingIn)
	}

	frame, _ := in.Frame()
	if frame.Transform != "translate(0, 0)" {
		t.Errorf("transform = %q, want neutral target", frame.Transform)
	}
	if frame.Transition != "transform 500ms ease-out" {
		t.Errorf("transition = %q", frame.Transition)
	}

	sched.Advance(499 * time.Millisecond)
	if closed(done) {
		t.Fatal("completion fired before the slide-in duration elapsed")
	}

	sched.Advance(1 * time.Millisecond)
	if !closed(done) {
		t.Fatal("completion did not fire at the slide-in duration")
	}
	if in.State() != StateVisible {
		t.Fatalf("state = %s, want %s", in.State(), StateVisible)
	}
}

func TestAnimatedTransitionsWithInlineScheduler(t *testing.T) {
	in := NewInstance(testSnapshot(), inlineScheduler{})
	in.Load()

	done := in.Play(false)
	if !closed(done) {
		t.Fatal("inline play completion did not fire")
	}
	if in.State() != StateVisible {
		t.Fatalf("state = %s, want %s", in.State(), StateVisible)
	}

	done = in.Stop(false)
	if !closed(done) {
		t.Fatal("inline stop completion did not fire")
	}
	if in.State() != StateLoaded {
		t.Fatalf("state = %s, want %s", in.State(), StateLoaded)
	}
	if _, ok := in.Frame(); ok {
		t.Fatal("rendered output must be cleared after stop")
	}
}

func TestAnimatedStopClearsOutputAfterDuration(t *testing.T) {
	in, sched := newTestInstance()
	in.Load()
	in.Play(true)

	done := in.Stop(false)
	if in.State() != StateAnimatingOut {
		t.Fatalf("state = %s, want %s", in.State(), StateAnimatingOut)
	}

	// output stays rendered for the whole slide-out
	if _, ok := in.Frame(); !ok {
		t.Fatal("output cleared before the slide-out finished")
	}

	sched.Advance(300 * time.Millisecond)
	if !closed(done) {
		t.Fatal("stop did not complete")
	}
	if in.State() != StateLoaded {
		t.Fatalf("state = %s, want %s", in.State(), StateLoaded)
	}
	if _, ok := in.Frame(); ok {
		t.Fatal("output still rendered after slide-out")
	}
}

func TestStopFallsBackToSlideInDirection(t *testing.T) {
	in, _ := newTestInstance()
	in.Load()
	in.Play(true)
	in.Stop(false)

	frame, ok := in.Frame()
	if !ok {
		t.Fatal("expected rendered output during slide-out")
	}
	// no SlideOutDirection configured: falls back to slide-in left
	if frame.Transform != "translate(-100%, 0)" {
		t.Errorf("transform = %q", frame.Transform)
	}
}

func TestReentrantPlaySupersedesStop(t *testing.T) {
	in, sched := newTestInstance()
	in.Load()
	in.Play(true)

	stopDone := in.Stop(false)
	playDone := in.Play(false)

	if sched.Pending() != 1 {
		t.Fatalf("pending timers = %d, want exactly 1", sched.Pending())
	}

	// past the stop's duration and the play's duration
	sched.Advance(time.Second)

	if closed(stopDone) {
		t.Fatal("superseded stop completion must never fire")
	}
	if !closed(playDone) {
		t.Fatal("play completion missing")
	}
	if in.State() != StateVisible {
		t.Fatalf("state = %s, want %s", in.State(), StateVisible)
	}
	if _, ok := in.Frame(); !ok {
		t.Fatal("superseded stop cleared the output")
	}
}

func TestSkipStopCancelsPendingPlay(t *testing.T) {
	in, sched := newTestInstance()
	in.Load()

	playDone := in.Play(false)
	in.Stop(true)

	sched.Advance(time.Second)
	if closed(playDone) {
		t.Fatal("cancelled play completion must never fire")
	}
	if in.State() != StateLoaded {
		t.Fatalf("state = %s, want %s", in.State(), StateLoaded)
	}
	if sched.Pending() != 0 {
		t.Fatalf("pending timers = %d, want 0", sched.Pending())
	}
}

func TestUpdateInterpolatesWithoutVisibilityChange(t *testing.T) {
	in, sched := newTestInstance()
	in.Load()
	in.Play(true)

	in.Update(map[string]any{"name": "Jane"})

	if in.State() != StateVisible {
		t.Fatalf("update changed state to %s", in.State())
	}
	if sched.Pending() != 0 {
		t.Fatal("update must not start a transition")
	}

	frame, _ := in.Frame()
	if frame.Elements[1].Content != "Jane" {
		t.Errorf("content = %q, want interpolated value", frame.Elements[1].Content)
	}

	// shallow merge keeps earlier keys
	in.Update(map[string]any{"other": 1})
	if got := in.Data()["name"]; got != "Jane" {
		t.Errorf("data[name] = %v after merge", got)
	}
}

func TestLoadResetsData(t *testing.T) {
	in, _ := newTestInstance()
	in.Load()
	in.Update(map[string]any{"name": "Jane"})

	in.Load()
	if len(in.Data()) != 0 {
		t.Fatalf("load must reset the data map, got %v", in.Data())
	}
	if in.State() != StateLoaded {
		t.Fatalf("state = %s", in.State())
	}
}

func TestDispose(t *testing.T) {
	in, sched := newTestInstance()
	in.Load()
	in.Play(false)

	if !closed(in.Dispose()) {
		t.Fatal("dispose must complete immediately")
	}
	if in.State() != StateDisposed {
		t.Fatalf("state = %s", in.State())
	}
	if _, ok := in.Frame(); ok {
		t.Fatal("dispose must clear rendered output")
	}
	if sched.Pending() != 0 {
		t.Fatal("dispose must cancel the pending transition")
	}

	// idempotent, and later ops are inert
	if !closed(in.Dispose()) {
		t.Fatal("second dispose must complete")
	}
	if !closed(in.Play(false)) {
		t.Fatal("play after dispose must still complete")
	}
	if in.State() != StateDisposed {
		t.Fatalf("state = %s after play on disposed", in.State())
	}
}

func TestCustomAction(t *testing.T) {
	in, sched := newTestInstance()
	in.Load()

	done := in.CustomAction("slideIn", nil)
	if in.State() != StateAnimatingIn {
		t.Fatalf("state = %s", in.State())
	}
	sched.Advance(500 * time.Millisecond)
	if !closed(done) {
		t.Fatal("slideIn did not complete")
	}

	out := in.CustomAction("slideOut", nil)
	sched.Advance(300 * time.Millisecond)
	if !closed(out) {
		t.Fatal("slideOut did not complete")
	}
	if in.State() != StateLoaded {
		t.Fatalf("state = %s", in.State())
	}

	// unknown names are a no-op that still completes
	if !closed(in.CustomAction("explode", nil)) {
		t.Fatal("unknown action must still signal completion")
	}
	if in.State() != StateLoaded {
		t.Fatalf("unknown action changed state to %s", in.State())
	}
}

func TestOffsetTransform(t *testing.T) {
	tests := []struct {
		direction string
		want      string
	}{
		{models.DirectionLeft, "translate(-100%, 0)"},
		{models.DirectionRight, "translate(100%, 0)"},
		{models.DirectionTop, "translate(0, -100%)"},
		{models.DirectionBottom, "translate(0, 100%)"},
		{"diagonal", "translate(-100%, 0)"},
		{"", "translate(-100%, 0)"},
	}

	for _, tt := range tests {
		if got := offsetTransform(tt.direction); got != tt.want {
			t.Errorf("offsetTransform(%q) = %q, want %q", tt.direction, got, tt.want)
		}
	}
}
