package corlena

import (
	"io"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/tanema/gween/ease"
)

type recordingSink struct {
	events []Event
}

func (s *recordingSink) EmitEvent(ev Event) {
	s.events = append(s.events, ev)
}

func TestTransformsLayout(t *testing.T) {
	e := NewEngine(0)
	e.SetView(2, 10, 20, 1)
	e.UpsertNodes(EncodeNodes(nil,
		NodeRecord{ID: 1, X: 3, Y: 4, W: 1, H: 1},
		NodeRecord{ID: 9, X: -5, Y: 6, W: 1, H: 1},
	))
	f := e.ProcessFrame(0.016)
	want := []float32{1, 3, 4, 0, 2, 2, 0, 9, -5, 6, 0, 2, 2, 0}
	if len(f.Transforms) != len(want) {
		t.Fatalf("transforms len = %d, want %d", len(f.Transforms), len(want))
	}
	for i, w := range want {
		if f.Transforms[i] != w {
			t.Errorf("slot %d = %v, want %v", i, f.Transforms[i], w)
		}
	}
}

func TestEventsDrainEachFrame(t *testing.T) {
	e := newTestEngine(t)
	e.ApplyPointers(EncodePointer(nil, 1, 5, 5, 1))
	if e.QueuedEvents() != 1 {
		t.Fatalf("queued = %d, want 1", e.QueuedEvents())
	}
	f := e.ProcessFrame(0.016)
	evs := eventsOf(f)
	if len(evs) != 1 || evs[0] != (Event{Type: EventDragStart, A: 1}) {
		t.Fatalf("events = %v", evs)
	}
	if len(f.Events) != EventStride || f.Events[3] != 0 {
		t.Errorf("raw events = %v", f.Events)
	}
	if f = e.ProcessFrame(0.016); len(f.Events) != 0 {
		t.Errorf("second frame events = %v, want drained", f.Events)
	}
}

func TestEventSinkSeesEveryEvent(t *testing.T) {
	e := newTestEngine(t)
	sink := &recordingSink{}
	e.SetEventSink(sink)
	e.ApplyPointers(EncodePointer(nil, 1, 5, 5, 1))
	e.ProcessFrame(0.05)
	e.ApplyPointers(EncodePointer(nil, 1, 5, 5, 0))
	for i := 0; i < 20; i++ {
		e.ProcessFrame(0.05)
	}
	want := []EventType{EventDragStart, EventDragEnd, EventTap}
	if len(sink.events) != len(want) {
		t.Fatalf("sink got %v", sink.events)
	}
	for i, typ := range want {
		if sink.events[i].Type != typ {
			t.Errorf("event %d = %v, want %v", i, sink.events[i].Type, typ)
		}
	}
	e.SetEventSink(nil)
	e.ApplyPointers(EncodePointer(nil, 1, 5, 5, 1))
	if len(sink.events) != 3 {
		t.Error("detached sink still receives events")
	}
}

func TestClockAdvances(t *testing.T) {
	e := NewEngine(0)
	for i := 0; i < 4; i++ {
		e.ProcessFrame(0.25)
	}
	assertNear(t, "clock", e.Clock(), 1)
	e.ProcessFrame(math.NaN())
	assertNear(t, "clock after NaN", e.Clock(), 1)
}

func TestReset(t *testing.T) {
	e := newTestEngine(t)
	sink := &recordingSink{}
	e.SetEventSink(sink)
	e.SetConstraints(constraints(0, 0, 10, 10, 2, 2, 1, 0.5))
	e.SetView(3, 1, 1, 2)
	e.SpawnParticles(EncodeParticles(nil, ParticleRecord{Radius: 1, Life: 1}))
	e.StartPath(1, 0, 0, 1, 0, 1)
	e.StoreImage(1, make([]byte, 4), 1, 1)
	e.InjectTap(1, 5, 5)
	e.ProcessFrame(0.5)
	e.ApplyPointers(EncodePointer(nil, 1, 5, 5, 0))

	e.Reset()

	if e.NodeCount() != 0 || e.ParticleCount() != 0 || e.PathCount() != 0 {
		t.Errorf("counts = %d/%d/%d, want all zero", e.NodeCount(), e.ParticleCount(), e.PathCount())
	}
	if _, _, ok := e.ImageSize(1); ok {
		t.Error("image survived reset")
	}
	if e.Clock() != 0 || e.QueuedEvents() != 0 || e.PendingInput() != 0 {
		t.Errorf("clock = %v, queued = %d, pending = %d", e.Clock(), e.QueuedEvents(), e.PendingInput())
	}
	if e.Constraints() != DefaultConstraints || e.View() != DefaultView || e.TapParams() != DefaultTapParams {
		t.Error("parameters not restored to defaults")
	}
	f := e.ProcessFrame(0.016)
	if len(f.Transforms)+len(f.Particles)+len(f.DrawPaths)+len(f.Events) != 0 {
		t.Errorf("frame after reset not empty: %+v", f)
	}

	before := len(sink.events)
	e.UpsertNodes(EncodeNodes(nil, NodeRecord{ID: 2, W: 4, H: 4}))
	e.ApplyPointers(EncodePointer(nil, 2, 1, 1, 1))
	if len(sink.events) != before+1 {
		t.Error("sink should survive reset")
	}
}

func TestAnimateView(t *testing.T) {
	e := NewEngine(0)
	e.AnimateView(2, 100, -50, 1, nil)
	if !e.ViewAnimating() {
		t.Fatal("ViewAnimating = false after AnimateView")
	}
	e.ProcessFrame(0.5)
	v := e.View()
	assertNearTol(t, "scale", v.Scale, 1.5, 1e-5)
	assertNearTol(t, "panX", v.PanX, 50, 1e-4)
	assertNearTol(t, "panY", v.PanY, -25, 1e-4)

	e.ProcessFrame(0.6)
	v = e.View()
	if e.ViewAnimating() {
		t.Error("animation should have finished")
	}
	assertNearTol(t, "final scale", v.Scale, 2, 1e-5)
	assertNearTol(t, "final panX", v.PanX, 100, 1e-4)
}

func TestAnimateViewEasingAndCancel(t *testing.T) {
	e := NewEngine(0)
	e.AnimateView(3, 0, 0, 1, ease.InQuad)
	e.ProcessFrame(0.5)
	assertNearTol(t, "eased scale", e.View().Scale, 1.5, 1e-5)

	e.SetView(1, 0, 0, 1)
	if e.ViewAnimating() {
		t.Error("SetView should cancel the animation")
	}
	e.ProcessFrame(0.5)
	assertNear(t, "scale after cancel", e.View().Scale, 1)

	e.AnimateView(4, 0, 0, 0, nil)
	if e.ViewAnimating() || e.View().Scale != 4 {
		t.Error("zero duration should apply immediately")
	}
}

func TestDebugModeWritesStats(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	orig := os.Stderr
	os.Stderr = w
	t.Cleanup(func() { os.Stderr = orig })

	e := newTestEngine(t)
	e.SetDebugMode(true)
	e.ProcessFrame(0.016)
	e.ApplyPointers([]float32{1, 2, 3})
	e.SetDebugMode(false)
	e.ProcessFrame(0.016)

	_ = w.Close()
	out, _ := io.ReadAll(r)
	s := string(out)
	if !strings.Contains(s, "[corlena] nodes: 1") {
		t.Errorf("missing stats line in %q", s)
	}
	if !strings.Contains(s, "ignored-malformed-input") {
		t.Errorf("missing malformed warning in %q", s)
	}
	if strings.Count(s, "[corlena] input:") != 1 {
		t.Errorf("stats should only print while debug is on: %q", s)
	}
}
