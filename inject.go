package corlena

// syntheticSample is a queued pointer sample in screen coordinates. It is
// converted to world coordinates with the view current at the frame it is
// applied, identical to host input.
type syntheticSample struct {
	id               int32
	screenX, screenY float64
	pressed          bool
}

// InjectPress queues a press on node id at the given screen coordinates. The
// sample is applied at the start of the next ProcessFrame.
func (e *Engine) InjectPress(id int32, x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticSample{id: id, screenX: x, screenY: y, pressed: true})
}

// InjectMove queues a held-button move. Use it between InjectPress and
// InjectRelease to simulate a drag.
func (e *Engine) InjectMove(id int32, x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticSample{id: id, screenX: x, screenY: y, pressed: true})
}

// InjectRelease queues a release at the given screen coordinates.
func (e *Engine) InjectRelease(id int32, x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticSample{id: id, screenX: x, screenY: y, pressed: false})
}

// InjectTap queues a press followed by a release at the same point.
// Consumes two frames.
func (e *Engine) InjectTap(id int32, x, y float64) {
	e.InjectPress(id, x, y)
	e.InjectRelease(id, x, y)
}

// InjectDrag queues a press at (fromX, fromY), frames-2 moves interpolated
// linearly so the last one lands on (toX, toY), and a release there. The
// sequence consumes frames frames; minimum is 2 (press + release, no move).
func (e *Engine) InjectDrag(id int32, fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	e.InjectPress(id, fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		e.InjectMove(id, fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	e.InjectRelease(id, toX, toY)
}

// PendingInput returns the number of queued synthetic samples.
func (e *Engine) PendingInput() int {
	return len(e.injectQueue)
}

// applyPendingInput pops one synthetic sample and feeds it through the
// gesture state machine. Returns true if a sample was consumed.
func (e *Engine) applyPendingInput() bool {
	if len(e.injectQueue) == 0 {
		return false
	}
	s := e.injectQueue[0]
	copy(e.injectQueue, e.injectQueue[1:])
	e.injectQueue = e.injectQueue[:len(e.injectQueue)-1]

	var buttons float64
	if s.pressed {
		buttons = 1
	}
	e.applySample(PointerSample{ID: s.id, ScreenX: s.screenX, ScreenY: s.screenY, Buttons: buttons})
	return true
}
