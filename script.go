package corlena

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in a gesture script. Coordinates are screen
// pixels.
type scriptStep struct {
	Action string  `json:"action"`
	Node   int32   `json:"node"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script sequences synthetic pointer input across frames for reproducible
// gesture sessions. Attach it with Engine.SetScript.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON gesture script of the form
//
//	{"steps": [{"action": "tap", "node": 1, "x": 5, "y": 5}, {"action": "wait", "frames": 30}]}
//
// Actions are press, move, release, tap, drag and wait.
func LoadScript(jsonData []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range f.Steps {
		switch st.Action {
		case "press", "move", "release", "tap", "drag", "wait":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// SetScript attaches a script. Its steps run one per frame at the start of
// ProcessFrame, before pending input is applied. Pass nil to detach.
func (e *Engine) SetScript(s *Script) {
	e.script = s
}

// Done reports whether every step has run and its input has drained.
func (s *Script) Done() bool {
	return s.done
}

// step advances the script by one frame.
func (s *Script) step(e *Engine) {
	if s.done {
		return
	}
	// Wait for queued input to drain before advancing.
	if len(e.injectQueue) > 0 {
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	s.cursor++

	switch st.Action {
	case "press":
		e.InjectPress(st.Node, st.X, st.Y)
	case "move":
		e.InjectMove(st.Node, st.X, st.Y)
	case "release":
		e.InjectRelease(st.Node, st.X, st.Y)
	case "tap":
		e.InjectTap(st.Node, st.X, st.Y)
	case "drag":
		e.InjectDrag(st.Node, st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if s.cursor >= len(s.steps) && s.waitCount == 0 && len(e.injectQueue) == 0 {
		s.done = true
	}
}
