package corkboard

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in an input script.
type scriptStep struct {
	Action  string   `json:"action"`
	Button  string   `json:"button,omitempty"`
	X       float64  `json:"x,omitempty"`
	Y       float64  `json:"y,omitempty"`
	FromX   float64  `json:"fromX,omitempty"`
	FromY   float64  `json:"fromY,omitempty"`
	ToX     float64  `json:"toX,omitempty"`
	ToY     float64  `json:"toY,omitempty"`
	Frames  int      `json:"frames,omitempty"`
	Notches float64  `json:"notches,omitempty"`
	Paths   []string `json:"paths,omitempty"`
	Label   string   `json:"label,omitempty"`
}

// script is the top-level JSON structure of an input script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences injected input across updates, for demos and
// automated checks. Attach it to a Board with SetScript.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON input script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	for i, st := range s.Steps {
		if _, err := parseButton(st.Button); err != nil {
			return nil, fmt.Errorf("parse input script: step %d: %w", i, err)
		}
		switch st.Action {
		case "click", "drag", "wheel", "paste", "drop", "wait", "screenshot":
		default:
			return nil, fmt.Errorf("parse input script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

func parseButton(s string) (MouseButton, error) {
	switch s {
	case "", "left":
		return MouseButtonLeft, nil
	case "right":
		return MouseButtonRight, nil
	case "middle":
		return MouseButtonMiddle, nil
	default:
		return 0, fmt.Errorf("unknown button %q", s)
	}
}

// SetScript attaches a script; its next step runs at the start of each
// Update until it is done.
func (b *Board) SetScript(r *ScriptRunner) {
	b.script = r
}

// Done reports whether every step has run.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the script by one update.
func (r *ScriptRunner) step(b *Board) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(b.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	button, _ := parseButton(st.Button)

	switch st.Action {
	case "click":
		b.InjectClick(st.X, st.Y, button)
	case "drag":
		b.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames, button)
	case "wheel":
		b.InjectWheel(st.X, st.Y, st.Notches)
	case "paste":
		b.InjectPaste()
	case "drop":
		b.DropPaths(st.Paths...)
	case "screenshot":
		b.Screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this update counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(b.injectQueue) == 0 {
		r.done = true
	}
}
