package scrollview

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// ErrInvalidScript is returned by LoadTestScript for malformed scripts.
var ErrInvalidScript = errors.New("scrollview: invalid test script")

// testStep is a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	ID     int     `json:"id,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	From   float64 `json:"from,omitempty"`
	To     float64 `json:"to,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner plays a scripted sequence of injected gestures, waits and
// screenshots across frames. Attach it with Scene.SetTestRunner.
//
// Supported actions:
//
//	tap        x, y
//	drag       fromX, fromY, toX, toY, frames
//	pinch      x, y (center), from, to (finger distance), frames
//	wait       frames
//	screenshot label
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script.
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, errors.Wrap(err, "scrollview: parse test script")
	}
	if len(script.Steps) == 0 {
		return nil, errors.Wrap(ErrInvalidScript, "no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "tap", "drag", "pinch", "wait", "screenshot":
		default:
			return nil, errors.Wrapf(ErrInvalidScript, "step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a runner. It is advanced at the start of every
// Update and Step.
func (s *Scene) SetTestRunner(r *TestRunner) {
	s.testRunner = r
}

// Done reports whether every step ran and all injected input was consumed.
func (r *TestRunner) Done() bool {
	return r.done
}

func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	d := s.touches
	if d.Pending() > 0 {
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
	id := TouchID(st.ID)

	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "tap":
		d.InjectTap(id, st.X, st.Y)
	case "drag":
		d.InjectDrag(id, st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "pinch":
		d.InjectPinch(id, st.X, st.Y, st.From, st.To, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && d.Pending() == 0 {
		r.done = true
	}
}
