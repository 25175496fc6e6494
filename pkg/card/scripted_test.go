package card

import (
	"testing"

	"github.com/Iranians-Vote-Digital-Democracy/INIDCA/pkg/iso7816"
)

// exchange is one scripted command/response pair. An empty want skips the
// command check.
type exchange struct {
	want iso7816.Frame
	resp iso7816.Frame
	err  error
}

// scriptedSession replays a fixed conversation and fails the test on any
// deviation from the script.
type scriptedSession struct {
	t        *testing.T
	script   []exchange
	calls    []iso7816.Frame
	closed   bool
	closeMsg string
}

func (s *scriptedSession) Exchange(cmd iso7816.Frame) (iso7816.Frame, error) {
	s.t.Helper()

	if len(s.calls) >= len(s.script) {
		s.t.Fatalf("unexpected exchange #%d: %s", len(s.calls)+1, cmd)
	}

	step := s.script[len(s.calls)]
	s.calls = append(s.calls, cmd)

	if step.want != "" && cmd != step.want {
		s.t.Fatalf("exchange #%d sent %s, want %s", len(s.calls), cmd, step.want)
	}

	return step.resp, step.err
}

func (s *scriptedSession) Close(message string) {
	s.closed = true
	s.closeMsg = message
}

func (s *scriptedSession) assertDrained() {
	s.t.Helper()
	if len(s.calls) != len(s.script) {
		s.t.Errorf("script not drained: %d of %d exchanges performed", len(s.calls), len(s.script))
	}
}
