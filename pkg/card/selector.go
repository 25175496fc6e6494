package card

import (
	"errors"
	"log/slog"
	"time"

	"github.com/Iranians-Vote-Digital-Democracy/INIDCA/pkg/iso7816"
)

// DefaultStepDelay is the pause between consecutive selection steps.
// Physical cards need a short breather between file selections or they
// answer the next command with spurious errors.
const DefaultStepDelay = 25 * time.Millisecond

// SelectionStep is one named frame of a selection sequence.
type SelectionStep struct {
	Name  string
	Frame iso7816.Frame
}

// SelectionSequence is an ordered list of selection steps. Order is the
// protocol order; sequences are never re-ordered.
type SelectionSequence []SelectionStep

// SelectionResult reports how a sequence run ended.
type SelectionResult struct {
	OK bool

	// FailedStep names the step that aborted the sequence; empty when OK.
	FailedStep string

	// Status is the classified status of the failing step, or of the last
	// step when the sequence succeeded. Zero when the step's exchange itself
	// failed.
	Status iso7816.Status

	// Detail is a human-readable failure summary; empty when OK.
	Detail string
}

// Selector transmits selection sequences step by step. Per-step policy:
// proceed on any data-bearing status (success, warning, continuation),
// abort the whole sequence on anything else. Steps are never retried.
type Selector struct {
	Client *Client

	// StepDelay is the inter-step pause; zero disables it (tests).
	StepDelay time.Duration

	// Logger receives per-step debug events. Nil uses slog.Default.
	Logger *slog.Logger
}

// NewSelector creates a Selector with the default inter-step delay.
func NewSelector(c *Client) *Selector {
	return &Selector{Client: c, StepDelay: DefaultStepDelay}
}

// Run executes the sequence in order. A tag-lost condition escalates as an
// error; any other failure lands in the result with the failing step's name.
func (s *Selector) Run(seq SelectionSequence) (SelectionResult, error) {
	logger := s.logger()

	var last iso7816.Status
	for i, step := range seq {
		if i > 0 && s.StepDelay > 0 {
			time.Sleep(s.StepDelay)
		}

		_, st, err := s.Client.Exchange(step.Frame)
		if err != nil {
			if errors.Is(err, ErrTagLost) {
				return SelectionResult{FailedStep: step.Name, Detail: "tag lost"}, err
			}
			return SelectionResult{FailedStep: step.Name, Detail: err.Error()}, nil
		}

		logger.Debug("selection step", "step", step.Name, "status", st.String())

		if !st.OK() {
			return SelectionResult{FailedStep: step.Name, Status: st, Detail: st.String()}, nil
		}
		last = st
	}

	return SelectionResult{OK: true, Status: last}, nil
}

func (s *Selector) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
