// Package idcard composes the protocol layers into the named high-level
// operations of the national identity card profile: certificate, date,
// serial and biometric-flag reads. Each operation owns one card session for
// its whole duration: acquire, select, read, extract, release.
package idcard

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Iranians-Vote-Digital-Democracy/INIDCA/pkg/card"
	"github.com/Iranians-Vote-Digital-Democracy/INIDCA/pkg/iso7816"
)

// Operation describes one named read operation as pure configuration.
type Operation struct {
	Name string

	// Selection navigates to the target file before reading.
	Selection card.SelectionSequence

	// StrictSelection aborts the operation when selection fails. Lenient
	// operations log the degradation and attempt the read anyway.
	StrictSelection bool

	// Read parameterizes the chunked read of the selected file.
	Read card.ReadConfig

	// Extract transforms the hex payload into the operation's artifact.
	// Nil is the identity (raw payload, e.g. certificate bytes).
	Extract func(payload string) string
}

// Result is the immutable outcome of one operation.
type Result struct {
	Success bool

	// Payload is the extracted artifact as hex text.
	Payload string

	// Size is the payload length in bytes.
	Size int

	// Diagnostic explains failures and non-fatal degradations.
	Diagnostic string
}

// Orchestrator runs operations against a transport. Operations are strictly
// sequential: each Run acquires its own session and releases it before
// returning, on every path.
type Orchestrator struct {
	Transport card.Transport

	// StepDelay is handed to the file selector.
	StepDelay time.Duration

	// Logger receives operation events. Nil uses slog.Default.
	Logger *slog.Logger
}

// NewOrchestrator creates an Orchestrator with default timing.
func NewOrchestrator(t card.Transport) *Orchestrator {
	return &Orchestrator{Transport: t, StepDelay: card.DefaultStepDelay}
}

// Run executes one operation. The returned error is non-nil only for the
// tag-lost condition (errors.Is card.ErrTagLost), which is surfaced
// distinctly so the caller can re-poll for the card; every other failure is
// reported inside the Result.
func (o *Orchestrator) Run(op Operation) (Result, error) {
	logger := o.logger().With("operation", op.Name)

	sess, err := o.Transport.Begin()
	if err != nil {
		if errors.Is(err, card.ErrTagLost) {
			return Result{Diagnostic: "no card present"}, err
		}
		return Result{Diagnostic: fmt.Sprintf("transport: %v", err)}, nil
	}

	closeMsg := "ok"
	defer func() { sess.Close(closeMsg) }()

	client := card.NewClient(sess)

	selector := &card.Selector{Client: client, StepDelay: o.StepDelay, Logger: logger}
	sel, err := selector.Run(op.Selection)
	if err != nil {
		closeMsg = "tag lost during selection"
		return Result{Diagnostic: closeMsg}, err
	}
	if !sel.OK {
		if op.StrictSelection {
			closeMsg = fmt.Sprintf("selection failed at step %q: %s", sel.FailedStep, sel.Detail)
			return Result{Diagnostic: closeMsg}, nil
		}
		logger.Warn("selection degraded, reading anyway",
			"step", sel.FailedStep, "detail", sel.Detail)
	}

	reader := &card.Reader{Client: client, Config: op.Read, Logger: logger}
	rr, err := reader.ReadAll(0)
	if err != nil {
		closeMsg = "tag lost during read"
		return Result{Diagnostic: closeMsg}, err
	}
	if rr.Size() == 0 {
		reason := rr.Reason
		if reason == "" {
			reason = card.ReasonNoData
		}
		closeMsg = "read failed: " + reason
		return Result{Diagnostic: closeMsg}, nil
	}

	diagnostic := ""
	if !rr.Complete {
		// Partial payloads still flow to the caller; the diagnostic records
		// the degradation.
		diagnostic = "incomplete read: " + rr.Reason
		logger.Warn("read incomplete", "reason", rr.Reason, "bytes", rr.Size())
	}

	payload := iso7816.BytesToHex(rr.Data)
	if op.Extract != nil {
		payload = op.Extract(payload)
		if payload == "" {
			// Field absent from the payload. Not fatal: the read itself
			// succeeded and the caller may treat the field as optional.
			diagnostic = "extraction empty: field absent"
		}
	}

	logger.Debug("operation completed", "bytes", len(payload)/2, "diagnostic", diagnostic)

	return Result{
		Success:    true,
		Payload:    payload,
		Size:       len(payload) / 2,
		Diagnostic: diagnostic,
	}, nil
}

func (o *Orchestrator) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
