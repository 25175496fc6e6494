// Package card implements the transport-facing protocol logic: the session
// boundary, the shared frame-send wrapper with its wrong-length correction,
// the ordered file-selection runner and the chunked binary reader.
package card

import (
	"errors"

	"github.com/Iranians-Vote-Digital-Democracy/INIDCA/pkg/iso7816"
)

// ErrTagLost reports that the card left the field mid-exchange. It is kept
// distinct from other transport failures on every layer so callers can decide
// to re-poll for the card; match it with errors.Is.
var ErrTagLost = errors.New("card: tag lost")

// Session is one exclusive conversation with a presented card. No two
// operations may hold a session at the same time; composed operations
// serialize, each acquiring its own session.
type Session interface {
	// Exchange transmits one command frame and returns the response frame.
	Exchange(cmd iso7816.Frame) (iso7816.Frame, error)

	// Close releases the session. The message describes how the operation
	// ended ("ok" or a failure summary) for the transport's benefit.
	Close(message string)
}

// Transport hands out card sessions.
type Transport interface {
	Begin() (Session, error)
}
