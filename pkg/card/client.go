package card

import (
	"github.com/Iranians-Vote-Digital-Democracy/INIDCA/pkg/iso7816"
)

// FRAME-SEND WRAPPER:
// Every exchange against the card goes through Client.Exchange, which adds
// the one piece of protocol behavior shared by all length-sensitive
// commands: when the card answers '6C XX' (wrong length), the command is
// re-issued exactly once with Le replaced by the card-supplied XX. A second
// wrong-length answer, or one on a command with no Le to correct, is
// reported upward as-is.
//
// Continuation ('61 XX') is deliberately NOT handled here: the chunked
// reader owns GET RESPONSE so its accumulator sees every chunk it stitches.

// Client wraps one session with the shared frame-level exchange behavior.
type Client struct {
	Session Session
}

// NewClient creates a Client over an open session.
func NewClient(s Session) *Client {
	return &Client{Session: s}
}

// Exchange sends a command, splits the response into data and classified
// status, and applies the single wrong-length correction retry. A transport
// error (including ErrTagLost) passes through untouched.
func (c *Client) Exchange(cmd iso7816.Frame) ([]byte, iso7816.Status, error) {
	data, st, err := c.exchangeOnce(cmd)
	if err != nil {
		return nil, iso7816.Status{}, err
	}

	if st.Outcome == iso7816.WrongLength {
		fixed, werr := iso7816.WithLe(cmd, byte(st.Param))
		if werr != nil {
			// Command carries no Le to correct; report the condition upward.
			return data, st, nil
		}
		return c.exchangeOnce(fixed)
	}

	return data, st, nil
}

func (c *Client) exchangeOnce(cmd iso7816.Frame) ([]byte, iso7816.Status, error) {
	resp, err := c.Session.Exchange(cmd)
	if err != nil {
		return nil, iso7816.Status{}, err
	}
	return iso7816.Split(resp)
}
