package iso7816

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// HEX FRAME REPRESENTATION:
// Commands and responses cross the transport boundary as hex text: two hex
// characters per byte, case-insensitive. This keeps frames printable in logs
// and trivially comparable in catalogs and tests; the codec below is the only
// place where the textual and binary views meet.

// ErrInvalidFormat reports a malformed hex frame (odd length or non-hex
// characters).
var ErrInvalidFormat = fmt.Errorf("iso7816: invalid hex format")

// Frame is one command or response unit exchanged with the card, encoded as
// upper-case hex text.
type Frame string

// Bytes decodes the frame into its raw byte representation.
func (f Frame) Bytes() ([]byte, error) {
	return HexToBytes(string(f))
}

// FrameFromBytes encodes raw bytes as a Frame.
func FrameFromBytes(b []byte) Frame {
	return Frame(BytesToHex(b))
}

// BytesToHex encodes bytes as upper-case hex text.
func BytesToHex(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

// HexToBytes decodes hex text into bytes. It fails with ErrInvalidFormat when
// the input has odd length or contains non-hex characters.
func HexToBytes(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: odd length %d", ErrInvalidFormat, len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, s)
	}
	return b, nil
}

// F constructs a Frame from hex literal parts, ignoring spaces to allow the
// "00 A4 04 00" notation used in catalogs. It panics on malformed input and
// is meant for compile-time data only.
func F(parts ...string) Frame {
	cleaned := strings.ReplaceAll(strings.Join(parts, ""), " ", "")
	b, err := HexToBytes(cleaned)
	if err != nil {
		panic(fmt.Sprintf("invalid frame literal %q: %v", cleaned, err))
	}
	return FrameFromBytes(b)
}
