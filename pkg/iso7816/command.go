package iso7816

import "fmt"

// COMMAND FRAME LAYOUT (ISO/IEC 7816-4, short length):
//
//	CLA INS P1 P2 [Lc Data] [Le]
//
// This card profile only ever needs Case 2 short commands built at runtime
// (READ BINARY, GET RESPONSE); file navigation frames are fixed catalog data
// carried as complete Frame literals.
//
// READ BINARY ('B0'): P1/P2 encode the 15-bit file offset (high/low byte),
// Le the number of bytes requested. Le=00 asks for everything available up
// to the maximum short length (256).
//
// GET RESPONSE ('C0'): retrieves data the card announced with a '61 XX'
// status; Le must match the announced byte count.

// Instruction (INS) codes built at runtime. File navigation (SELECT) frames
// are fixed catalog data and never constructed here.
const (
	InsReadBinary  byte = 0xB0
	InsGetResponse byte = 0xC0
)

// claInterindustry is the first interindustry class: no secure messaging,
// logical channel 0.
const claInterindustry byte = 0x00

// BuildReadBinary builds a READ BINARY command for the given file offset.
// le is the requested chunk length; 0x00 requests the short-length maximum.
func BuildReadBinary(offset uint16, le byte) Frame {
	return FrameFromBytes([]byte{
		claInterindustry,
		InsReadBinary,
		byte(offset >> 8),
		byte(offset),
		le,
	})
}

// BuildGetResponse builds a GET RESPONSE command requesting le pending bytes.
func BuildGetResponse(le byte) Frame {
	return FrameFromBytes([]byte{claInterindustry, InsGetResponse, 0x00, 0x00, le})
}

// WithLe returns a copy of a length-sensitive command with its trailing Le
// byte replaced. Used for the single wrong-length (6CXX) correction retry.
func WithLe(cmd Frame, le byte) (Frame, error) {
	raw, err := cmd.Bytes()
	if err != nil {
		return "", err
	}
	// Header plus Le is the minimum shape that carries an Le at all.
	if len(raw) < 5 {
		return "", fmt.Errorf("iso7816: command %s too short to carry Le", cmd)
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	out[len(out)-1] = le
	return FrameFromBytes(out), nil
}
