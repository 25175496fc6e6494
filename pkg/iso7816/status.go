package iso7816

import (
	"fmt"

	"github.com/Iranians-Vote-Digital-Democracy/INIDCA/pkg/bits"
)

// STATUS WORD CLASSIFICATION:
//
// Every response ends with a 2-byte status word (SW1 SW2). Most values are
// static, but a few ranges are dynamic and carry a parameter:
//
//  1. '61XX': process completed, XX more bytes retrievable via GET RESPONSE.
//  2. '6CXX': wrong length, XX is the Le the card expects.
//  3. '63CX': warning counter, the low nibble of SW2 is the counter value.
//
// Classification is a pure, total function from the two bytes to an Outcome;
// it never fails and holds no state.

// Outcome is the semantic class of a status word.
type Outcome int

const (
	Success Outcome = iota
	Warning
	Continuation
	WrongLength
	FileOrRecordNotFound
	EndOfFile
	InstructionNotSupported
	ClassNotSupported
	SecurityError
	UnknownError
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "Success"
	case Warning:
		return "Warning"
	case Continuation:
		return "Continuation"
	case WrongLength:
		return "WrongLength"
	case FileOrRecordNotFound:
		return "FileOrRecordNotFound"
	case EndOfFile:
		return "EndOfFile"
	case InstructionNotSupported:
		return "InstructionNotSupported"
	case ClassNotSupported:
		return "ClassNotSupported"
	case SecurityError:
		return "SecurityError"
	default:
		return "UnknownError"
	}
}

// Status is the classification of one status word.
type Status struct {
	// Code is the raw two-byte value, SW1 in the high byte.
	Code uint16

	Outcome Outcome

	// Description is a human-readable reading of the code, including the
	// sub-reason for warning, security and parameter errors.
	Description string

	// Param carries the embedded numeric parameter where one exists:
	// bytes remaining for Continuation, the corrected Le for WrongLength,
	// the counter value for '63CX' warnings. Zero otherwise.
	Param int
}

// OK reports whether the response is data-bearing: Success, Warning and
// Continuation all count, everything else is a failure.
func (s Status) OK() bool {
	switch s.Outcome {
	case Success, Warning, Continuation:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return fmt.Sprintf("[%04X] %s: %s", s.Code, s.Outcome, s.Description)
}

// Classify maps a status word to its Outcome. Pure and total: every input
// yields exactly one classification.
func Classify(sw1, sw2 byte) Status {
	st := Status{Code: uint16(sw1)<<8 | uint16(sw2)}

	switch {
	case sw1 == 0x90 && sw2 == 0x00:
		st.Outcome = Success
		st.Description = "normal processing"

	case sw1 == 0x61:
		st.Outcome = Continuation
		st.Param = int(sw2)
		st.Description = fmt.Sprintf("process completed, %d bytes available", sw2)

	case sw1 == 0x62:
		st.Outcome = Warning
		st.Description = warning62(sw2)

	case sw1 == 0x63:
		st.Outcome = Warning
		if bits.GetRange(sw2, 8, 5) == 0x0C {
			st.Param = int(bits.GetRange(sw2, 4, 1))
			st.Description = fmt.Sprintf("state changed, counter = %d", st.Param)
		} else {
			st.Description = "state of non-volatile memory changed"
		}

	case sw1 == 0x6C:
		st.Outcome = WrongLength
		st.Param = int(sw2)
		st.Description = fmt.Sprintf("wrong length, correct Le is %d", sw2)

	case sw1 == 0x6B && sw2 == 0x00:
		st.Outcome = EndOfFile
		st.Description = "offset outside file boundaries"

	case sw1 == 0x6A && (sw2 == 0x82 || sw2 == 0x83):
		st.Outcome = FileOrRecordNotFound
		if sw2 == 0x82 {
			st.Description = "file not found"
		} else {
			st.Description = "record not found"
		}

	case sw1 == 0x6A:
		st.Outcome = UnknownError
		st.Description = paramError6A(sw2)

	case sw1 == 0x69:
		st.Outcome = SecurityError
		st.Description = securityError69(sw2)

	case sw1 == 0x6D:
		st.Outcome = InstructionNotSupported
		st.Description = "instruction code not supported or invalid"

	case sw1 == 0x6E:
		st.Outcome = ClassNotSupported
		st.Description = "class not supported"

	default:
		st.Outcome = UnknownError
		st.Description = fmt.Sprintf("unrecognized status %02X%02X", sw1, sw2)
	}

	return st
}

// Split separates a response frame into its data body and classified status
// trailer. It fails when the frame decodes to fewer than 2 bytes.
func Split(resp Frame) ([]byte, Status, error) {
	raw, err := resp.Bytes()
	if err != nil {
		return nil, Status{}, err
	}
	if len(raw) < 2 {
		return nil, Status{}, fmt.Errorf("iso7816: response too short: %d bytes", len(raw))
	}

	sw := len(raw) - 2
	return raw[:sw], Classify(raw[sw], raw[sw+1]), nil
}

func warning62(sw2 byte) string {
	switch sw2 {
	case 0x81:
		return "part of returned data may be corrupted"
	case 0x82:
		return "end of file reached before reading requested bytes"
	case 0x83:
		return "selected file deactivated"
	case 0x84:
		return "file control information badly formatted"
	case 0x85:
		return "selected file in termination state"
	default:
		return "state of non-volatile memory unchanged"
	}
}

func paramError6A(sw2 byte) string {
	switch sw2 {
	case 0x80:
		return "incorrect parameters in the data field"
	case 0x81:
		return "function not supported"
	case 0x84:
		return "not enough memory space in the file"
	case 0x86:
		return "incorrect parameters P1-P2"
	case 0x88:
		return "referenced data not found"
	default:
		return "wrong parameters"
	}
}

func securityError69(sw2 byte) string {
	switch sw2 {
	case 0x82:
		return "security status not satisfied"
	case 0x83:
		return "authentication method blocked"
	case 0x84:
		return "referenced data invalidated"
	case 0x85:
		return "conditions of use not satisfied"
	case 0x86:
		return "command not allowed, no current EF"
	case 0x87:
		return "expected secure messaging data objects missing"
	case 0x88:
		return "secure messaging data objects incorrect"
	default:
		return "command not allowed"
	}
}
