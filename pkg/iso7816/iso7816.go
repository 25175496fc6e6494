/*
Package iso7816 implements the application-layer frame vocabulary for talking
to a contact identity card: hex frame encoding, command construction and
status-word classification, following ISO/IEC 7816-4.

Everything in this package is pure: functions map bytes to frames and status
words to classifications, with no I/O and no state. The transport-facing
logic (sending frames, retries, chunked reads) lives in package card.

# Frames

A Frame is one command or response unit, carried as upper-case hex text, two
characters per byte. HexToBytes and BytesToHex round-trip exactly; decoding
fails with ErrInvalidFormat for odd-length or non-hex input.

# Status words

Every response ends with a 2-byte status word. Classify maps the pair to one
of ten Outcomes (Success, Warning, Continuation, WrongLength, and so on), a
description, and the embedded parameter carried by the dynamic ranges:

	9000  Success
	61XX  Continuation, XX bytes retrievable via GET RESPONSE
	6CXX  WrongLength, XX is the Le the card expects
	6B00  EndOfFile
	6A82  FileOrRecordNotFound

Split applies the same classification to a whole response frame, separating
the data body from the trailer.
*/
package iso7816
