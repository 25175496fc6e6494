// Package tlv provides the payload extraction used for identity-card files:
// a flat, first-match tag scan and fixed-offset windowing over hex text,
// plus a BER-TLV inspection dump for diagnostics.
package tlv

import (
	"fmt"
	"strconv"
	"strings"
)

// FLAT TAG SCAN:
// Card files in scope are flat sequences of single-byte-tag, single-byte-
// length fields, and the consumers only ever want the first occurrence of a
// given tag. The scanner therefore walks the hex text one byte (two
// characters) at a time and stops at the first plausible match: target tag,
// then a length byte L, then at least L bytes of trailing data. This is
// intentionally not a recursive BER-TLV parser.

// ExtractAt returns the hex window of length bytes starting at the given
// byte offset. It returns "" when the payload is too short, never an error:
// absent fields are not exceptional.
func ExtractAt(payload string, offset, length int) string {
	if offset < 0 || length <= 0 {
		return ""
	}
	end := 2 * (offset + length)
	if len(payload) < end {
		return ""
	}
	return payload[2*offset : end]
}

// ScanTag returns the value of the first occurrence of tag in the payload,
// or "" when the tag is absent or its announced value runs past the end.
func ScanTag(payload string, tag byte) string {
	value, _ := ScanTagFrom(payload, 0, tag)
	return value
}

// ScanTagFrom scans for tag starting at the given hex-character position and
// returns the matched value plus the position just past it, so a follow-up
// scan can resume there. A not-found scan returns ("", -1).
func ScanTagFrom(payload string, start int, tag byte) (string, int) {
	target := fmt.Sprintf("%02X", tag)

	if start < 0 {
		start = 0
	}
	// Byte alignment: positions are always even.
	start -= start % 2

	for i := start; i+4 <= len(payload); i += 2 {
		if !strings.EqualFold(payload[i:i+2], target) {
			continue
		}

		length, err := strconv.ParseUint(payload[i+2:i+4], 16, 8)
		if err != nil {
			continue
		}

		end := i + 4 + 2*int(length)
		if end > len(payload) {
			// Announced value runs past the payload: not a real field here,
			// keep scanning.
			continue
		}

		return payload[i+4 : end], end
	}

	return "", -1
}
