package tlv

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/moov-io/bertlv"
)

// Describe renders a hex payload as an indented BER-TLV tag dump for reports
// and debug logging. Payloads that do not decode as TLV fall back to a plain
// hex dump. The output is diagnostic only; field extraction never goes
// through here.
func Describe(payload string) string {
	raw, err := hex.DecodeString(strings.ReplaceAll(payload, " ", ""))
	if err != nil || len(raw) == 0 {
		return fmt.Sprintf("    (raw) %s", strings.ToUpper(payload))
	}

	packets, err := bertlv.Decode(raw)
	if err != nil || len(packets) == 0 {
		return fmt.Sprintf("    (raw) %s", strings.ToUpper(hex.EncodeToString(raw)))
	}

	var sb strings.Builder
	writePackets(&sb, packets, 1)
	return strings.TrimRight(sb.String(), "\n")
}

func writePackets(sb *strings.Builder, packets []bertlv.TLV, depth int) {
	indent := strings.Repeat("    ", depth)

	for _, p := range packets {
		if len(p.TLVs) > 0 {
			fmt.Fprintf(sb, "%s- Tag %s (constructed)\n", indent, strings.ToUpper(p.Tag))
			writePackets(sb, p.TLVs, depth+1)
			continue
		}

		valStr := strings.ToUpper(hex.EncodeToString(p.Value))
		fmt.Fprintf(sb, "%s- Tag %s (%d bytes): %s (%q)\n",
			indent, strings.ToUpper(p.Tag), len(p.Value), valStr, MakeSafeASCII(p.Value))
	}
}

// MakeSafeASCII replaces non-printable bytes with '.' for display.
func MakeSafeASCII(data []byte) string {
	return strings.Map(func(r rune) rune {
		if r >= 32 && r <= 126 {
			return r
		}
		return '.'
	}, string(data))
}
