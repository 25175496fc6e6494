package iso7816

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHexRoundTrip(t *testing.T) {
	tests := []string{
		"00A4040008A000000018434D00",
		"9000",
		"",
		"deadbeef", // lower case normalizes on the way back
	}

	for _, in := range tests {
		b, err := HexToBytes(in)
		if err != nil {
			t.Fatalf("HexToBytes(%q) failed: %v", in, err)
		}
		if got, want := BytesToHex(b), strings.ToUpper(in); got != want {
			t.Errorf("round trip of %q = %q, want %q", in, got, want)
		}
	}
}

func TestHexToBytes_Invalid(t *testing.T) {
	tests := []string{
		"0",     // odd length
		"123",   // odd length
		"zz",    // non-hex
		"90 00", // spaces are not valid in raw frames
	}

	for _, in := range tests {
		if _, err := HexToBytes(in); !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("HexToBytes(%q) error = %v, want ErrInvalidFormat", in, err)
		}
	}
}

func TestF(t *testing.T) {
	got, err := F("00 A4 04 00", "02", "3F00").Bytes()
	if err != nil {
		t.Fatalf("Bytes() failed: %v", err)
	}

	want := []byte{0x00, 0xA4, 0x04, 0x00, 0x02, 0x3F, 0x00}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("F() mismatch (-want +got):\n%s", diff)
	}
}

func TestF_PanicsOnMalformedLiteral(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("F with malformed literal did not panic")
		}
	}()
	F("00 A4 0")
}
