package iso7816

import "testing"

func TestBuildReadBinary(t *testing.T) {
	tests := []struct {
		offset uint16
		le     byte
		want   Frame
	}{
		{0x0000, 0xFF, "00B00000FF"},
		{0x0100, 0xF8, "00B00100F8"},
		{0x1234, 0x00, "00B0123400"}, // Le=00 requests the short-length maximum
	}

	for _, tt := range tests {
		if got := BuildReadBinary(tt.offset, tt.le); got != tt.want {
			t.Errorf("BuildReadBinary(%04X, %02X) = %s, want %s", tt.offset, tt.le, got, tt.want)
		}
	}
}

func TestBuildGetResponse(t *testing.T) {
	if got, want := BuildGetResponse(0x10), Frame("00C0000010"); got != want {
		t.Errorf("BuildGetResponse(0x10) = %s, want %s", got, want)
	}
}

func TestWithLe(t *testing.T) {
	cmd := BuildReadBinary(0x0020, 0xFF)

	got, err := WithLe(cmd, 0x20)
	if err != nil {
		t.Fatalf("WithLe failed: %v", err)
	}
	if want := Frame("00B0002020"); got != want {
		t.Errorf("WithLe = %s, want %s", got, want)
	}

	// Original command must not change.
	if cmd != "00B00020FF" {
		t.Errorf("WithLe mutated its input: %s", cmd)
	}
}

func TestWithLe_TooShort(t *testing.T) {
	if _, err := WithLe("00B000", 0x10); err == nil {
		t.Error("WithLe accepted a command with no Le field")
	}
}
