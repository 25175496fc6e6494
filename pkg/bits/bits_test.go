package bits

import "testing"

func TestBit(t *testing.T) {
	tests := []struct {
		n    uint
		want byte
	}{
		{1, 0b0000_0001},
		{4, 0b0000_1000},
		{8, 0b1000_0000},
		{0, 0},
		{9, 0},
	}

	for _, tt := range tests {
		if got := Bit(tt.n); got != tt.want {
			t.Errorf("Bit(%d) = %08b, want %08b", tt.n, got, tt.want)
		}
	}
}

func TestIsSet(t *testing.T) {
	b := byte(0b1010_0101)

	tests := []struct {
		n    uint
		want bool
	}{
		{1, true},
		{2, false},
		{3, true},
		{6, true},
		{7, false},
		{8, true},
	}

	for _, tt := range tests {
		if got := IsSet(b, tt.n); got != tt.want {
			t.Errorf("IsSet(%08b, %d) = %v, want %v", b, tt.n, got, tt.want)
		}
	}
}

func TestGetRange(t *testing.T) {
	tests := []struct {
		b         byte
		high, low uint
		want      byte
	}{
		{0b0000_1100, 4, 3, 0b11},
		{0b1100_0000, 8, 7, 0b11},
		{0b1100_0011, 4, 1, 0b0011},
		{0xC2, 8, 5, 0x0C}, // upper nibble, counter-style status word
		{0xC2, 4, 1, 0x02}, // lower nibble
		{0xFF, 1, 4, 0},    // inverted range
		{0xFF, 9, 1, 0},    // out of bounds
	}

	for _, tt := range tests {
		if got := GetRange(tt.b, tt.high, tt.low); got != tt.want {
			t.Errorf("GetRange(%08b, %d, %d) = %d, want %d", tt.b, tt.high, tt.low, got, tt.want)
		}
	}
}
