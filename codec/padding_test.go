package codec

import (
	"errors"
	"testing"

	"github.com/nPaBwaYT/desblock/cripta"
)

func TestPKCS7(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantHex string
	}{
		{"empty", "", "0808080808080808"},
		{"one byte", "a", "6107070707070707"},
		{"seven bytes", "abcdefg", "6162636465666701"},
		{"aligned", "abcdefgh", "61626364656667680808080808080808"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bits, _ := TextToBits(tt.in)
			padded, err := PKCS7{}.Pad(bits)
			if err != nil {
				t.Fatalf("Pad: %v", err)
			}
			if got, _ := ToHex(padded); got != tt.wantHex {
				t.Errorf("Pad = %s, want %s", got, tt.wantHex)
			}

			back, err := PKCS7{}.Unpad(padded)
			if err != nil {
				t.Fatalf("Unpad: %v", err)
			}
			if !back.Equal(bits) {
				t.Errorf("Unpad = %s, want %s", back, bits)
			}
		})
	}
}

func TestPKCS7_UnpadRejectsCorruption(t *testing.T) {
	for _, h := range []string{
		"6162636465666700", // length byte 0
		"6162636465666709", // length byte > 8
		"6162636465660302", // inconsistent bytes
		"61626364",         // partial block
		"",
	} {
		bits, err := FromHex(h)
		if err != nil {
			t.Fatalf("FromHex: %v", err)
		}
		if _, err := (PKCS7{}).Unpad(bits); !errors.Is(err, ErrInvalidPadding) {
			t.Errorf("Unpad(%s): expected ErrInvalidPadding, got %v", h, err)
		}
	}
}

func TestPKCS7_PadRejectsPartialBytes(t *testing.T) {
	if _, err := (PKCS7{}).Pad(make(cripta.Bits, 12)); !errors.Is(err, cripta.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestZeroBits(t *testing.T) {
	bits, _ := TextToBits("This is a test!")
	padded, err := ZeroBits{}.Pad(bits)
	if err != nil {
		t.Fatalf("Pad: %v", err)
	}
	if len(padded) != 128 {
		t.Fatalf("padded to %d bits, want 128", len(padded))
	}
	back, err := ZeroBits{}.Unpad(padded)
	if err != nil {
		t.Fatalf("Unpad: %v", err)
	}
	if !back.Equal(bits) {
		t.Errorf("Unpad = %s, want %s", back, bits)
	}

	aligned := make(cripta.Bits, 64)
	aligned[0] = 1
	out, _ := ZeroBits{}.Pad(aligned)
	if len(out) != 64 {
		t.Errorf("aligned message grew to %d bits", len(out))
	}
}

func TestPaddingByName(t *testing.T) {
	if p, err := PaddingByName("PKCS7"); err != nil || p != (PKCS7{}) {
		t.Errorf("PaddingByName(PKCS7) = %v, %v", p, err)
	}
	if p, err := PaddingByName("zeros"); err != nil || p != (ZeroBits{}) {
		t.Errorf("PaddingByName(zeros) = %v, %v", p, err)
	}
	for _, name := range []string{"iso10126", "zero"} {
		if _, err := PaddingByName(name); err == nil {
			t.Errorf("PaddingByName(%q): expected an error for an unknown scheme", name)
		}
	}
}
