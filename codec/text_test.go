package codec

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTextToBits(t *testing.T) {
	bits, err := TextToBits("Hi")
	if err != nil {
		t.Fatalf("TextToBits: %v", err)
	}
	if got := bits.String(); got != "0100100001101001" {
		t.Errorf("TextToBits(Hi) = %s", got)
	}

	latin, err := TextToBits("é")
	if err != nil {
		t.Fatalf("TextToBits: %v", err)
	}
	if got := latin.String(); got != "11101001" {
		t.Errorf("TextToBits(é) = %s, want the single byte 0xe9", got)
	}

	if _, err := TextToBits("ключ"); !errors.Is(err, ErrUnencodable) {
		t.Errorf("expected ErrUnencodable for Cyrillic text, got %v", err)
	}
}

func TestBitsToText(t *testing.T) {
	for _, text := range []string{"", "This is a test!", "café"} {
		bits, err := TextToBits(text)
		if err != nil {
			t.Fatalf("TextToBits(%q): %v", text, err)
		}
		got, err := BitsToText(bits)
		if err != nil {
			t.Fatalf("BitsToText: %v", err)
		}
		if diff := cmp.Diff(text, got); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}

	bits, _ := TextToBits("ab")
	if _, err := BitsToText(bits[:12]); err == nil {
		t.Errorf("expected an error for 12 bits")
	}
}
