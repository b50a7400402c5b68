package addr

import (
	"bytes"
	"testing"
)

func TestEncodeLowercase(t *testing.T) {
	raw := []byte{0xF7, 0x55, 0x48, 0xAF, 0x02, 0xF1, 0x92, 0x8C, 0xBE, 0x90, 0x15, 0x98, 0x5D, 0x4F, 0xCB, 0xF9, 0x6D, 0x72, 0x85, 0x44}
	got := Encode(raw)
	want := "0xf75548af02f1928cbe9015985d4fcbf96d728544"
	if got != want {
		t.Fatalf("encode mismatch: %s != %s", got, want)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	raw := []byte{0x0C, 0x9A, 0x3D, 0xD6, 0xB8, 0xF2, 0x85, 0x29, 0xD7, 0x2D, 0x7F, 0x9C, 0xE9, 0x18, 0xD4, 0x93, 0x51, 0x9E, 0xE3, 0x83}
	if got := Decode(Encode(raw)); !bytes.Equal(got, raw) {
		t.Fatalf("round-trip mismatch: %x != %x", got, raw)
	}
}

func TestDecodeAcceptsMixedCase(t *testing.T) {
	got := Decode("0x000000000022D473030F116dDEE9F6B43aC78BA3")
	want := Decode("0x000000000022d473030f116ddee9f6b43ac78ba3")
	if !bytes.Equal(got, want) {
		t.Fatalf("case normalization mismatch: %x != %x", got, want)
	}
}

func TestDecodeMalformed(t *testing.T) {
	cases := []string{"", "0x", "0xzz", "0x123", "not-an-address"}
	for _, input := range cases {
		if got := Decode(input); got != nil {
			t.Fatalf("expected nil for %q, got %x", input, got)
		}
	}
}
