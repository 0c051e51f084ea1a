package dexfmt

import (
	"strings"
	"testing"
)

func TestReadULEB128(t *testing.T) {
	tests := []struct {
		in   []byte
		want uint32
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x01}, 1},
		{[]byte{0x7f}, 127},
		{[]byte{0x80, 0x01}, 128},          // 0 | (1 << 7)
		{[]byte{0x85, 0x03}, 389},          // 5 | (3 << 7)
		{[]byte{0xff, 0xff, 0x03}, 65535},  // 0x7f | 0x7f<<7 | 3<<14
		{[]byte{0x80, 0x80, 0x80, 0x80, 0x0f}, 0xf0000000},
	}
	for _, tt := range tests {
		s := NewStream(tt.in)
		got, err := s.ReadULEB128()
		if err != nil {
			t.Errorf("ReadULEB128(%v): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ReadULEB128(%v) = %d, want %d", tt.in, got, tt.want)
		}
		if s.Position() != len(tt.in) {
			t.Errorf("ReadULEB128(%v) consumed %d bytes, want %d", tt.in, s.Position(), len(tt.in))
		}
	}
}

func TestReadSLEB128(t *testing.T) {
	tests := []struct {
		in   []byte
		want int32
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x01}, 1},
		{[]byte{0x7f}, -1},   // sign bit of final group extends
		{[]byte{0x3f}, 63},
		{[]byte{0x40}, -64},
		{[]byte{0x80, 0x7f}, -128},
		{[]byte{0x80, 0x01}, 128},
	}
	for _, tt := range tests {
		s := NewStream(tt.in)
		got, err := s.ReadSLEB128()
		if err != nil {
			t.Errorf("ReadSLEB128(%v): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ReadSLEB128(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestReadULEB128_Truncated(t *testing.T) {
	// Continuation bit set with nothing following.
	s := NewStream([]byte{0x80})
	if _, err := s.ReadULEB128(); err != ErrTruncated {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
	s = NewStream(nil)
	if _, err := s.ReadULEB128(); err != ErrTruncated {
		t.Errorf("expected ErrTruncated on empty, got %v", err)
	}
}

func TestFixedWidthReads(t *testing.T) {
	s := NewStream([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08})
	if v, err := s.ReadUint16(); err != nil || v != 0x0201 {
		t.Fatalf("ReadUint16 = %#x, %v", v, err)
	}
	if v, err := s.ReadUint32(); err != nil || v != 0x06050403 {
		t.Fatalf("ReadUint32 = %#x, %v", v, err)
	}
	if _, err := s.ReadUint32(); err != ErrTruncated {
		t.Fatalf("expected ErrTruncated at tail, got %v", err)
	}
}

func TestReadMUTF8(t *testing.T) {
	tests := []struct {
		name  string
		in    []byte
		count uint32
		want  string
		repl  int
	}{
		{"ascii", []byte("hello"), 5, "hello", 0},
		{"two-byte", []byte{0xc3, 0xa9}, 1, "é", 0},
		{"encoded-nul", []byte{0xc0, 0x80}, 1, "\x00", 0},
		{"three-byte", []byte{0xe2, 0x82, 0xac}, 1, "€", 0},
		{"surrogate-pair", []byte{0xed, 0xa0, 0xb5, 0xed, 0xb2, 0xa9}, 2, "𝒩", 0},
		{"bad-continuation", []byte{0x61, 0xc3, 0x28, 0x62}, 4, "a�(b", 1},
		{"lone-trail-byte", []byte{0x80, 0x61}, 2, "�a", 1},
		{"four-byte-form-rejected", []byte{0xf0, 0x9f, 0x98, 0x80}, 4, "����", 4},
	}
	for _, tt := range tests {
		s := NewStream(tt.in)
		got, nrepl, err := s.ReadMUTF8(tt.count)
		if err != nil {
			t.Errorf("%s: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
		if nrepl != tt.repl {
			t.Errorf("%s: %d replacements, want %d", tt.name, nrepl, tt.repl)
		}
	}
}

func TestReadMUTF8_CorruptionContinues(t *testing.T) {
	// A corrupted multi-byte sequence in the middle must yield a
	// placeholder and keep decoding the remainder.
	in := []byte("ab")
	in = append(in, 0xe2, 0xff) // broken 3-byte sequence: two bad bytes
	in = append(in, []byte("cd")...)
	s := NewStream(in)
	got, nrepl, err := s.ReadMUTF8(6)
	if err != nil {
		t.Fatalf("ReadMUTF8: %v", err)
	}
	if nrepl == 0 || !strings.Contains(got, string(rune(Replacement))) {
		t.Fatalf("expected placeholder in %q (repl=%d)", got, nrepl)
	}
	if !strings.HasPrefix(got, "ab") || !strings.HasSuffix(got, "cd") {
		t.Fatalf("surrounding text not preserved: %q", got)
	}
}

func TestReadMUTF8_Truncated(t *testing.T) {
	s := NewStream([]byte("ab"))
	if _, _, err := s.ReadMUTF8(3); err != ErrTruncated {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}
