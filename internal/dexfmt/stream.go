// DEX data stream reader.
// Implements the LEB128 variable-length integers and the modified
// UTF-8 string encoding used by the Dalvik executable format.
package dexfmt

import (
	"encoding/binary"
	"errors"
	"strings"
	"unicode/utf16"
)

var (
	// ErrTruncated is returned by any read that runs past the buffer end.
	ErrTruncated = errors.New("dexfmt: truncated buffer")
	// ErrOverrun is returned when a variable-length integer exceeds 64 bits.
	ErrOverrun = errors.New("dexfmt: varint too large")
)

// Replacement is substituted for each malformed MUTF-8 byte sequence.
const Replacement = '�'

// Stream reads DEX data from a byte buffer at a tracked position.
type Stream struct {
	data []byte
	pos  int
}

// NewStream creates a stream over the given data.
func NewStream(data []byte) *Stream {
	return &Stream{data: data}
}

// NewStreamAt creates a stream starting at offset within data.
func NewStreamAt(data []byte, offset uint32) *Stream {
	pos := int(offset)
	if pos > len(data) {
		pos = len(data)
	}
	return &Stream{data: data, pos: pos}
}

// Position returns the current read position.
func (s *Stream) Position() int { return s.pos }

// Remaining returns bytes left to read.
func (s *Stream) Remaining() int { return len(s.data) - s.pos }

// ReadByte reads a single byte.
func (s *Stream) ReadByte() (byte, error) {
	if s.pos >= len(s.data) {
		return 0, ErrTruncated
	}
	b := s.data[s.pos]
	s.pos++
	return b, nil
}

// ReadBytes reads n bytes into a new slice.
func (s *Stream) ReadBytes(n int) ([]byte, error) {
	if n < 0 || s.pos+n > len(s.data) {
		return nil, ErrTruncated
	}
	out := make([]byte, n)
	copy(out, s.data[s.pos:s.pos+n])
	s.pos += n
	return out, nil
}

// ReadUint16 reads a little-endian uint16.
func (s *Stream) ReadUint16() (uint16, error) {
	if s.pos+2 > len(s.data) {
		return 0, ErrTruncated
	}
	v := binary.LittleEndian.Uint16(s.data[s.pos:])
	s.pos += 2
	return v, nil
}

// ReadUint32 reads a little-endian uint32.
func (s *Stream) ReadUint32() (uint32, error) {
	if s.pos+4 > len(s.data) {
		return 0, ErrTruncated
	}
	v := binary.LittleEndian.Uint32(s.data[s.pos:])
	s.pos += 4
	return v, nil
}

// ReadUint64 reads a little-endian uint64.
func (s *Stream) ReadUint64() (uint64, error) {
	if s.pos+8 > len(s.data) {
		return 0, ErrTruncated
	}
	v := binary.LittleEndian.Uint64(s.data[s.pos:])
	s.pos += 8
	return v, nil
}

// ReadULEB128 reads an unsigned LEB128 value: 7 payload bits per byte,
// little-endian, high bit set on every byte except the last.
func (s *Stream) ReadULEB128() (uint32, error) {
	var r uint64
	var shift uint
	for {
		b, err := s.ReadByte()
		if err != nil {
			return 0, err
		}
		r |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return uint32(r), nil
		}
		shift += 7
		if shift > 35 {
			return 0, ErrOverrun
		}
	}
}

// ReadSLEB128 reads a signed LEB128 value. Same layout as ULEB128 with
// the final group sign-extended.
func (s *Stream) ReadSLEB128() (int32, error) {
	var r uint32
	var shift uint
	for {
		b, err := s.ReadByte()
		if err != nil {
			return 0, err
		}
		r |= uint32(b&0x7f) << shift
		shift += 7
		if b&0x80 == 0 {
			if shift < 32 && b&0x40 != 0 {
				r |= ^uint32(0) << shift
			}
			return int32(r), nil
		}
		if shift > 35 {
			return 0, ErrOverrun
		}
	}
}

// ReadMUTF8 decodes a modified UTF-8 string of exactly charCount
// decoded units. Malformed byte sequences are replaced with U+FFFD and
// decoding resumes at the next byte; nrepl reports how many
// replacements were made. Only running off the buffer fails.
func (s *Stream) ReadMUTF8(charCount uint32) (str string, nrepl int, err error) {
	var b strings.Builder
	var pending []uint16
	flush := func() {
		for _, r := range utf16.Decode(pending) {
			b.WriteRune(r)
		}
		pending = pending[:0]
	}
	for i := uint32(0); i < charCount; i++ {
		u, ok, rerr := s.readMUTF8Unit()
		if rerr != nil {
			return "", nrepl, rerr
		}
		if !ok {
			flush()
			b.WriteRune(Replacement)
			nrepl++
			continue
		}
		pending = append(pending, u)
		if len(pending) == 2 {
			// A valid surrogate pair flushes as one rune; anything
			// else flushes as-is (utf16.Decode degrades lone
			// surrogates to U+FFFD on its own).
			flush()
		}
	}
	flush()
	return b.String(), nrepl, nil
}

// readMUTF8Unit decodes one UTF-16 code unit. ok is false for a
// malformed sequence, in which case the stream is left positioned at
// the first byte that broke the sequence so decoding can resume there.
func (s *Stream) readMUTF8Unit() (uint16, bool, error) {
	b0, err := s.ReadByte()
	if err != nil {
		return 0, false, err
	}
	switch {
	case b0&0x80 == 0:
		// One byte; MUTF-8 encodes NUL as 0xc0 0x80, so a raw 0x00
		// inside the declared length is malformed.
		if b0 == 0 {
			return 0, false, nil
		}
		return uint16(b0), true, nil
	case b0&0xe0 == 0xc0:
		b1, err := s.ReadByte()
		if err != nil {
			return 0, false, err
		}
		if b1&0xc0 != 0x80 {
			s.pos-- // resume at the offending byte
			return 0, false, nil
		}
		return uint16(b0&0x1f)<<6 | uint16(b1&0x3f), true, nil
	case b0&0xf0 == 0xe0:
		b1, err := s.ReadByte()
		if err != nil {
			return 0, false, err
		}
		if b1&0xc0 != 0x80 {
			s.pos--
			return 0, false, nil
		}
		b2, err := s.ReadByte()
		if err != nil {
			return 0, false, err
		}
		if b2&0xc0 != 0x80 {
			s.pos--
			return 0, false, nil
		}
		return uint16(b0&0x0f)<<12 | uint16(b1&0x3f)<<6 | uint16(b2&0x3f), true, nil
	default:
		// MUTF-8 has no 4-byte form.
		return 0, false, nil
	}
}
