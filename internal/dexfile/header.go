// Package dexfile parses the DEX container: header, symbol tables,
// class definitions and per-method code items.
package dexfile

import (
	"errors"
	"fmt"
	"hash/adler32"

	"undex/internal/dexfmt"
)

var (
	ErrBadMagic = errors.New("dexfile: bad magic")
	ErrChecksum = errors.New("dexfile: checksum mismatch")
)

const (
	// HeaderSize is the fixed size of the DEX header item.
	HeaderSize = 0x70

	endianConstant        = 0x12345678
	reverseEndianConstant = 0x78563412

	// NoIndex marks an absent superclass/source-file reference.
	NoIndex = 0xffffffff
)

// Header holds the parsed DEX file header. Immutable once parsed.
type Header struct {
	Magic      [8]byte
	Version    int // e.g. 35 for "035"
	Checksum   uint32
	Signature  [20]byte
	FileSize   uint32
	HeaderSize uint32
	EndianTag  uint32
	LinkSize   uint32
	LinkOff    uint32
	MapOff     uint32

	StringIDsSize uint32
	StringIDsOff  uint32
	TypeIDsSize   uint32
	TypeIDsOff    uint32
	ProtoIDsSize  uint32
	ProtoIDsOff   uint32
	FieldIDsSize  uint32
	FieldIDsOff   uint32
	MethodIDsSize uint32
	MethodIDsOff  uint32
	ClassDefsSize uint32
	ClassDefsOff  uint32
	DataSize      uint32
	DataOff       uint32
}

// ParseHeader reads and validates the header at offset 0.
// ErrBadMagic and ErrChecksum are fatal for the whole file.
func ParseHeader(data []byte, opts dexfmt.Options) (*Header, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes, header needs %d", ErrChecksum, len(data), HeaderSize)
	}

	var h Header
	copy(h.Magic[:], data[:8])
	if err := checkMagic(&h); err != nil {
		return nil, err
	}

	s := dexfmt.NewStreamAt(data, 8)
	h.Checksum, _ = s.ReadUint32()
	sig, _ := s.ReadBytes(20)
	copy(h.Signature[:], sig)
	fields := []*uint32{
		&h.FileSize, &h.HeaderSize, &h.EndianTag, &h.LinkSize, &h.LinkOff, &h.MapOff,
		&h.StringIDsSize, &h.StringIDsOff,
		&h.TypeIDsSize, &h.TypeIDsOff,
		&h.ProtoIDsSize, &h.ProtoIDsOff,
		&h.FieldIDsSize, &h.FieldIDsOff,
		&h.MethodIDsSize, &h.MethodIDsOff,
		&h.ClassDefsSize, &h.ClassDefsOff,
		&h.DataSize, &h.DataOff,
	}
	for _, f := range fields {
		v, err := s.ReadUint32()
		if err != nil {
			return nil, fmt.Errorf("%w: header field: %v", ErrChecksum, err)
		}
		*f = v
	}

	if err := h.checkStructure(len(data)); err != nil {
		return nil, err
	}
	if opts.Mode == dexfmt.ModeStrict {
		if sum := adler32.Checksum(data[12:]); sum != h.Checksum {
			return nil, fmt.Errorf("%w: adler32 %#08x, header says %#08x", ErrChecksum, sum, h.Checksum)
		}
	}
	return &h, nil
}

func checkMagic(h *Header) error {
	if h.Magic[0] != 'd' || h.Magic[1] != 'e' || h.Magic[2] != 'x' || h.Magic[3] != '\n' || h.Magic[7] != 0 {
		return fmt.Errorf("%w: % x", ErrBadMagic, h.Magic)
	}
	v := 0
	for _, c := range h.Magic[4:7] {
		if c < '0' || c > '9' {
			return fmt.Errorf("%w: version % x", ErrBadMagic, h.Magic[4:7])
		}
		v = v*10 + int(c-'0')
	}
	// 035 through 041 covers every format revision published so far.
	if v < 35 || v > 41 {
		return fmt.Errorf("%w: unsupported version %03d", ErrBadMagic, v)
	}
	h.Version = v
	return nil
}

// checkStructure verifies the header's size and offset fields against
// the actual buffer. Inconsistencies are reported as ErrChecksum.
func (h *Header) checkStructure(bufLen int) error {
	if h.EndianTag != endianConstant {
		if h.EndianTag == reverseEndianConstant {
			return fmt.Errorf("%w: reverse-endian files not supported", ErrChecksum)
		}
		return fmt.Errorf("%w: endian tag %#08x", ErrChecksum, h.EndianTag)
	}
	if h.HeaderSize < HeaderSize {
		return fmt.Errorf("%w: header size %d", ErrChecksum, h.HeaderSize)
	}
	if int(h.FileSize) > bufLen {
		return fmt.Errorf("%w: file size %d exceeds buffer %d", ErrChecksum, h.FileSize, bufLen)
	}
	tables := []struct {
		name       string
		off, count uint32
		entryWidth uint32
	}{
		{"string_ids", h.StringIDsOff, h.StringIDsSize, 4},
		{"type_ids", h.TypeIDsOff, h.TypeIDsSize, 4},
		{"proto_ids", h.ProtoIDsOff, h.ProtoIDsSize, 12},
		{"field_ids", h.FieldIDsOff, h.FieldIDsSize, 8},
		{"method_ids", h.MethodIDsOff, h.MethodIDsSize, 8},
		{"class_defs", h.ClassDefsOff, h.ClassDefsSize, 32},
	}
	for _, t := range tables {
		if t.count == 0 {
			continue
		}
		end := uint64(t.off) + uint64(t.count)*uint64(t.entryWidth)
		if end > uint64(bufLen) {
			return fmt.Errorf("%w: %s table [%#x, %#x) exceeds buffer %d", ErrChecksum, t.name, t.off, end, bufLen)
		}
	}
	return nil
}
