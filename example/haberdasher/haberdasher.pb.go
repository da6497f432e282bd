package haberdasher

// Size and Hat are the request/response messages of the Haberdasher service:
// the canonical worked example from the Twirp ecosystem (make a hat of a
// given size, reject sizes outside [1, 10]). Hand-written rather than
// protoc-generated; see wire.go and DESIGN.md.

import "google.golang.org/protobuf/encoding/protowire"

// Size is the input of MakeHat: a hat size in inches.
type Size struct {
	Inches int32
}

// Marshal implements twirp.Message.
func (s *Size) Marshal() ([]byte, error) {
	var buf []byte
	buf = appendVarintField(buf, 1, s.Inches)
	return buf, nil
}

// Unmarshal implements twirp.Message.
func (s *Size) Unmarshal(data []byte) error {
	fields, err := parseFields(data)
	if err != nil {
		return err
	}
	for _, f := range fields {
		if f.num == 1 && f.typ == protowire.VarintType {
			s.Inches = int32(f.vint)
		}
	}
	return nil
}

// Hat is the output of MakeHat.
type Hat struct {
	Size  int32
	Color string
	Name  string
}

// Marshal implements twirp.Message.
func (h *Hat) Marshal() ([]byte, error) {
	var buf []byte
	buf = appendVarintField(buf, 1, h.Size)
	buf = appendStringField(buf, 2, h.Color)
	buf = appendStringField(buf, 3, h.Name)
	return buf, nil
}

// Unmarshal implements twirp.Message.
func (h *Hat) Unmarshal(data []byte) error {
	fields, err := parseFields(data)
	if err != nil {
		return err
	}
	for _, f := range fields {
		switch {
		case f.num == 1 && f.typ == protowire.VarintType:
			h.Size = int32(f.vint)
		case f.num == 2 && f.typ == protowire.BytesType:
			h.Color = string(f.buf)
		case f.num == 3 && f.typ == protowire.BytesType:
			h.Name = string(f.buf)
		}
	}
	return nil
}
