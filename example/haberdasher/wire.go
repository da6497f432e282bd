package haberdasher

// This file hand-implements the slice of the protobuf wire format that
// Size and Hat need: varint and length-delimited encoding of int32 and
// string fields. A real service would get this from protoc-generated code;
// see DESIGN.md for why this runtime has no protoc toolchain available to
// generate it. Rather than reimplement varint/tag framing against
// encoding/binary, this builds directly on protowire, the same
// non-reflective, descriptor-free wire primitives package
// google.golang.org/protobuf/proto itself is built on.

import (
	"errors"

	"google.golang.org/protobuf/encoding/protowire"
)

func appendVarintField(buf []byte, fieldNum protowire.Number, v int32) []byte {
	if v == 0 {
		return buf
	}
	buf = protowire.AppendTag(buf, fieldNum, protowire.VarintType)
	return protowire.AppendVarint(buf, uint64(uint32(v)))
}

func appendStringField(buf []byte, fieldNum protowire.Number, s string) []byte {
	if s == "" {
		return buf
	}
	buf = protowire.AppendTag(buf, fieldNum, protowire.BytesType)
	return protowire.AppendString(buf, s)
}

// wireField is one decoded (field number, wire type, payload) unit of a
// length-delimited or varint-encoded protobuf message.
type wireField struct {
	num  protowire.Number
	typ  protowire.Type
	vint uint64
	buf  []byte
}

var errTruncated = errors.New("haberdasher: truncated protobuf message")

func parseFields(data []byte) ([]wireField, error) {
	var fields []wireField
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, errTruncated
		}
		data = data[n:]

		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, errTruncated
			}
			data = data[n:]
			fields = append(fields, wireField{num: num, typ: typ, vint: v})
		case protowire.BytesType:
			b, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, errTruncated
			}
			data = data[n:]
			fields = append(fields, wireField{num: num, typ: typ, buf: b})
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, errors.New("haberdasher: unsupported wire type")
			}
			data = data[n:]
		}
	}
	return fields, nil
}
