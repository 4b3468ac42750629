// Package pbfwire implements zero-copy protobuf field decoding for the
// two wire messages the OSM PBF format is built from (fileformat.proto's
// BlobHeader/Blob, osmformat.proto's HeaderBlock/PrimitiveBlock and
// everything nested inside them), using protowire's low-level
// tag/varint/length-delimited primitives directly instead of a
// protoc-generated package.
package pbfwire

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field is one decoded (field number, wire value) pair. Callers switch on
// Num inside the callback passed to ForEachField; Bytes/Varint/Fixed32/
// Fixed64 return whichever the field's wire type actually carried.
type Field struct {
	Num   protowire.Number
	Type  protowire.Type
	bytes []byte
	word  uint64
}

func (f Field) Bytes() []byte   { return f.bytes }
func (f Field) Varint() uint64  { return f.word }
func (f Field) Int64() int64    { return int64(f.word) }
func (f Field) SInt64() int64   { return protowire.DecodeZigZag(f.word) }
func (f Field) SInt32() int32   { return int32(protowire.DecodeZigZag(f.word)) }
func (f Field) Bool() bool      { return f.word != 0 }
func (f Field) Fixed32() uint32 { return uint32(f.word) }
func (f Field) Fixed64() uint64 { return f.word }
func (f Field) String() string  { return string(f.bytes) }

// ForEachField walks every top-level field of a serialized protobuf
// message, calling fn once per field in wire order. Group-encoded fields
// (unused anywhere in the OSM PBF schema) are skipped rather than
// rejected, matching a permissive protobuf decoder's usual behavior
// toward fields it does not need.
func ForEachField(data []byte, fn func(Field) error) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return fmt.Errorf("pbfwire: invalid tag: %w", protowire.ParseError(n))
		}
		data = data[n:]

		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return fmt.Errorf("pbfwire: invalid varint: %w", protowire.ParseError(n))
			}
			data = data[n:]
			if err := fn(Field{Num: num, Type: typ, word: v}); err != nil {
				return err
			}
		case protowire.Fixed32Type:
			v, n := protowire.ConsumeFixed32(data)
			if n < 0 {
				return fmt.Errorf("pbfwire: invalid fixed32: %w", protowire.ParseError(n))
			}
			data = data[n:]
			if err := fn(Field{Num: num, Type: typ, word: uint64(v)}); err != nil {
				return err
			}
		case protowire.Fixed64Type:
			v, n := protowire.ConsumeFixed64(data)
			if n < 0 {
				return fmt.Errorf("pbfwire: invalid fixed64: %w", protowire.ParseError(n))
			}
			data = data[n:]
			if err := fn(Field{Num: num, Type: typ, word: v}); err != nil {
				return err
			}
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return fmt.Errorf("pbfwire: invalid bytes: %w", protowire.ParseError(n))
			}
			data = data[n:]
			if err := fn(Field{Num: num, Type: typ, bytes: v}); err != nil {
				return err
			}
		case protowire.StartGroupType:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return fmt.Errorf("pbfwire: invalid group: %w", protowire.ParseError(n))
			}
			data = data[n:]
		default:
			return fmt.Errorf("pbfwire: unsupported wire type %d", typ)
		}
	}
	return nil
}

// PackedVarints decodes a packed-repeated varint field's raw bytes into
// individual uint64 values.
func PackedVarints(b []byte) []uint64 {
	out := make([]uint64, 0, len(b)/2)
	for len(b) > 0 {
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			break
		}
		out = append(out, v)
		b = b[n:]
	}
	return out
}

// PackedSInt32 decodes a packed-repeated zigzag-encoded sint32 field.
func PackedSInt32(b []byte) []int32 {
	raw := PackedVarints(b)
	out := make([]int32, len(raw))
	for i, v := range raw {
		out[i] = int32(protowire.DecodeZigZag(v))
	}
	return out
}

// PackedSInt64 decodes a packed-repeated zigzag-encoded sint64 field.
func PackedSInt64(b []byte) []int64 {
	raw := PackedVarints(b)
	out := make([]int64, len(raw))
	for i, v := range raw {
		out[i] = protowire.DecodeZigZag(v)
	}
	return out
}

// PackedInt32 decodes a packed-repeated plain-varint int32 field.
func PackedInt32(b []byte) []int32 {
	raw := PackedVarints(b)
	out := make([]int32, len(raw))
	for i, v := range raw {
		out[i] = int32(v)
	}
	return out
}

// PackedUint32 decodes a packed-repeated plain-varint uint32 field.
func PackedUint32(b []byte) []uint32 {
	raw := PackedVarints(b)
	out := make([]uint32, len(raw))
	for i, v := range raw {
		out[i] = uint32(v)
	}
	return out
}

// PackedBool decodes a packed-repeated bool field.
func PackedBool(b []byte) []bool {
	raw := PackedVarints(b)
	out := make([]bool, len(raw))
	for i, v := range raw {
		out[i] = v != 0
	}
	return out
}
