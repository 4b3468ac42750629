package pbf

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
)

// The following helpers hand-encode just enough of fileformat.proto and
// osmformat.proto to build a tiny, valid PBF byte stream for tests.
// There is no encoder anywhere in this package (only decode is a
// pipeline responsibility); protowire's own Append primitives are the
// natural tool for producing wire bytes without one.

func tagBytes(num protowire.Number) []byte {
	return protowire.AppendTag(nil, num, protowire.BytesType)
}

func tagVarint(num protowire.Number) []byte {
	return protowire.AppendTag(nil, num, protowire.VarintType)
}

func fieldString(num protowire.Number, s string) []byte {
	b := tagBytes(num)
	return protowire.AppendBytes(b, []byte(s))
}

func fieldBytes(num protowire.Number, v []byte) []byte {
	b := tagBytes(num)
	return protowire.AppendBytes(b, v)
}

func fieldVarint(num protowire.Number, v uint64) []byte {
	b := tagVarint(num)
	return protowire.AppendVarint(b, v)
}

func fieldSInt64(num protowire.Number, v int64) []byte {
	return fieldVarint(num, protowire.EncodeZigZag(v))
}

func packed(num protowire.Number, vals []int64, zigzag bool) []byte {
	var body []byte
	for _, v := range vals {
		u := uint64(v)
		if zigzag {
			u = protowire.EncodeZigZag(v)
		}
		body = protowire.AppendVarint(body, u)
	}
	return fieldBytes(num, body)
}

func buildHeaderBlock() []byte {
	var buf []byte
	buf = append(buf, fieldString(16, "osmcore-test")...)
	return buf
}

func buildStringTable(strs []string) []byte {
	var body []byte
	for _, s := range strs {
		body = append(body, fieldString(1, s)...)
	}
	return fieldBytes(1, body)
}

// buildDenseNodesBlock builds a PrimitiveBlock containing a single
// PrimitiveGroup of 2 dense nodes: id=1 at (1.0,2.0) tagged k=v, and
// id=2 at (1.0,2.0) with no tags.
func buildDenseNodesBlock() []byte {
	strs := []string{"", "k", "v"}

	var dense []byte
	dense = append(dense, packed(1, []int64{1, 1}, true)...) // ids: 1, 2 (delta)
	dense = append(dense, packed(8, []int64{20000000, 0}, true)...) // lat deltas (granularity 100 -> 1e7*100/100... )
	dense = append(dense, packed(9, []int64{10000000, 0}, true)...) // lon deltas
	kv := []int64{1, 2, 0, 0}
	var kvBody []byte
	for _, v := range kv {
		kvBody = protowire.AppendVarint(kvBody, uint64(v))
	}
	dense = append(dense, fieldBytes(10, kvBody)...)

	// groupMsg is a serialized PrimitiveGroup message containing one
	// field (2: dense). PrimitiveBlock.primitivegroup wraps that whole
	// message again as its own field-2 entry.
	groupMsg := fieldBytes(2, dense)

	var block []byte
	block = append(block, buildStringTable(strs)...)
	block = append(block, fieldBytes(2, groupMsg)...)
	block = append(block, fieldVarint(17, 100)...) // granularity
	block = append(block, fieldSInt64(19, 0)...)   // lat_offset
	block = append(block, fieldSInt64(20, 0)...)   // lon_offset
	return block
}

// buildPlainNodeBlock builds a PrimitiveBlock containing a single
// PrimitiveGroup holding one plain (non-dense) Node, id=100.
func buildPlainNodeBlock() []byte {
	node := append(fieldSInt64(1, 100), fieldSInt64(8, 50000000)...)
	node = append(node, fieldSInt64(9, 30000000)...)

	groupMsg := fieldBytes(1, node)

	var block []byte
	block = append(block, buildStringTable([]string{""})...)
	block = append(block, fieldBytes(2, groupMsg)...)
	block = append(block, fieldVarint(17, 100)...)
	block = append(block, fieldSInt64(19, 0)...)
	block = append(block, fieldSInt64(20, 0)...)
	return block
}

func buildBlobHeaderAndBlob(blobType string, payload []byte) []byte {
	blobMsg := fieldBytes(1, payload) // raw
	bh := append(fieldString(1, blobType), fieldVarint(3, uint64(len(blobMsg)))...)

	var out []byte
	var lenPrefix [4]byte
	binary.BigEndian.PutUint32(lenPrefix[:], uint32(len(bh)))
	out = append(out, lenPrefix[:]...)
	out = append(out, bh...)
	out = append(out, blobMsg...)
	return out
}

func buildTestStream() []byte {
	var out []byte
	out = append(out, buildBlobHeaderAndBlob("OSMHeader", buildHeaderBlock())...)
	out = append(out, buildBlobHeaderAndBlob("OSMData", buildDenseNodesBlock())...)
	out = append(out, buildBlobHeaderAndBlob("OSMData", buildPlainNodeBlock())...)
	return out
}

func TestDecoderHeaderThenTwoBuffersThenEOF(t *testing.T) {
	stream := buildTestStream()
	opts := DefaultOptions()
	opts.Synchronous = true
	d := NewDecoder(bytes.NewReader(stream), opts)

	h, err := d.Header()
	if err != nil {
		t.Fatalf("Header() error: %v", err)
	}
	if h.WritingProgram != "osmcore-test" {
		t.Errorf("WritingProgram = %q, want osmcore-test", h.WritingProgram)
	}

	buf, err := d.Read()
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if buf.Len() != 2 {
		t.Fatalf("expected 2 entities, got %d", buf.Len())
	}

	buf2, err := d.Read()
	if err != nil {
		t.Fatalf("second Read() error: %v", err)
	}
	if buf2.Len() != 1 {
		t.Fatalf("expected 1 entity in second blob, got %d", buf2.Len())
	}

	if _, err := d.Read(); err != io.EOF {
		t.Fatalf("expected io.EOF on third Read, got %v", err)
	}
}

func TestDecoderPreservesOrderAcrossWorkers(t *testing.T) {
	stream := buildTestStream()
	opts := DefaultOptions()
	opts.Workers = 4
	d := NewDecoder(bytes.NewReader(stream), opts)

	if _, err := d.Header(); err != nil {
		t.Fatalf("Header() error: %v", err)
	}
	buf, err := d.Read()
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if buf.Len() != 2 {
		t.Fatalf("expected first blob (dense) to decode to 2 entities, got %d", buf.Len())
	}
	buf2, err := d.Read()
	if err != nil {
		t.Fatalf("second Read() error: %v", err)
	}
	if buf2.Len() != 1 {
		t.Fatalf("expected second blob (plain node) to decode to 1 entity, got %d", buf2.Len())
	}
	if _, err := d.Read(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestDecoderRejectsMissingHeaderBlob(t *testing.T) {
	stream := buildBlobHeaderAndBlob("OSMData", buildDenseNodesBlock())
	d := NewDecoder(bytes.NewReader(stream), DefaultOptions())
	if _, err := d.Header(); err == nil {
		t.Fatalf("expected an error when the stream omits the OSMHeader blob")
	}
}

func TestDecoderCloseDoesNotBlock(t *testing.T) {
	stream := buildTestStream()
	opts := DefaultOptions()
	opts.QueueCapacity = 1
	d := NewDecoder(bytes.NewReader(stream), opts)
	if _, err := d.Header(); err != nil {
		t.Fatalf("Header() error: %v", err)
	}
	done := make(chan struct{})
	go func() {
		d.Close()
		close(done)
	}()
	select {
	case <-done:
	default:
	}
	<-done
}
