package pbf

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/osmium-go/osmcore/internal/oerr"
	"github.com/osmium-go/osmcore/internal/pbfwire"
)

// FramerState is the Framer's position in the fileformat.proto framing
// protocol: exactly one OSMHeader blob, then zero or more OSMData blobs,
// then EOF.
type FramerState int

const (
	AwaitHeader FramerState = iota
	Streaming
	Done
	FramerError
)

// rawBlob is one still-compressed blob read off the wire, paired with
// the BlobHeader that introduced it.
type rawBlob struct {
	blobType string
	blob     pbfwire.Blob
}

// Framer pulls length-prefixed BlobHeader/Blob pairs off a byte stream
// one at a time, enforcing the size ceilings in Options and the
// single-leading-OSMHeader framing rule. It does not decompress or
// interpret blob contents; that is the Decoder's job.
type Framer struct {
	r     io.Reader
	opts  Options
	state FramerState
}

// NewFramer wraps r as a Framer using opts' size limits.
func NewFramer(r io.Reader, opts Options) *Framer {
	return &Framer{r: r, opts: opts, state: AwaitHeader}
}

func (fr *Framer) fail(kind oerr.PBFErrorKind, msg string) error {
	fr.state = FramerError
	return &oerr.PBFError{Kind: kind, Msg: msg}
}

// Next reads and decodes the next blob's header and (still-compressed)
// payload. It returns io.EOF, with the Framer left in Done, once the
// stream is exhausted at a blob boundary. The first call must see an
// OSMHeader blob or Next returns an error and leaves the Framer in
// FramerError.
func (fr *Framer) Next() (rawBlob, error) {
	if fr.state == Done {
		return rawBlob{}, io.EOF
	}
	if fr.state == FramerError {
		return rawBlob{}, fr.fail(oerr.PBFFraming, "framer already failed")
	}

	var lenBuf [4]byte
	_, err := io.ReadFull(fr.r, lenBuf[:])
	if err != nil {
		if errors.Is(err, io.EOF) {
			if fr.state == AwaitHeader {
				return rawBlob{}, fr.fail(oerr.PBFTruncated, "stream ended before any OSMHeader blob")
			}
			fr.state = Done
			return rawBlob{}, io.EOF
		}
		return rawBlob{}, fr.fail(oerr.PBFTruncated, fmt.Sprintf("reading blob header length: %v", err))
	}

	headerLen := int32(binary.BigEndian.Uint32(lenBuf[:]))
	if headerLen <= 0 || headerLen > fr.opts.MaxBlobHeaderSize {
		return rawBlob{}, fr.fail(oerr.PBFSize, fmt.Sprintf("blob header size %d exceeds limit %d", headerLen, fr.opts.MaxBlobHeaderSize))
	}

	headerBuf := make([]byte, headerLen)
	if _, err := io.ReadFull(fr.r, headerBuf); err != nil {
		return rawBlob{}, fr.fail(oerr.PBFTruncated, fmt.Sprintf("reading blob header: %v", err))
	}
	bh, err := pbfwire.DecodeBlobHeader(headerBuf)
	if err != nil {
		return rawBlob{}, fr.fail(oerr.PBFDecode, fmt.Sprintf("decoding blob header: %v", err))
	}

	if bh.DataSize <= 0 || bh.DataSize > fr.opts.MaxBlobSize {
		return rawBlob{}, fr.fail(oerr.PBFSize, fmt.Sprintf("blob size %d exceeds limit %d", bh.DataSize, fr.opts.MaxBlobSize))
	}

	switch fr.state {
	case AwaitHeader:
		if bh.Type != "OSMHeader" {
			return rawBlob{}, fr.fail(oerr.PBFUnexpectedBlobType, fmt.Sprintf("expected OSMHeader blob first, got %q", bh.Type))
		}
		fr.state = Streaming
	case Streaming:
		if bh.Type == "OSMHeader" {
			return rawBlob{}, fr.fail(oerr.PBFUnexpectedBlobType, "unexpected second OSMHeader blob")
		}
		if bh.Type != "OSMData" {
			return rawBlob{}, fr.fail(oerr.PBFUnexpectedBlobType, fmt.Sprintf("unexpected blob type %q", bh.Type))
		}
	}

	blobBuf := make([]byte, bh.DataSize)
	if _, err := io.ReadFull(fr.r, blobBuf); err != nil {
		return rawBlob{}, fr.fail(oerr.PBFTruncated, fmt.Sprintf("reading blob payload: %v", err))
	}
	blob, err := pbfwire.DecodeBlob(blobBuf)
	if err != nil {
		return rawBlob{}, fr.fail(oerr.PBFDecode, fmt.Sprintf("decoding blob: %v", err))
	}

	return rawBlob{blobType: bh.Type, blob: blob}, nil
}

// State returns the Framer's current position in the framing protocol.
func (fr *Framer) State() FramerState {
	return fr.state
}
