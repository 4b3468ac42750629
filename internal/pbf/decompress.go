package pbf

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/osmium-go/osmcore/internal/oerr"
	"github.com/osmium-go/osmcore/internal/pbfwire"
)

// inflate returns a Blob's uncompressed payload. Most real-world PBF
// files use zlib exclusively; the lzma/bzip2/lz4/zstd variants are
// rejected outright rather than silently mishandled.
func inflate(b pbfwire.Blob, maxSize int32) ([]byte, error) {
	if b.Raw != nil {
		return b.Raw, nil
	}
	if b.ZlibData == nil {
		return nil, &oerr.PBFError{Kind: oerr.PBFCompression, Msg: "blob has neither raw nor zlib payload"}
	}
	if b.RawSize <= 0 || b.RawSize > maxSize {
		return nil, &oerr.PBFError{Kind: oerr.PBFSize, Msg: fmt.Sprintf("blob raw_size %d exceeds limit %d", b.RawSize, maxSize)}
	}

	zr, err := zlib.NewReader(bytes.NewReader(b.ZlibData))
	if err != nil {
		return nil, &oerr.PBFError{Kind: oerr.PBFCompression, Msg: fmt.Sprintf("opening zlib stream: %v", err)}
	}
	defer zr.Close()

	out := make([]byte, b.RawSize)
	if _, err := io.ReadFull(zr, out); err != nil {
		return nil, &oerr.PBFError{Kind: oerr.PBFCompression, Msg: fmt.Sprintf("inflating blob: %v", err)}
	}
	return out, nil
}
