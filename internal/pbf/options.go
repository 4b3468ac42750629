package pbf

// Options configures a Decoder's resource limits and concurrency.
type Options struct {
	// MaxBlobHeaderSize rejects any BlobHeader claiming to be larger
	// than this many bytes, guarding against a truncated or corrupt
	// length prefix turning into an unbounded read.
	MaxBlobHeaderSize int32
	// MaxBlobSize rejects any Blob claiming to be larger than this many
	// bytes, compressed or raw.
	MaxBlobSize int32
	// Workers is the number of data blobs that may be decoded
	// concurrently. Ignored when Synchronous is true.
	Workers int
	// QueueCapacity bounds how many decoded-but-unconsumed blob futures
	// the ordering queue may hold before the framer blocks, providing
	// backpressure against a slow consumer.
	QueueCapacity int
	// Synchronous disables the worker pool: every data blob is decoded
	// on the framer goroutine itself, in order, before the next blob
	// header is read. Set by the OSMCORE_PBF_SYNC environment toggle
	// described in the command-line tooling, or directly by a caller
	// that wants deterministic single-threaded decode for testing.
	Synchronous bool
}

// DefaultOptions returns the limits libosmium itself uses: a 64KiB
// BlobHeader ceiling and a 32MiB Blob ceiling, with a worker count
// matching the number of blobs a typical extract pipeline keeps in
// flight.
func DefaultOptions() Options {
	return Options{
		MaxBlobHeaderSize: 64 * 1024,
		MaxBlobSize:       32 * 1024 * 1024,
		Workers:           4,
		QueueCapacity:     8,
	}
}
