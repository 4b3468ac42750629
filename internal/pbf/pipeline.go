// Package pbf implements the multi-stage decode pipeline for the OSM
// PBF binary format: a Framer that pulls length-prefixed blobs off the
// wire, a bounded pool of Decoders that turn each data blob into a
// committed entity.Buffer, and a FIFO ordering queue that lets those
// decodes run concurrently while still handing buffers back to the
// caller in their original file order.
package pbf

import (
	"context"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/osmium-go/osmcore/internal/entity"
	"github.com/osmium-go/osmcore/internal/header"
	"github.com/osmium-go/osmcore/internal/pbfwire"
)

// Decoder streams entity buffers out of a PBF byte stream. Call Header
// once to retrieve the stream's metadata (it blocks until the leading
// OSMHeader blob has been read and decoded), then call Read repeatedly
// until it returns io.EOF.
type Decoder struct {
	framer       *Framer
	opts         Options
	headerFuture *Future[header.Header]
	queue        chan *Future[*entity.Buffer]
	sem          *semaphore.Weighted
	stop         chan struct{}
	stopOnce     sync.Once
	pumpDone     chan struct{}
}

// NewDecoder starts decoding r in the background and returns
// immediately; the returned Decoder's Header and Read calls block as
// results become available.
func NewDecoder(r io.Reader, opts Options) *Decoder {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.QueueCapacity <= 0 {
		opts.QueueCapacity = 1
	}
	d := &Decoder{
		framer:       NewFramer(r, opts),
		opts:         opts,
		headerFuture: NewFuture[header.Header](),
		queue:        make(chan *Future[*entity.Buffer], opts.QueueCapacity),
		sem:          semaphore.NewWeighted(int64(opts.Workers)),
		stop:         make(chan struct{}),
		pumpDone:     make(chan struct{}),
	}
	go d.pump()
	return d
}

// Header blocks until the stream's OSMHeader blob has been decoded (or
// framing fails before it is reached) and returns its contents.
func (d *Decoder) Header() (header.Header, error) {
	return d.headerFuture.Wait()
}

// Read returns the next entity buffer in file order, blocking until a
// background decode (or the framer itself) has produced it. It returns
// io.EOF, with a nil buffer, once the stream's end-sentinel has been
// reached or Close has drained the queue.
func (d *Decoder) Read() (*entity.Buffer, error) {
	f, ok := <-d.queue
	if !ok {
		return nil, io.EOF
	}
	buf, err := f.Wait()
	if err != nil {
		return nil, err
	}
	if buf == nil || buf.Len() == 0 {
		return nil, io.EOF
	}
	return buf, nil
}

// Close signals the pipeline to stop producing new work and drains
// whatever is left in the ordering queue so the pump goroutine can
// finish without blocking on a full channel. Close never blocks on the
// pump's completion and never returns an error; the pump's own decode
// errors, if any, were already surfaced through Read.
func (d *Decoder) Close() error {
	d.stopOnce.Do(func() {
		close(d.stop)
		go func() {
			for range d.queue {
			}
		}()
	})
	return nil
}

// pump is the Framer-driving goroutine: it resolves the header future
// from the first blob, then reads data blobs one at a time, handing
// each to the worker pool (or decoding it inline when opts.Synchronous)
// and pushing a Future onto the ordering queue in arrival order before
// that Future is necessarily resolved.
func (d *Decoder) pump() {
	defer close(d.pumpDone)
	defer close(d.queue)

	rb, err := d.framer.Next()
	if err != nil {
		d.headerFuture.Resolve(header.Header{}, err)
		return
	}
	hb, err := decodeHeaderBlob(rb.blob, d.opts)
	if err != nil {
		d.headerFuture.Resolve(header.Header{}, err)
		return
	}
	d.headerFuture.Resolve(hb, nil)

	var active errgroup.Group
	for {
		select {
		case <-d.stop:
			active.Wait()
			return
		default:
		}

		rb, err := d.framer.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			f := NewFuture[*entity.Buffer]()
			f.Resolve(nil, err)
			d.pushFuture(f)
			active.Wait()
			return
		}

		f := NewFuture[*entity.Buffer]()
		if !d.pushFuture(f) {
			active.Wait()
			return
		}

		blob := rb.blob
		if d.opts.Synchronous {
			buf, derr := decodeDataBlob(blob, d.opts)
			f.Resolve(buf, derr)
			continue
		}

		if err := d.sem.Acquire(context.Background(), 1); err != nil {
			f.Resolve(nil, err)
			continue
		}
		active.Go(func() error {
			defer d.sem.Release(1)
			buf, derr := decodeDataBlob(blob, d.opts)
			f.Resolve(buf, derr)
			return nil
		})
	}
	active.Wait()

	sentinel := NewFuture[*entity.Buffer]()
	sentinel.Resolve(entity.NewBuffer(0), nil)
	d.pushFuture(sentinel)
}

// pushFuture enqueues f onto the ordering queue, honoring Close's stop
// signal so a blocked send on a full queue cannot wedge the pump
// forever. It reports whether the push happened.
func (d *Decoder) pushFuture(f *Future[*entity.Buffer]) bool {
	select {
	case d.queue <- f:
		return true
	case <-d.stop:
		return false
	}
}

func decodeHeaderBlob(blob pbfwire.Blob, opts Options) (header.Header, error) {
	raw, err := inflate(blob, opts.MaxBlobSize)
	if err != nil {
		return header.Header{}, err
	}
	hb, err := pbfwire.DecodeHeaderBlock(raw)
	if err != nil {
		return header.Header{}, err
	}
	return header.FromPBF(hb), nil
}

func decodeDataBlob(blob pbfwire.Blob, opts Options) (*entity.Buffer, error) {
	raw, err := inflate(blob, opts.MaxBlobSize)
	if err != nil {
		return nil, err
	}
	pb, err := pbfwire.DecodePrimitiveBlock(raw)
	if err != nil {
		return nil, err
	}
	buf := entity.NewBuffer(0)
	if err := decodeBlockToBuffer(pb, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
