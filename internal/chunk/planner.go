// internal/chunk/planner.go
package chunk

import "errors"

// Descriptor is one position-tagged transfer unit of a firmware image.
// First and Last are session boundary markers for the receiving side, which
// reconstructs the image by position.
type Descriptor struct {
	Offset uint32
	Length uint32
	First  bool
	Last   bool
}

// ErrNoChunkSupport means the channel advertised a zero chunk size, i.e.
// the resident stack does not support chunked file transfer. This is a
// precondition failure, not a retryable error.
var ErrNoChunkSupport = errors.New("chunk: no file chunk transfer support available")

// Planner emits the descriptor sequence covering [0, imageLen) exactly once,
// in ascending offset order. It is a stateless generator over immutable
// lengths: Reset restarts the identical sequence.
type Planner struct {
	imageLen  uint32
	chunkSize uint32
	offset    uint32
}

// NewPlanner creates a planner for an image of imageLen bytes transferred in
// units of at most chunkSize bytes.
func NewPlanner(imageLen, chunkSize uint32) (*Planner, error) {
	if chunkSize == 0 {
		return nil, ErrNoChunkSupport
	}
	return &Planner{imageLen: imageLen, chunkSize: chunkSize}, nil
}

// Count returns the length of the full sequence: ceil(imageLen / chunkSize).
func (p *Planner) Count() uint32 {
	return (p.imageLen + p.chunkSize - 1) / p.chunkSize
}

// Next returns the next descriptor. ok is false once the image is covered.
func (p *Planner) Next() (d Descriptor, ok bool) {
	remaining := p.imageLen - p.offset
	if remaining == 0 {
		return Descriptor{}, false
	}

	d.Offset = p.offset
	d.First = p.offset == 0
	if remaining <= p.chunkSize {
		d.Length = remaining
		d.Last = true
	} else {
		d.Length = p.chunkSize
	}

	p.offset += d.Length
	return d, true
}

// Reset restarts the sequence from offset 0.
func (p *Planner) Reset() {
	p.offset = 0
}
