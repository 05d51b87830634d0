// internal/chunk/transmitter.go
package chunk

import "fmt"

// WriteFunc delivers one chunk to the channel. The buffer holds exactly
// d.Length bytes and is reused for the next chunk; implementations must not
// retain it.
type WriteFunc func(d Descriptor, buf []byte) error

// ProgressFunc observes the completion percentage after each successful
// chunk write. Reporting has no effect on control flow.
type ProgressFunc func(percent uint32)

// Transmit streams image across the channel one chunk at a time, strictly in
// ascending offset order. No chunk is sent before the previous write has
// completed; the first write failure aborts the transfer, leaving the
// receiving side's prefix non-committed.
//
// The transfer buffer is allocated once per transfer and reused across
// chunks. Progress is integer arithmetic and reaches exactly 100 on the
// final chunk.
func Transmit(image []byte, chunkSize uint32, write WriteFunc, progress ProgressFunc) error {
	total := uint32(len(image))

	p, err := NewPlanner(total, chunkSize)
	if err != nil {
		return err
	}

	buf := make([]byte, chunkSize)

	for d, ok := p.Next(); ok; d, ok = p.Next() {
		copy(buf[:d.Length], image[d.Offset:d.Offset+d.Length])

		if err := write(d, buf[:d.Length]); err != nil {
			return fmt.Errorf("chunk: write at offset %d: %w", d.Offset, err)
		}

		if progress != nil {
			done := d.Offset + d.Length
			progress(uint32(uint64(done) * 100 / uint64(total)))
		}
	}

	return nil
}
