// internal/channel/channel.go

// Package channel defines the contracts the update tool needs from the
// device's resident stack. Transport implementations live in subpackages.
package channel

import "github.com/tamzrod/fwupdate/internal/chunk"

// Info reports the resident stack's version registers.
type Info struct {
	UserVersion   uint32
	UserFeature   uint32
	KernelVersion uint32
	KernelFeature uint32
}

// Channel is one session to the device's resident stack.
//
// All operations are synchronous and valid only between Connect and Close.
// WriteChunk must complete (or fail) before the caller hands over the next
// chunk: the receiving side reconstructs the image by position and treats
// the descriptor's First/Last markers as session boundaries.
type Channel interface {
	Connect() error
	Close() error

	// Info returns stack version information.
	Info() (Info, error)

	// ChunkSize returns the maximum payload bytes per WriteChunk.
	// Zero means the stack does not support chunked file transfer.
	ChunkSize() (uint32, error)

	// WriteChunk transmits one chunk; buf holds exactly d.Length bytes.
	WriteChunk(d chunk.Descriptor, buf []byte) error

	// Reconfigure requests a boot-image switch and device reset.
	Reconfigure(useFactoryImage bool) error
}
