// internal/update/updater.go
package update

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tamzrod/fwupdate/internal/action"
	"github.com/tamzrod/fwupdate/internal/channel"
	"github.com/tamzrod/fwupdate/internal/chunk"
	"github.com/tamzrod/fwupdate/internal/image"
)

// HeaderSize is the fixed firmware header region size in bytes. Invalidation
// overwrites exactly this many bytes on the device.
const HeaderSize = 32

// InvalidPattern is the sentinel fill written over the header on
// invalidation so the image is not treated as valid on next boot.
const InvalidPattern = 0xFF

// Stage identifies the orchestration step a failure occurred in.
type Stage string

const (
	StageInfo        Stage = "info"
	StageInvalidate  Stage = "invalidate"
	StageUpdate      Stage = "update"
	StageReconfigure Stage = "reconfigure"
)

// StageError tags an underlying failure with the stage that aborted.
// Stages after the failed one are never attempted; prior successful stages
// are not rolled back.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// LoadFunc loads a firmware image into memory. It exists so tests can
// substitute the filesystem; it defaults to image.Load.
type LoadFunc func(path string) ([]byte, error)

// Updater drives one invocation's stages against a connected channel:
//
//	Start -> [Invalidate] -> [Update] -> [Reconfigure] -> Done
//
// Unset stages are skipped. Everything is synchronous; the chunk size is
// negotiated once per transfer, and the first failure aborts the rest.
type Updater struct {
	ch   channel.Channel
	load LoadFunc
	out  io.Writer
}

// New creates an Updater for a connected channel.
func New(ch channel.Channel) *Updater {
	return &Updater{
		ch:   ch,
		load: image.Load,
		out:  os.Stdout,
	}
}

// Run executes the requested action set, stopping at the first failure.
func (u *Updater) Run(set action.Set) error {
	if set.Invalidate {
		if err := u.invalidate(); err != nil {
			return &StageError{Stage: StageInvalidate, Err: err}
		}
		fmt.Fprintf(u.out, "\nFirmware invalidated successfully\n")
	}

	if set.Update {
		if err := u.update(set.FirmwareFile); err != nil {
			return &StageError{Stage: StageUpdate, Err: err}
		}
	}

	if set.FactoryReset || set.UpdateReset {
		target := "UPDATE"
		if set.FactoryReset {
			target = "FACTORY"
		}
		fmt.Fprintf(u.out, "\nIssue firmware reconfiguration to %s image...\n", target)

		if err := u.ch.Reconfigure(set.FactoryReset); err != nil {
			return &StageError{Stage: StageReconfigure, Err: err}
		}
		fmt.Fprintf(u.out, "Done\n")
	}

	return nil
}

// invalidate transmits a synthetic all-0xFF header as a one-shot image.
// The real image file is never touched.
func (u *Updater) invalidate() error {
	header := make([]byte, HeaderSize)
	for i := range header {
		header[i] = InvalidPattern
	}
	return u.transmit(header)
}

// update loads the firmware file and streams it to the device.
func (u *Updater) update(path string) error {
	if path == "" {
		return errors.New("update: no firmware file given")
	}

	img, err := u.load(path)
	if err != nil {
		return err
	}
	return u.transmit(img)
}

// transmit negotiates the chunk size for this transfer and streams img.
func (u *Updater) transmit(img []byte) error {
	size, err := u.ch.ChunkSize()
	if err != nil {
		return err
	}
	if size == 0 {
		return chunk.ErrNoChunkSupport
	}

	return chunk.Transmit(img, size, u.ch.WriteChunk, u.progress)
}

// progress mirrors the transfer progress on stdout. Observable side effect
// only; it never influences the transfer.
func (u *Updater) progress(percent uint32) {
	fmt.Fprintf(u.out, "\rProgress [%d%%]", percent)
}
