// internal/channel/modbus/layout.go
package modbus

import "github.com/tamzrod/fwupdate/internal/chunk"

// File-transfer window layout of the service processor.
// These values define the protocol and MUST NOT be configurable.

// ---- CONTROL BLOCK (holding registers) ----

// RegMaxChunkSize advertises the maximum payload bytes per chunk write.
// Zero means chunked file transfer is not supported.
const RegMaxChunkSize = 0x0000

// RegCommand receives Cmd* values; writing it commits the staged request.
const RegCommand = 0x0001

// ---- STACK INFO BLOCK ----

// RegStackInfo is the first of StackInfoRegs registers holding the stack
// version block: user version, user feature, kernel version, kernel feature,
// each as a hi/lo register pair.
const RegStackInfo = 0x0010

// StackInfoRegs is the size of the stack version block.
const StackInfoRegs = 8

// ---- CHUNK HEADER BLOCK ----

// RegChunkHeader is the first register of the staged chunk descriptor.
const RegChunkHeader = 0x0020

// ChunkHeaderRegs is the size of the staged chunk descriptor.
const ChunkHeaderRegs = 4

// Chunk header slot indices.
const (
	slotOffsetHi = 0
	slotOffsetLo = 1
	slotLength   = 2
	slotFlags    = 3
)

// Chunk flag bits.
const (
	FlagFirst uint16 = 1 << 0
	FlagLast  uint16 = 1 << 1
)

// ---- DATA WINDOW ----

// RegDataWindow is the first register of the chunk payload window.
const RegDataWindow = 0x0100

// DefaultDataWindowRegs is the payload window size in registers (2 bytes
// each) unless the configuration overrides it.
const DefaultDataWindowRegs = 512

// maxRegsPerWrite is the Modbus protocol limit on registers per write
// request (function 16). A chunk larger than this is staged across
// successive writes into the data window.
const maxRegsPerWrite = 123

// ---- COMMANDS ----

const (
	CmdWriteChunk         uint16 = 1
	CmdReconfigureUpdate  uint16 = 2
	CmdReconfigureFactory uint16 = 3
)

// EncodeDescriptor packs a chunk descriptor into the chunk header block.
// Layout is protocol-locked. No IO. No side effects.
func EncodeDescriptor(d chunk.Descriptor) []uint16 {
	regs := make([]uint16, ChunkHeaderRegs)

	regs[slotOffsetHi] = uint16(d.Offset >> 16)
	regs[slotOffsetLo] = uint16(d.Offset)
	regs[slotLength] = uint16(d.Length)

	var flags uint16
	if d.First {
		flags |= FlagFirst
	}
	if d.Last {
		flags |= FlagLast
	}
	regs[slotFlags] = flags

	return regs
}

// packRegisters serializes registers big-endian, as goburrow expects.
func packRegisters(regs []uint16) []byte {
	out := make([]byte, len(regs)*2)
	for i, r := range regs {
		out[2*i] = byte(r >> 8)
		out[2*i+1] = byte(r)
	}
	return out
}

// packPayload packs chunk payload bytes into a register image, two bytes per
// register, zero-padding an odd tail byte.
func packPayload(buf []byte) []byte {
	n := (len(buf) + 1) / 2 * 2
	out := make([]byte, n)
	copy(out, buf)
	return out
}

// unpackRegisters deserializes a big-endian register image.
func unpackRegisters(data []byte) []uint16 {
	n := len(data) / 2
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out
}

// unpackU32 joins a hi/lo register pair.
func unpackU32(hi, lo uint16) uint32 {
	return uint32(hi)<<16 | uint32(lo)
}
