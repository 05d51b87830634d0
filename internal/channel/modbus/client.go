// internal/channel/modbus/client.go
package modbus

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goburrow/modbus"

	"github.com/tamzrod/fwupdate/internal/channel"
	"github.com/tamzrod/fwupdate/internal/chunk"
)

// regClient is the exact slice of goburrow's client this channel uses.
// IMPORTANT: There must be NO other version of this interface anywhere.
type regClient interface {
	ReadHoldingRegisters(address, quantity uint16) ([]byte, error)
	WriteSingleRegister(address, value uint16) ([]byte, error)
	WriteMultipleRegisters(address, quantity uint16, value []byte) ([]byte, error)
}

// clientHandler is the shared surface of goburrow's TCP and RTU handlers.
type clientHandler interface {
	modbus.ClientHandler
	Connect() error
	Close() error
}

// Client implements channel.Channel over the service processor's
// file-transfer window. It serializes requests because one chunk write is a
// staged multi-request sequence (payload, header, commit).
type Client struct {
	mu      sync.Mutex
	handler clientHandler
	client  regClient
	window  uint16 // data window size in registers
}

var _ channel.Channel = (*Client)(nil)

// Config is the transport configuration for one channel session.
type Config struct {
	Transport string // "tcp" or "serial"
	Endpoint  string
	UnitID    byte
	Timeout   time.Duration

	// Serial line settings, used by the serial transport only.
	BaudRate int
	DataBits int
	Parity   string
	StopBits int

	// DataWindowRegs overrides the payload window size; 0 keeps the default.
	DataWindowRegs uint16
}

// New builds an unconnected client. The session is opened by Connect and
// must be released with Close.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("channel modbus: endpoint required")
	}

	var h clientHandler
	switch cfg.Transport {
	case "tcp", "":
		th := modbus.NewTCPClientHandler(cfg.Endpoint)
		th.Timeout = cfg.Timeout
		th.SlaveId = cfg.UnitID
		h = th

	case "serial":
		rh := modbus.NewRTUClientHandler(cfg.Endpoint)
		rh.Timeout = cfg.Timeout
		rh.SlaveId = cfg.UnitID
		rh.BaudRate = cfg.BaudRate
		rh.DataBits = cfg.DataBits
		rh.Parity = cfg.Parity
		rh.StopBits = cfg.StopBits
		h = rh

	default:
		return nil, fmt.Errorf("channel modbus: unknown transport %q", cfg.Transport)
	}

	window := cfg.DataWindowRegs
	if window == 0 {
		window = DefaultDataWindowRegs
	}

	return &Client{
		handler: h,
		client:  modbus.NewClient(h),
		window:  window,
	}, nil
}

// Connect opens the transport session.
func (c *Client) Connect() error {
	return c.handler.Connect()
}

// Close releases the transport session.
func (c *Client) Close() error {
	return c.handler.Close()
}

// Info reads the stack version block.
func (c *Client) Info() (channel.Info, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, err := c.client.ReadHoldingRegisters(RegStackInfo, StackInfoRegs)
	if err != nil {
		return channel.Info{}, fmt.Errorf("channel modbus: read stack info: %w", err)
	}
	regs := unpackRegisters(raw)
	if len(regs) != StackInfoRegs {
		return channel.Info{}, errors.New("channel modbus: short stack info block")
	}

	return channel.Info{
		UserVersion:   unpackU32(regs[0], regs[1]),
		UserFeature:   unpackU32(regs[2], regs[3]),
		KernelVersion: unpackU32(regs[4], regs[5]),
		KernelFeature: unpackU32(regs[6], regs[7]),
	}, nil
}

// ChunkSize reads the advertised maximum payload bytes per chunk, capped to
// what the data window can carry. Zero advertises no chunked transfer
// support and is passed through for the caller to reject.
func (c *Client) ChunkSize() (uint32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, err := c.client.ReadHoldingRegisters(RegMaxChunkSize, 1)
	if err != nil {
		return 0, fmt.Errorf("channel modbus: read max chunk size: %w", err)
	}
	regs := unpackRegisters(raw)
	if len(regs) != 1 {
		return 0, errors.New("channel modbus: short max chunk size response")
	}

	adv := uint32(regs[0])
	if limit := uint32(c.window) * 2; adv > limit {
		adv = limit
	}
	return adv, nil
}

// WriteChunk stages the payload and descriptor, then commits the write.
// Synchronous: the commit round-trip completes before WriteChunk returns.
func (c *Client) WriteChunk(d chunk.Descriptor, buf []byte) error {
	if uint32(len(buf)) != d.Length {
		return fmt.Errorf("channel modbus: payload is %d bytes, descriptor says %d", len(buf), d.Length)
	}
	if d.Length > uint32(c.window)*2 {
		return fmt.Errorf("channel modbus: chunk of %d bytes exceeds data window", d.Length)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Stage the payload in protocol-sized slices; one request may carry at
	// most maxRegsPerWrite registers.
	payload := packPayload(buf)
	for off := 0; off < len(payload); off += maxRegsPerWrite * 2 {
		end := off + maxRegsPerWrite*2
		if end > len(payload) {
			end = len(payload)
		}
		slice := payload[off:end]
		addr := RegDataWindow + uint16(off/2)

		if _, err := c.client.WriteMultipleRegisters(addr, uint16(len(slice)/2), slice); err != nil {
			return fmt.Errorf("channel modbus: stage payload: %w", err)
		}
	}

	header := packRegisters(EncodeDescriptor(d))
	if _, err := c.client.WriteMultipleRegisters(RegChunkHeader, ChunkHeaderRegs, header); err != nil {
		return fmt.Errorf("channel modbus: stage chunk header: %w", err)
	}

	if _, err := c.client.WriteSingleRegister(RegCommand, CmdWriteChunk); err != nil {
		return fmt.Errorf("channel modbus: commit chunk: %w", err)
	}
	return nil
}

// Reconfigure requests a boot-image switch and reset.
func (c *Client) Reconfigure(useFactoryImage bool) error {
	cmd := CmdReconfigureUpdate
	if useFactoryImage {
		cmd = CmdReconfigureFactory
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.client.WriteSingleRegister(RegCommand, cmd); err != nil {
		return fmt.Errorf("channel modbus: reconfigure: %w", err)
	}
	return nil
}
