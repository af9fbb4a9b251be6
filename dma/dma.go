// Package dma drives the DMA engine that moves words between the stream
// peripherals and memory.
package dma

import (
	"context"
	"errors"
	"fmt"

	"github.com/sarchlab/dmatb/csr"
	"github.com/sarchlab/dmatb/poll"
)

// ErrBusy is returned when a transfer is started on a busy channel.
var ErrBusy = errors.New("dma channel busy")

// Direction is the direction of a transfer.
type Direction int

const (
	// Write moves words from the stream sink into memory.
	Write Direction = iota
	// Read moves words from memory into the stream source.
	Read
)

func (d Direction) String() string {
	switch d {
	case Write:
		return "write"
	case Read:
		return "read"
	default:
		panic("invalid dma direction")
	}
}

// Descriptor describes one transfer. MemoryOffset is a byte address.
type Descriptor struct {
	Direction    Direction
	WordCount    uint32
	MemoryOffset uint32
}

// Version is the decoded version register.
type Version struct {
	Major uint32
	Minor uint32
}

// ParseVersion splits a raw version register.
func ParseVersion(raw uint32) Version {
	return Version{
		Major: raw >> 16,
		Minor: raw & 0xff,
	}
}

func (v Version) String() string {
	return fmt.Sprintf("%x.%x", v.Major, v.Minor)
}

// Controller starts DMA transfers and observes their completion. The busy
// registers are the only state; the controller keeps none of its own.
type Controller struct {
	regs csr.Handle
}

// NewController creates a Controller on the bound DMA engine.
func NewController(regs csr.Handle) *Controller {
	return &Controller{regs: regs}
}

// StartWriteTransfer moves wordCount words from the stream sink to memory
// starting at memoryOffset.
func (c *Controller) StartWriteTransfer(memoryOffset, wordCount uint32) error {
	return c.Start(Descriptor{
		Direction:    Write,
		WordCount:    wordCount,
		MemoryOffset: memoryOffset,
	})
}

// StartReadTransfer moves wordCount words from memory starting at
// memoryOffset to the stream source.
func (c *Controller) StartReadTransfer(memoryOffset, wordCount uint32) error {
	return c.Start(Descriptor{
		Direction:    Read,
		WordCount:    wordCount,
		MemoryOffset: memoryOffset,
	})
}

// Start programs the channel selected by the descriptor and triggers it.
func (c *Controller) Start(d Descriptor) error {
	addr, length, start := WAddr, WLength, WStart
	busy := c.IsWriteBusy
	if d.Direction == Read {
		addr, length, start = RAddr, RLength, RStart
		busy = c.IsReadBusy
	}

	if busy() {
		return fmt.Errorf("cannot start %s transfer: %w", d.Direction, ErrBusy)
	}

	c.regs.Write(addr, d.MemoryOffset)
	c.regs.Write(length, d.WordCount)
	c.regs.Write(start, 1)

	csr.Trace("DMA",
		"Behavior", "Start",
		"Direction", d.Direction.String(),
		"Addr", d.MemoryOffset,
		"Words", d.WordCount,
	)

	return nil
}

// IsWriteBusy reports whether the write channel is moving data.
func (c *Controller) IsWriteBusy() bool {
	return c.regs.Read(WBusy) != 0
}

// IsReadBusy reports whether the read channel is moving data.
func (c *Controller) IsReadBusy() bool {
	return c.regs.Read(RBusy) != 0
}

// Version returns the decoded version register.
func (c *Controller) Version() Version {
	return ParseVersion(c.RawVersion())
}

// RawVersion returns the version register as read.
func (c *Controller) RawVersion() uint32 {
	return c.regs.Read(Ver)
}

// WaitWrite polls the write channel until idle. It returns how many polls
// saw the channel busy.
func (c *Controller) WaitWrite(ctx context.Context, b poll.Budget) (int, error) {
	return wait(ctx, b, c.IsWriteBusy)
}

// WaitRead polls the read channel until idle. It returns how many polls
// saw the channel busy.
func (c *Controller) WaitRead(ctx context.Context, b poll.Budget) (int, error) {
	return wait(ctx, b, c.IsReadBusy)
}

func wait(ctx context.Context, b poll.Budget, busy func() bool) (int, error) {
	polls, err := poll.Until(ctx, b, func() bool { return !busy() })
	if err != nil {
		return polls, err
	}

	return polls - 1, nil
}
