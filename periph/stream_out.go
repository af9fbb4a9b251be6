package periph

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/dmatb/axis"
	"github.com/sarchlab/dmatb/csr"
)

// StreamOut models axistream_out. It sends at most nwords words per frame
// onto the stream link, one word per cycle.
type StreamOut struct {
	*sim.TickingComponent

	version uint32
	fifo    sim.Buffer
	link    sim.Buffer

	inReset bool
	enabled bool
	mode    axis.Mode
	nwords  uint32
	sent    uint32
	dropped uint32
}

// ReadReg implements Device.
func (o *StreamOut) ReadReg(offset uint32, width int) uint32 {
	switch offset {
	case axis.OutFIFOLevel.Offset:
		return uint32(o.fifo.Size())
	case axis.OutVersion.Offset:
		return o.version
	default:
		return 0
	}
}

// WriteReg implements Device.
func (o *StreamOut) WriteReg(offset uint32, width int, value uint32) {
	switch offset {
	case axis.OutSoftReset.Offset:
		o.softReset(value != 0)
	case axis.OutEnable.Offset:
		o.enabled = value != 0
	case axis.OutMode.Offset:
		o.mode = axis.Mode(value & 1)
	case axis.OutNWords.Offset:
		o.nwords = value
	case axis.OutData.Offset:
		if o.mode != axis.ModeEmit || !o.push(value) {
			o.dropped++
			csr.Trace("Stream",
				"Behavior", "Drop",
				"Component", o.Name(),
				"Data", value,
			)
		}
	}
}

// Dropped returns how many CSR data writes were lost.
func (o *StreamOut) Dropped() uint32 {
	return o.dropped
}

// Sent returns the number of words sent in the current frame.
func (o *StreamOut) Sent() uint32 {
	return o.sent
}

// Tick moves one word from the FIFO to the stream link.
func (o *StreamOut) Tick() bool {
	if o.inReset || !o.enabled || o.sent >= o.nwords {
		return false
	}

	if o.fifo.Peek() == nil || !o.link.CanPush() {
		return false
	}

	word := o.fifo.Pop().(uint32)
	o.link.Push(word)
	o.sent++

	o.InvokeHook(sim.HookCtx{
		Domain: o,
		Pos:    HookPosWordStreamed,
		Item:   word,
	})

	return true
}

// acceptFromDMA is the DMA read channel side of the source.
func (o *StreamOut) acceptFromDMA(word uint32) bool {
	if o.mode != axis.ModeAccept {
		return false
	}

	return o.push(word)
}

func (o *StreamOut) push(word uint32) bool {
	if o.inReset || !o.enabled || !o.fifo.CanPush() {
		return false
	}

	o.fifo.Push(word)

	return true
}

func (o *StreamOut) softReset(assert bool) {
	o.inReset = assert
	if assert {
		drain(o.fifo)
		o.sent = 0
		o.dropped = 0
	}
}
