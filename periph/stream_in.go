package periph

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/dmatb/axis"
)

// StreamIn models axistream_in. It takes one word per cycle from the stream
// link and counts every word accepted since the last reset.
type StreamIn struct {
	*sim.TickingComponent

	version uint32
	fifo    sim.Buffer
	link    sim.Buffer

	inReset bool
	enabled bool
	mode    axis.Mode
	nwords  uint32
}

// ReadReg implements Device. Reading data in emit mode pops a word, or
// returns 0 if the FIFO is empty.
func (in *StreamIn) ReadReg(offset uint32, width int) uint32 {
	switch offset {
	case axis.InData.Offset:
		if in.mode != axis.ModeEmit {
			return 0
		}
		word, _ := in.pop()
		return word
	case axis.InNWords.Offset:
		return in.nwords
	case axis.InFIFOLevel.Offset:
		return uint32(in.fifo.Size())
	case axis.InVersion.Offset:
		return in.version
	default:
		return 0
	}
}

// WriteReg implements Device.
func (in *StreamIn) WriteReg(offset uint32, width int, value uint32) {
	switch offset {
	case axis.InSoftReset.Offset:
		in.inReset = value != 0
		if in.inReset {
			drain(in.fifo)
			in.nwords = 0
		}
	case axis.InEnable.Offset:
		in.enabled = value != 0
	case axis.InMode.Offset:
		in.mode = axis.Mode(value & 1)
	}
}

// Tick moves one word from the stream link into the FIFO.
func (in *StreamIn) Tick() bool {
	if in.inReset || !in.enabled {
		return false
	}

	if in.link.Peek() == nil || !in.fifo.CanPush() {
		return false
	}

	in.fifo.Push(in.link.Pop())
	in.nwords++

	return true
}

// takeForDMA is the DMA write channel side of the sink.
func (in *StreamIn) takeForDMA() (uint32, bool) {
	if in.mode != axis.ModeAccept {
		return 0, false
	}

	return in.pop()
}

func (in *StreamIn) pop() (uint32, bool) {
	if in.inReset {
		return 0, false
	}

	item := in.fifo.Pop()
	if item == nil {
		return 0, false
	}

	return item.(uint32), true
}
