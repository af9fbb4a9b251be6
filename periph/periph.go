// Package periph models the stream and DMA peripherals as akita components
// so the testbench can run without hardware.
//
// Components are clocked by the Bus: every register access applies the
// access and then ticks each component once. A driver that busy-polls a
// status register is therefore what moves simulated time forward.
package periph

import (
	"github.com/sarchlab/akita/v4/sim"
)

// HookPosTransferStart marks a DMA channel going busy. The hook item is the
// dma.Descriptor of the transfer.
var HookPosTransferStart = &sim.HookPos{Name: "DMA Transfer Start"}

// HookPosTransferDone marks a DMA channel going idle.
var HookPosTransferDone = &sim.HookPos{Name: "DMA Transfer Done"}

// HookPosWordStreamed marks a word crossing the stream link. The hook item
// is the word.
var HookPosWordStreamed = &sim.HookPos{Name: "Stream Word"}

// Device is a register block mapped on the Bus. Offsets are relative to the
// device base.
type Device interface {
	ReadReg(offset uint32, width int) uint32
	WriteReg(offset uint32, width int, value uint32)
}

// Ticker is a component clocked by the Bus.
type Ticker interface {
	Tick() bool
}

func drain(b sim.Buffer) {
	for b.Pop() != nil {
	}
}
