package periph

import (
	"log/slog"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/dmatb/csr"
	"github.com/sarchlab/dmatb/dma"
)

type channel struct {
	desc dma.Descriptor

	busy      bool
	cur       uint32
	remaining uint32
}

// DMAEngine models the DMA engine. The write channel moves words from the
// stream sink to RAM and the read channel moves words from RAM to the stream
// source, one word per cycle each.
type DMAEngine struct {
	*sim.TickingComponent

	version uint32
	ram     *RAM
	in      *StreamIn
	out     *StreamOut

	w, r   channel
	faults int
}

// ReadReg implements Device.
func (d *DMAEngine) ReadReg(offset uint32, width int) uint32 {
	switch offset {
	case dma.WBusy.Offset:
		return boolToReg(d.w.busy)
	case dma.RBusy.Offset:
		return boolToReg(d.r.busy)
	case dma.Ver.Offset:
		return d.version
	default:
		return 0
	}
}

// WriteReg implements Device.
func (d *DMAEngine) WriteReg(offset uint32, width int, value uint32) {
	switch offset {
	case dma.WAddr.Offset:
		d.w.desc.MemoryOffset = value
	case dma.WLength.Offset:
		d.w.desc.WordCount = value
	case dma.WStart.Offset:
		if value != 0 {
			d.start(&d.w, dma.Write)
		}
	case dma.RAddr.Offset:
		d.r.desc.MemoryOffset = value
	case dma.RLength.Offset:
		d.r.desc.WordCount = value
	case dma.RStart.Offset:
		if value != 0 {
			d.start(&d.r, dma.Read)
		}
	}
}

// Faults returns how many transfers were aborted on a RAM access error.
func (d *DMAEngine) Faults() int {
	return d.faults
}

// Tick advances both channels by at most one word.
func (d *DMAEngine) Tick() (madeProgress bool) {
	madeProgress = d.tickWrite() || madeProgress
	madeProgress = d.tickRead() || madeProgress

	return madeProgress
}

func (d *DMAEngine) start(c *channel, dir dma.Direction) {
	if c.busy {
		csr.Trace("DMA",
			"Behavior", "StartIgnored",
			"Component", d.Name(),
			"Direction", dir.String(),
		)
		return
	}

	c.desc.Direction = dir
	c.cur = c.desc.MemoryOffset
	c.remaining = c.desc.WordCount

	if c.remaining == 0 {
		return
	}

	c.busy = true
	d.InvokeHook(sim.HookCtx{
		Domain: d,
		Pos:    HookPosTransferStart,
		Item:   c.desc,
	})
}

func (d *DMAEngine) tickWrite() bool {
	if !d.w.busy {
		return false
	}

	word, ok := d.in.takeForDMA()
	if !ok {
		return false
	}

	if err := d.ram.WriteWord(d.w.cur, word); err != nil {
		d.abort(&d.w, err)
		return true
	}

	d.advance(&d.w)

	return true
}

func (d *DMAEngine) tickRead() bool {
	if !d.r.busy {
		return false
	}

	word, err := d.ram.ReadWord(d.r.cur)
	if err != nil {
		d.abort(&d.r, err)
		return true
	}

	if !d.out.acceptFromDMA(word) {
		return false
	}

	d.advance(&d.r)

	return true
}

func (d *DMAEngine) advance(c *channel) {
	c.cur += 4
	c.remaining--

	if c.remaining > 0 {
		return
	}

	c.busy = false
	d.InvokeHook(sim.HookCtx{
		Domain: d,
		Pos:    HookPosTransferDone,
		Item:   c.desc,
	})
}

func (d *DMAEngine) abort(c *channel, err error) {
	d.faults++
	c.busy = false

	slog.Warn("DMA transfer aborted",
		"Component", d.Name(),
		"Direction", c.desc.Direction.String(),
		"Addr", c.cur,
		"Error", err,
	)
}

func boolToReg(b bool) uint32 {
	if b {
		return 1
	}

	return 0
}
