package periph

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/dmatb/axis"
	"github.com/sarchlab/dmatb/dma"
)

type hookRecorder struct {
	positions []*sim.HookPos
	items     []interface{}
}

func (h *hookRecorder) Func(ctx sim.HookCtx) {
	h.positions = append(h.positions, ctx.Pos)
	h.items = append(h.items, ctx.Item)
}

const (
	inBase  uint32 = 0
	outBase uint32 = 1 << 5
	dmaBase uint32 = 2 << 5
)

var _ = Describe("Platform components", func() {
	var (
		bus    *Bus
		ram    *RAM
		out    *StreamOut
		in     *StreamIn
		engine *DMAEngine
		hooks  *hookRecorder
	)

	BeforeEach(func() {
		b := MakeBuilder().WithEngine(sim.NewSerialEngine()).WithFIFODepth(64)
		ram = NewRAM(4096)
		out, in = b.BuildStreams("AXIS")
		engine = b.BuildDMA("DMA", in, out, ram)

		hooks = &hookRecorder{}
		engine.AcceptHook(hooks)

		bus = NewBus()
		bus.Map("axis_in", inBase, 32, in)
		bus.Map("axis_out", outBase, 32, out)
		bus.Map("dma", dmaBase, 32, engine)
		bus.Clock(out, in, engine)
	})

	setup := func(inMode, outMode axis.Mode, n uint32) {
		bus.WriteReg(inBase+axis.InSoftReset.Offset, 1, 1)
		bus.WriteReg(inBase+axis.InSoftReset.Offset, 1, 0)
		bus.WriteReg(inBase+axis.InMode.Offset, 1, uint32(inMode))
		bus.WriteReg(inBase+axis.InEnable.Offset, 1, 1)

		bus.WriteReg(outBase+axis.OutSoftReset.Offset, 1, 1)
		bus.WriteReg(outBase+axis.OutSoftReset.Offset, 1, 0)
		bus.WriteReg(outBase+axis.OutMode.Offset, 1, uint32(outMode))
		bus.WriteReg(outBase+axis.OutNWords.Offset, 4, n)
		bus.WriteReg(outBase+axis.OutEnable.Offset, 1, 1)
	}

	It("should panic on unmapped addresses", func() {
		Expect(func() { bus.ReadReg(0x200, 4) }).To(Panic())
	})

	It("should panic on overlapping regions", func() {
		Expect(func() { bus.Map("x", 0x10, 0x20, in) }).To(Panic())
	})

	It("should count one cycle per access", func() {
		bus.ReadReg(dmaBase+dma.Ver.Offset, 4)
		bus.ReadReg(dmaBase+dma.Ver.Offset, 4)

		Expect(bus.Cycles()).To(Equal(uint64(2)))
	})

	It("should report the version on every block", func() {
		Expect(bus.ReadReg(dmaBase+dma.Ver.Offset, 4)).
			To(Equal(uint32(0x00010003)))
		Expect(bus.ReadReg(inBase+axis.InVersion.Offset, 4)).
			To(Equal(uint32(0x00010003)))
		Expect(bus.ReadReg(outBase+axis.OutVersion.Offset, 4)).
			To(Equal(uint32(0x00010003)))
	})

	It("should stream CSR words from source to sink", func() {
		setup(axis.ModeEmit, axis.ModeEmit, 4)

		for i := uint32(0); i < 4; i++ {
			bus.WriteReg(outBase+axis.OutData.Offset, 4, i+10)
		}
		bus.Settle(10)

		Expect(bus.ReadReg(inBase+axis.InNWords.Offset, 4)).To(Equal(uint32(4)))
		for i := uint32(0); i < 4; i++ {
			Expect(bus.ReadReg(inBase+axis.InData.Offset, 4)).To(Equal(i + 10))
		}
		Expect(bus.ReadReg(inBase+axis.InData.Offset, 4)).To(Equal(uint32(0)))
	})

	It("should stop a frame after nwords words", func() {
		setup(axis.ModeEmit, axis.ModeEmit, 2)

		for i := uint32(0); i < 3; i++ {
			bus.WriteReg(outBase+axis.OutData.Offset, 4, i)
		}
		bus.Settle(10)

		Expect(in.nwords).To(Equal(uint32(2)))
		Expect(out.Sent()).To(Equal(uint32(2)))
		Expect(bus.ReadReg(outBase+axis.OutFIFOLevel.Offset, 4)).
			To(Equal(uint32(1)))
	})

	It("should drop data written while disabled", func() {
		bus.WriteReg(outBase+axis.OutData.Offset, 4, 1)

		Expect(out.Dropped()).To(Equal(uint32(1)))
	})

	It("should clear the sink on soft reset", func() {
		setup(axis.ModeEmit, axis.ModeEmit, 2)
		bus.WriteReg(outBase+axis.OutData.Offset, 4, 1)
		bus.WriteReg(outBase+axis.OutData.Offset, 4, 2)
		bus.Settle(10)

		bus.WriteReg(inBase+axis.InSoftReset.Offset, 1, 1)
		bus.WriteReg(inBase+axis.InSoftReset.Offset, 1, 0)

		Expect(bus.ReadReg(inBase+axis.InNWords.Offset, 4)).To(Equal(uint32(0)))
		Expect(bus.ReadReg(inBase+axis.InFIFOLevel.Offset, 4)).To(Equal(uint32(0)))
	})

	It("should move sink words to RAM on a write transfer", func() {
		setup(axis.ModeAccept, axis.ModeEmit, 8)
		for i := uint32(0); i < 8; i++ {
			bus.WriteReg(outBase+axis.OutData.Offset, 4, i)
		}
		bus.Settle(10)

		bus.WriteReg(dmaBase+dma.WAddr.Offset, 4, 0x40)
		bus.WriteReg(dmaBase+dma.WLength.Offset, 4, 8)
		bus.WriteReg(dmaBase+dma.WStart.Offset, 1, 1)

		busyPolls := 0
		for bus.ReadReg(dmaBase+dma.WBusy.Offset, 1) != 0 {
			busyPolls++
		}

		Expect(busyPolls).To(BeNumerically(">", 0))
		Expect(ram.Words(0x40, 8)).To(Equal(
			[]uint32{0, 1, 2, 3, 4, 5, 6, 7}))
		Expect(hooks.positions).To(Equal(
			[]*sim.HookPos{HookPosTransferStart, HookPosTransferDone}))
		Expect(hooks.items[0].(dma.Descriptor).Direction).To(Equal(dma.Write))
	})

	It("should move RAM words to the sink on a read transfer", func() {
		for i := uint32(0); i < 8; i++ {
			Expect(ram.WriteWord(4*i, 100+i)).To(Succeed())
		}
		setup(axis.ModeEmit, axis.ModeAccept, 8)

		bus.WriteReg(dmaBase+dma.RAddr.Offset, 4, 0)
		bus.WriteReg(dmaBase+dma.RLength.Offset, 4, 8)
		bus.WriteReg(dmaBase+dma.RStart.Offset, 1, 1)
		for bus.ReadReg(dmaBase+dma.RBusy.Offset, 1) != 0 {
		}
		bus.Settle(10)

		for i := uint32(0); i < 8; i++ {
			Expect(bus.ReadReg(inBase+axis.InData.Offset, 4)).To(Equal(100 + i))
		}
	})

	It("should complete a zero-length transfer at once", func() {
		bus.WriteReg(dmaBase+dma.WLength.Offset, 4, 0)
		bus.WriteReg(dmaBase+dma.WStart.Offset, 1, 1)

		Expect(bus.ReadReg(dmaBase+dma.WBusy.Offset, 1)).To(Equal(uint32(0)))
		Expect(hooks.positions).To(BeEmpty())
	})

	It("should ignore a start on a busy channel", func() {
		bus.WriteReg(dmaBase+dma.WLength.Offset, 4, 4)
		bus.WriteReg(dmaBase+dma.WStart.Offset, 1, 1)
		bus.WriteReg(dmaBase+dma.WStart.Offset, 1, 1)

		Expect(hooks.positions).To(HaveLen(1))
		Expect(bus.ReadReg(dmaBase+dma.WBusy.Offset, 1)).To(Equal(uint32(1)))
	})

	It("should abort a transfer outside RAM", func() {
		setup(axis.ModeEmit, axis.ModeAccept, 1)

		bus.WriteReg(dmaBase+dma.RAddr.Offset, 4, 8192)
		bus.WriteReg(dmaBase+dma.RLength.Offset, 4, 1)
		bus.WriteReg(dmaBase+dma.RStart.Offset, 1, 1)

		Expect(bus.ReadReg(dmaBase+dma.RBusy.Offset, 1)).To(Equal(uint32(0)))
		Expect(engine.Faults()).To(Equal(1))
	})
})

var _ = Describe("RAM", func() {
	It("should store little-endian words", func() {
		ram := NewRAM(64)

		Expect(ram.WriteWord(4, 0x11223344)).To(Succeed())
		Expect(ram.ReadWord(4)).To(Equal(uint32(0x11223344)))
		Expect(ram.Capacity()).To(Equal(uint64(64)))
	})

	It("should reject accesses beyond capacity", func() {
		ram := NewRAM(64)

		_, err := ram.ReadWord(62)
		Expect(err).To(HaveOccurred())
		Expect(ram.WriteWord(64, 1)).NotTo(Succeed())
	})
})
