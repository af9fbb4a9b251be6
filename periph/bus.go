package periph

import (
	"fmt"

	"github.com/sarchlab/dmatb/csr"
)

type region struct {
	name       string
	base, size uint32
	dev        Device
}

// Bus decodes absolute addresses onto mapped devices and clocks the
// components after each access. It implements csr.Accessor.
type Bus struct {
	regions []region
	clocked []Ticker
	cycle   uint64
}

var _ csr.Accessor = (*Bus)(nil)

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Map places dev at [base, base+size).
func (b *Bus) Map(name string, base, size uint32, dev Device) {
	for _, r := range b.regions {
		if base < r.base+r.size && r.base < base+size {
			panic(fmt.Sprintf("region %s overlaps %s", name, r.name))
		}
	}

	b.regions = append(b.regions, region{
		name: name,
		base: base,
		size: size,
		dev:  dev,
	})
}

// Clock adds components ticked on every access, in the given order.
func (b *Bus) Clock(ts ...Ticker) {
	b.clocked = append(b.clocked, ts...)
}

// ReadReg reads a register and advances one cycle.
func (b *Bus) ReadReg(addr uint32, width int) uint32 {
	r := b.decode(addr)
	v := r.dev.ReadReg(addr-r.base, width)
	b.Step()

	return v
}

// WriteReg writes a register and advances one cycle.
func (b *Bus) WriteReg(addr uint32, width int, value uint32) {
	r := b.decode(addr)
	r.dev.WriteReg(addr-r.base, width, value)
	b.Step()
}

// Step ticks every clocked component once.
func (b *Bus) Step() (madeProgress bool) {
	for _, t := range b.clocked {
		madeProgress = t.Tick() || madeProgress
	}
	b.cycle++

	return madeProgress
}

// Settle steps until no component makes progress or maxCycles elapse. It
// returns the number of cycles stepped.
func (b *Bus) Settle(maxCycles int) int {
	for i := 0; i < maxCycles; i++ {
		if !b.Step() {
			return i + 1
		}
	}

	return maxCycles
}

// Cycles returns the number of cycles elapsed.
func (b *Bus) Cycles() uint64 {
	return b.cycle
}

func (b *Bus) decode(addr uint32) region {
	for _, r := range b.regions {
		if addr >= r.base && addr < r.base+r.size {
			return r
		}
	}

	panic(fmt.Sprintf("no device mapped at 0x%x", addr))
}
