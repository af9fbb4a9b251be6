// Package config builds the simulated testbench platform and loads
// testbench parameters.
package config

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/dmatb/periph"
)

// Register windows on the platform bus. Bits 6..5 of the address select the
// peripheral.
const (
	SinkBase   uint32 = 0 << 5
	SourceBase uint32 = 1 << 5
	DMABase    uint32 = 2 << 5
	WindowSize uint32 = 1 << 5
)

// PlatformBuilder can build simulated testbench platforms.
type PlatformBuilder struct {
	engine    sim.Engine
	freq      sim.Freq
	fifoDepth int
	ramSize   uint64
	version   uint32
}

// MakePlatformBuilder returns a PlatformBuilder with default parameters.
func MakePlatformBuilder() PlatformBuilder {
	return PlatformBuilder{
		freq:      100 * sim.MHz,
		fifoDepth: 1024,
		ramSize:   64 * 1024,
		version:   0x00010003,
	}
}

// WithEngine sets the engine that owns the platform components.
func (b PlatformBuilder) WithEngine(engine sim.Engine) PlatformBuilder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the platform.
func (b PlatformBuilder) WithFreq(freq sim.Freq) PlatformBuilder {
	b.freq = freq
	return b
}

// WithFIFODepth sets the depth of both stream FIFOs.
func (b PlatformBuilder) WithFIFODepth(depth int) PlatformBuilder {
	b.fifoDepth = depth
	return b
}

// WithRAMSize sets the capacity of the DMA memory in bytes.
func (b PlatformBuilder) WithRAMSize(size uint64) PlatformBuilder {
	b.ramSize = size
	return b
}

// WithVersion sets the value returned by all version registers.
func (b PlatformBuilder) WithVersion(version uint32) PlatformBuilder {
	b.version = version
	return b
}

// Build creates a platform.
func (b PlatformBuilder) Build(name string) *Platform {
	engine := b.engine
	if engine == nil {
		engine = sim.NewSerialEngine()
	}

	pb := periph.MakeBuilder().
		WithEngine(engine).
		WithFreq(b.freq).
		WithFIFODepth(b.fifoDepth).
		WithVersion(b.version)

	p := &Platform{
		Name: name,
		Freq: b.freq,
		RAM:  periph.NewRAM(b.ramSize),
		Bus:  periph.NewBus(),
	}

	p.Source, p.Sink = pb.BuildStreams(name + ".AXIS")
	p.DMA = pb.BuildDMA(name+".DMA", p.Sink, p.Source, p.RAM)

	p.Bus.Map("axistream_in", SinkBase, WindowSize, p.Sink)
	p.Bus.Map("axistream_out", SourceBase, WindowSize, p.Source)
	p.Bus.Map("dma", DMABase, WindowSize, p.DMA)
	p.Bus.Clock(p.Source, p.Sink, p.DMA)

	return p
}
