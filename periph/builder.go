package periph

import (
	"github.com/sarchlab/akita/v4/sim"
)

// Builder creates the stream and DMA components.
type Builder struct {
	engine    sim.Engine
	freq      sim.Freq
	fifoDepth int
	linkDepth int
	version   uint32
}

// MakeBuilder returns a Builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		freq:      100 * sim.MHz,
		fifoDepth: 1024,
		linkDepth: 2,
		version:   0x00010003,
	}
}

// WithEngine sets the engine.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the components.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithFIFODepth sets the depth of the stream FIFOs in words.
func (b Builder) WithFIFODepth(depth int) Builder {
	if depth < 1 {
		panic("fifo depth must be at least 1")
	}
	b.fifoDepth = depth
	return b
}

// WithVersion sets the value of the version registers.
func (b Builder) WithVersion(version uint32) Builder {
	b.version = version
	return b
}

// BuildStreams creates a source and a sink joined by a stream link.
func (b Builder) BuildStreams(name string) (*StreamOut, *StreamIn) {
	link := sim.NewBuffer(name+".Link", b.linkDepth)

	out := &StreamOut{
		version: b.version,
		fifo:    sim.NewBuffer(name+".Out.FIFO", b.fifoDepth),
		link:    link,
	}
	out.TickingComponent = sim.NewTickingComponent(
		name+".Out", b.engine, b.freq, out)

	in := &StreamIn{
		version: b.version,
		fifo:    sim.NewBuffer(name+".In.FIFO", b.fifoDepth),
		link:    link,
	}
	in.TickingComponent = sim.NewTickingComponent(
		name+".In", b.engine, b.freq, in)

	return out, in
}

// BuildDMA creates a DMA engine between the given sink, source and RAM.
func (b Builder) BuildDMA(
	name string,
	in *StreamIn,
	out *StreamOut,
	ram *RAM,
) *DMAEngine {
	d := &DMAEngine{
		version: b.version,
		ram:     ram,
		in:      in,
		out:     out,
	}
	d.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, d)

	return d
}
