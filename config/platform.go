package config

import (
	"fmt"
	"time"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/dmatb/axis"
	"github.com/sarchlab/dmatb/csr"
	"github.com/sarchlab/dmatb/dma"
	"github.com/sarchlab/dmatb/periph"
)

// A Platform is a simulated system with a stream source, a stream sink, a
// DMA engine and its memory, all reachable through Bus.
type Platform struct {
	Name   string
	Freq   sim.Freq
	Bus    *periph.Bus
	RAM    *periph.RAM
	Source *periph.StreamOut
	Sink   *periph.StreamIn
	DMA    *periph.DMAEngine
}

// Accessor returns the register boundary of the platform.
func (p *Platform) Accessor() csr.Accessor {
	return p.Bus
}

// SimulatedTime returns the time the elapsed bus cycles take at the
// platform frequency.
func (p *Platform) SimulatedTime() time.Duration {
	if p.Freq <= 0 {
		return 0
	}

	seconds := float64(p.Bus.Cycles()) / float64(p.Freq)
	return time.Duration(seconds * float64(time.Second))
}

func (p *Platform) String() string {
	return fmt.Sprintf("Platform(%s, cycle %d)", p.Name, p.Bus.Cycles())
}

// Peripherals are the controllers a driver needs, bound to one accessor.
type Peripherals struct {
	Source *axis.Source
	Sink   *axis.Sink
	DMA    *dma.Controller
}

// Bind creates the peripheral controllers on acc using the platform address
// map. acc is usually the platform bus, possibly wrapped.
func Bind(acc csr.Accessor) Peripherals {
	return Peripherals{
		Source: axis.NewSource(csr.Bind(acc, "axistream_out", SourceBase)),
		Sink:   axis.NewSink(csr.Bind(acc, "axistream_in", SinkBase)),
		DMA:    dma.NewController(csr.Bind(acc, "dma", DMABase)),
	}
}
