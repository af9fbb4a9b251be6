package axis

import "github.com/sarchlab/dmatb/csr"

// Sink configures the stream sink and drains the words it received.
type Sink struct {
	regs     csr.Handle
	expected uint32
}

// NewSink creates a Sink on the bound peripheral.
func NewSink(regs csr.Handle) *Sink {
	return &Sink{regs: regs}
}

// Reset pulses the soft reset with two writes.
func (s *Sink) Reset() {
	s.regs.Write(InSoftReset, 1)
	s.regs.Write(InSoftReset, 0)
}

// Configure sets the mode. The sink has no length register, so wordCount is
// only kept as the expected frame length.
func (s *Sink) Configure(mode Mode, wordCount uint32) {
	s.regs.Write(InMode, uint32(mode))
	s.expected = wordCount
}

// Expected returns the frame length given to the last Configure.
func (s *Sink) Expected() uint32 {
	return s.expected
}

// Enable arms the sink.
func (s *Sink) Enable() {
	s.regs.Write(InEnable, 1)
}

// PendingCount returns how many words the sink accepted since its last
// reset. It has no side effect.
func (s *Sink) PendingCount() uint32 {
	return s.regs.Read(InNWords)
}

// Pop dequeues one received word.
func (s *Sink) Pop() uint32 {
	return s.regs.Read(InData)
}

// FIFOLevel returns the number of words held by the sink.
func (s *Sink) FIFOLevel() uint32 {
	return s.regs.Read(InFIFOLevel)
}
