package axis

import "github.com/sarchlab/dmatb/csr"

// Source configures the stream source and feeds it words.
type Source struct {
	regs csr.Handle
}

// NewSource creates a Source on the bound peripheral.
func NewSource(regs csr.Handle) *Source {
	return &Source{regs: regs}
}

// Reset pulses the soft reset. Assert and deassert are two separate
// writes so the peripheral sees an edge.
func (s *Source) Reset() {
	s.regs.Write(OutSoftReset, 1)
	s.regs.Write(OutSoftReset, 0)
}

// Configure sets the mode and the number of words in the frame.
func (s *Source) Configure(mode Mode, wordCount uint32) {
	s.regs.Write(OutMode, uint32(mode))
	s.regs.Write(OutNWords, wordCount)
}

// Enable arms the source.
func (s *Source) Enable() {
	s.regs.Write(OutEnable, 1)
}

// Push writes one word to the stream. Backpressure is not checked.
func (s *Source) Push(word uint32) {
	s.regs.Write(OutData, word)
}

// FIFOLevel returns the number of words waiting to be streamed.
func (s *Source) FIFOLevel() uint32 {
	return s.regs.Read(OutFIFOLevel)
}
