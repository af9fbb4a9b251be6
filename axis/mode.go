// Package axis drives the AXI-stream source (axistream_out) and sink
// (axistream_in) peripherals through their CSRs.
package axis

// Mode selects which side of a stream peripheral the words travel
// through. The value is written to the mode CSR as is.
type Mode uint32

const (
	// ModeEmit moves words through the CSR data field: the caller pushes
	// words into the source, or pops them from the sink.
	ModeEmit Mode = 0

	// ModeAccept moves words through the DMA path: the source accepts
	// words read from memory, the sink hands its words to the DMA.
	ModeAccept Mode = 1
)

func (m Mode) String() string {
	switch m {
	case ModeEmit:
		return "emit"
	case ModeAccept:
		return "accept"
	default:
		panic("invalid stream mode")
	}
}
