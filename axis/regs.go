package axis

import "github.com/sarchlab/dmatb/csr"

// Source (axistream_out) register layout.
var (
	OutSoftReset = csr.Field{Name: "soft_reset", Offset: 0x00, Width: 1, Access: csr.W}
	OutEnable    = csr.Field{Name: "enable", Offset: 0x01, Width: 1, Access: csr.W}
	OutMode      = csr.Field{Name: "mode", Offset: 0x02, Width: 1, Access: csr.W}
	OutData      = csr.Field{Name: "data", Offset: 0x04, Width: 4, Access: csr.W}
	OutNWords    = csr.Field{Name: "nwords", Offset: 0x08, Width: 4, Access: csr.W}
	OutFIFOLevel = csr.Field{Name: "fifo_level", Offset: 0x0C, Width: 4, Access: csr.R}
	OutVersion   = csr.Field{Name: "version", Offset: 0x1C, Width: 4, Access: csr.R}
)

// Sink (axistream_in) register layout.
var (
	InSoftReset = csr.Field{Name: "soft_reset", Offset: 0x00, Width: 1, Access: csr.W}
	InEnable    = csr.Field{Name: "enable", Offset: 0x01, Width: 1, Access: csr.W}
	InMode      = csr.Field{Name: "mode", Offset: 0x02, Width: 1, Access: csr.W}
	InData      = csr.Field{Name: "data", Offset: 0x04, Width: 4, Access: csr.R}
	InNWords    = csr.Field{Name: "nwords", Offset: 0x08, Width: 4, Access: csr.R}
	InFIFOLevel = csr.Field{Name: "fifo_level", Offset: 0x0C, Width: 4, Access: csr.R}
	InVersion   = csr.Field{Name: "version", Offset: 0x1C, Width: 4, Access: csr.R}
)
