package dma

import "github.com/sarchlab/dmatb/csr"

// Register layout of the DMA engine.
var (
	WAddr   = csr.Field{Name: "w_addr", Offset: 0x00, Width: 4, Access: csr.W}
	WLength = csr.Field{Name: "w_length", Offset: 0x04, Width: 4, Access: csr.W}
	WStart  = csr.Field{Name: "w_start", Offset: 0x08, Width: 1, Access: csr.W}
	WBusy   = csr.Field{Name: "w_busy", Offset: 0x09, Width: 1, Access: csr.R}
	RAddr   = csr.Field{Name: "r_addr", Offset: 0x0C, Width: 4, Access: csr.W}
	RLength = csr.Field{Name: "r_length", Offset: 0x10, Width: 4, Access: csr.W}
	RStart  = csr.Field{Name: "r_start", Offset: 0x14, Width: 1, Access: csr.W}
	RBusy   = csr.Field{Name: "r_busy", Offset: 0x15, Width: 1, Access: csr.R}
	Ver     = csr.Field{Name: "version", Offset: 0x1C, Width: 4, Access: csr.R}
)
