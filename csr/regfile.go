package csr

// RegFile is a passive register file. It stores what is written and returns
// it on reads, with no side effects.
type RegFile struct {
	regs map[uint32]uint32
}

// NewRegFile creates an empty register file.
func NewRegFile() *RegFile {
	return &RegFile{
		regs: make(map[uint32]uint32),
	}
}

// ReadReg returns the last value written at addr, or 0.
func (r *RegFile) ReadReg(addr uint32, width int) uint32 {
	return r.regs[addr] & Field{Width: width}.Mask()
}

// WriteReg stores value at addr.
func (r *RegFile) WriteReg(addr uint32, width int, value uint32) {
	r.regs[addr] = value & Field{Width: width}.Mask()
}

// Preload sets a register without going through WriteReg. It is used to
// model values driven by hardware, such as version registers.
func (r *RegFile) Preload(addr uint32, value uint32) {
	r.regs[addr] = value
}
