// Package csr provides access to the control/status registers of
// memory-mapped peripherals through an injected Accessor.
package csr

import "fmt"

// Access tells whether a field can be read, written, or both.
type Access int

const (
	R Access = 1 << iota
	W

	RW = R | W
)

// String returns the access mode as used in register tables.
func (a Access) String() string {
	switch a {
	case R:
		return "R"
	case W:
		return "W"
	case RW:
		return "RW"
	default:
		return fmt.Sprintf("Access(%d)", int(a))
	}
}

// A Field is one CSR of a peripheral. Offset is the byte offset from the
// peripheral base and Width is the field width in bytes.
type Field struct {
	Name   string
	Offset uint32
	Width  int
	Access Access
}

// Mask returns the bits covered by the field.
func (f Field) Mask() uint32 {
	if f.Width >= 4 {
		return 0xffff_ffff
	}

	return 1<<(8*uint(f.Width)) - 1
}

// Accessor reads and writes registers on a bus. Addresses are absolute and
// width is given in bytes. Writes are visible immediately.
type Accessor interface {
	ReadReg(addr uint32, width int) uint32
	WriteReg(addr uint32, width int, value uint32)
}

// Handle binds a peripheral base address to an Accessor.
type Handle struct {
	name string
	base uint32
	acc  Accessor
}

// Bind creates the handle of the peripheral at base.
func Bind(acc Accessor, name string, base uint32) Handle {
	return Handle{
		name: name,
		base: base,
		acc:  acc,
	}
}

// Name returns the peripheral name given at binding.
func (h Handle) Name() string {
	return h.name
}

// Base returns the peripheral base address.
func (h Handle) Base() uint32 {
	return h.base
}

// Addr returns the absolute address of the field.
func (h Handle) Addr(f Field) uint32 {
	return h.base + f.Offset
}

// Read returns the value of the field.
func (h Handle) Read(f Field) uint32 {
	v := h.acc.ReadReg(h.Addr(f), f.Width) & f.Mask()

	Trace("CSR",
		"Behavior", "Read",
		"Periph", h.name,
		"Field", f.Name,
		"Addr", h.Addr(f),
		"Value", v,
	)

	return v
}

// Write stores value into the field. Bits above the field width are
// dropped.
func (h Handle) Write(f Field, value uint32) {
	value &= f.Mask()

	Trace("CSR",
		"Behavior", "Write",
		"Periph", h.name,
		"Field", f.Name,
		"Addr", h.Addr(f),
		"Value", value,
	)

	h.acc.WriteReg(h.Addr(f), f.Width, value)
}
