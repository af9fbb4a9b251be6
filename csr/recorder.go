package csr

import (
	"fmt"
	"io"
)

// A Transaction is one recorded bus access.
type Transaction struct {
	Write bool
	Addr  uint32
	Width int
	Value uint32
}

func (t Transaction) String() string {
	op := "R"
	if t.Write {
		op = "W"
	}

	return fmt.Sprintf("%s 0x%04x/%d 0x%08x", op, t.Addr, t.Width, t.Value)
}

// Recorder wraps an Accessor and keeps every access in program order.
type Recorder struct {
	next Accessor
	log  []Transaction
}

// NewRecorder creates a Recorder that forwards to next.
func NewRecorder(next Accessor) *Recorder {
	return &Recorder{next: next}
}

// ReadReg forwards the read and records the returned value.
func (r *Recorder) ReadReg(addr uint32, width int) uint32 {
	v := r.next.ReadReg(addr, width)
	r.log = append(r.log, Transaction{Addr: addr, Width: width, Value: v})

	return v
}

// WriteReg records the write and forwards it.
func (r *Recorder) WriteReg(addr uint32, width int, value uint32) {
	r.log = append(r.log,
		Transaction{Write: true, Addr: addr, Width: width, Value: value})
	r.next.WriteReg(addr, width, value)
}

// Transactions returns the recorded accesses.
func (r *Recorder) Transactions() []Transaction {
	return r.log
}

// Writes returns only the recorded writes.
func (r *Recorder) Writes() []Transaction {
	var writes []Transaction
	for _, t := range r.log {
		if t.Write {
			writes = append(writes, t)
		}
	}

	return writes
}

// Reset drops the recorded accesses.
func (r *Recorder) Reset() {
	r.log = nil
}

// Dump writes one line per recorded access.
func (r *Recorder) Dump(w io.Writer) error {
	for _, t := range r.log {
		if _, err := fmt.Fprintln(w, t); err != nil {
			return fmt.Errorf("failed to dump bus trace: %w", err)
		}
	}

	return nil
}
