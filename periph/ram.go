package periph

import (
	"encoding/binary"
	"fmt"

	"github.com/sarchlab/akita/v4/mem/mem"
)

// RAM is the memory the DMA engine reads and writes. Words are stored
// little-endian.
type RAM struct {
	capacity uint64
	storage  *mem.Storage
}

// NewRAM creates a RAM of capacity bytes.
func NewRAM(capacity uint64) *RAM {
	return &RAM{
		capacity: capacity,
		storage:  mem.NewStorage(capacity),
	}
}

// Capacity returns the size in bytes.
func (r *RAM) Capacity() uint64 {
	return r.capacity
}

// ReadWord reads the word at byte address addr.
func (r *RAM) ReadWord(addr uint32) (uint32, error) {
	if err := r.checkRange(addr); err != nil {
		return 0, err
	}

	data, err := r.storage.Read(uint64(addr), 4)
	if err != nil {
		return 0, fmt.Errorf("failed to read 0x%x: %w", addr, err)
	}

	return binary.LittleEndian.Uint32(data), nil
}

// WriteWord writes v at byte address addr.
func (r *RAM) WriteWord(addr, v uint32) error {
	if err := r.checkRange(addr); err != nil {
		return err
	}

	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, v)

	if err := r.storage.Write(uint64(addr), data); err != nil {
		return fmt.Errorf("failed to write 0x%x: %w", addr, err)
	}

	return nil
}

// Words reads n consecutive words starting at addr.
func (r *RAM) Words(addr uint32, n int) ([]uint32, error) {
	words := make([]uint32, 0, n)
	for i := 0; i < n; i++ {
		w, err := r.ReadWord(addr + uint32(4*i))
		if err != nil {
			return nil, err
		}
		words = append(words, w)
	}

	return words, nil
}

func (r *RAM) checkRange(addr uint32) error {
	if uint64(addr)+4 > r.capacity {
		return fmt.Errorf("address 0x%x beyond RAM capacity 0x%x",
			addr, r.capacity)
	}

	return nil
}
