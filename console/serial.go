package console

import (
	"fmt"
	"io"

	"github.com/cesanta/go-serial/serial"
)

// SerialOptions selects the UART used as console.
type SerialOptions struct {
	Port     string
	BaudRate uint
	HWFC     bool
}

// Serial reports over a UART.
type Serial struct {
	*Writer

	port io.ReadWriteCloser
}

// OpenSerial opens the UART. The caller must Close it.
func OpenSerial(opts SerialOptions) (*Serial, error) {
	baud := opts.BaudRate
	if baud == 0 {
		baud = 115200
	}

	port, err := serial.Open(serial.OpenOptions{
		PortName:            opts.Port,
		BaudRate:            baud,
		HardwareFlowControl: opts.HWFC,
		DataBits:            8,
		ParityMode:          serial.PARITY_NONE,
		StopBits:            1,
		MinimumReadSize:     1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", opts.Port, err)
	}

	return &Serial{
		Writer: NewWriter(port),
		port:   port,
	}, nil
}

// Close closes the UART.
func (s *Serial) Close() error {
	return s.port.Close()
}
