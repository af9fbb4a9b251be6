package verify

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sigurn/crc8"

	valgen "github.com/sarchlab/dmatb/util"
)

var streamCRC8 = crc8.MakeTable(crc8.CRC8)

// StreamCRC returns the CRC-8 of words serialised as little-endian bytes.
func StreamCRC(words []uint32) uint8 {
	var buf [4]byte

	sum := crc8.Init(streamCRC8)
	for _, w := range words {
		binary.LittleEndian.PutUint32(buf[:], w)
		sum = crc8.Update(sum, buf[:], streamCRC8)
	}

	return crc8.Complete(sum, streamCRC8)
}

// VerificationReport represents a complete verification report
type VerificationReport struct {
	Config Config
	Result *Result
	Err    error
	Cycles uint64

	// SimTime is Cycles at the platform frequency.
	SimTime time.Duration

	ExpectedCRC uint8
	ReceivedCRC uint8
}

// NewReport summarises a run. cycles is the simulated time it took, or 0 on
// hardware.
func NewReport(cfg Config, res *Result, err error, cycles uint64) *VerificationReport {
	r := &VerificationReport{
		Config: cfg,
		Result: res,
		Err:    err,
		Cycles: cycles,
	}

	expected := valgen.Take(valgen.MakeIncreasingGen(0), cfg.WordCount)
	r.ExpectedCRC = StreamCRC(expected)

	if res != nil {
		r.ReceivedCRC = StreamCRC(res.Received)
	}

	return r
}

// ExitCode returns the process exit code of the reported run.
func (r *VerificationReport) ExitCode() int {
	return ExitCode(r.Result, r.Err)
}

// WriteReport writes a formatted report to a writer
func (r *VerificationReport) WriteReport(w io.Writer) {
	separator := strings.Repeat("=", 60)

	fmt.Fprintln(w, separator)
	fmt.Fprintln(w, "DMA ROUND-TRIP VERIFICATION REPORT")
	fmt.Fprintln(w, separator)

	summary := table.NewWriter()
	summary.SetTitle("Run")
	summary.AppendHeader(table.Row{"Item", "Value"})
	summary.AppendRow(table.Row{"Words", r.Config.WordCount})
	summary.AppendRow(table.Row{"Memory offset",
		fmt.Sprintf("0x%08x", r.Config.MemoryOffset)})

	if res := r.Result; res != nil {
		summary.AppendRow(table.Row{"DMA version", fmt.Sprintf(
			"%s (major %d, minor %d)",
			res.Version, res.Version.Major, res.Version.Minor)})
		summary.AppendRow(table.Row{"Sink pending polls", res.PendingPolls})
		summary.AppendRow(table.Row{"Write busy polls", res.WriteBusyPolls})
		summary.AppendRow(table.Row{"Read busy polls", res.ReadBusyPolls})
		summary.AppendRow(table.Row{"Words drained", len(res.Received)})
	}

	if r.Cycles > 0 {
		summary.AppendRow(table.Row{"Simulated cycles", r.Cycles})
	}

	if r.SimTime > 0 {
		summary.AppendRow(table.Row{"Simulated time", r.SimTime.String()})
	}

	summary.AppendRow(table.Row{"Expected CRC-8",
		fmt.Sprintf("0x%02x", r.ExpectedCRC)})
	summary.AppendRow(table.Row{"Received CRC-8",
		fmt.Sprintf("0x%02x", r.ReceivedCRC)})

	fmt.Fprintln(w, summary.Render())
	fmt.Fprintln(w)

	if r.Result != nil && len(r.Result.Mismatches) > 0 {
		mismatches := table.NewWriter()
		mismatches.SetTitle(fmt.Sprintf("Mismatches (%d)",
			len(r.Result.Mismatches)))
		mismatches.AppendHeader(table.Row{"Index", "Expected", "Got"})

		for _, m := range r.Result.Mismatches {
			mismatches.AppendRow(table.Row{m.Index, m.Expected, m.Got})
		}

		fmt.Fprintln(w, mismatches.Render())
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, separator)
	switch {
	case r.Err != nil || r.Result == nil:
		fmt.Fprintf(w, "ABORTED: %v\n", r.Err)
	case r.Result.Failed():
		fmt.Fprintf(w, "FAILED: %d mismatched words\n", r.Result.Code())
	default:
		fmt.Fprintln(w, "PASSED")
	}
	fmt.Fprintf(w, "Exit code: %d\n", r.ExitCode())
	fmt.Fprintln(w, separator)
}

// SaveReportToFile saves the report to a file
func (r *VerificationReport) SaveReportToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	r.WriteReport(file)

	return nil
}
