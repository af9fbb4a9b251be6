// Package verify runs the DMA round-trip test.
//
// The test has two phases separated by DMA memory:
//
//  1. Write phase: the stream source emits the words 0..N-1 pushed through
//     its data register, the stream sink accepts them for DMA, and a DMA
//     write transfer moves them to memory.
//  2. Read phase: the roles swap. A DMA read transfer moves the words back
//     into the stream source, which sends them to the stream sink where the
//     driver pops them through the data register.
//
// The drained words must be exactly 0..N-1. Every position is checked, so a
// single corrupted word yields exactly one Mismatch.
//
// # Usage Example
//
//	p := config.MakePlatformBuilder().Build("Platform")
//	periphs := config.Bind(p.Accessor())
//	d := verify.NewDriver(periphs.Source, periphs.Sink, periphs.DMA,
//	    console.NewWriter(os.Stdout), verify.DefaultConfig())
//	res, err := d.Run(ctx)
//	os.Exit(verify.ExitCode(res, err))
package verify

import (
	"errors"
	"fmt"

	"github.com/sarchlab/dmatb/dma"
	"github.com/sarchlab/dmatb/poll"
)

// ErrPrecondition is returned when the DMA engine is not idle before the
// test starts.
var ErrPrecondition = errors.New("precondition failed")

// MaxExitCode is the largest code ExitCode returns.
const MaxExitCode = 255

// Config holds the parameters of a run.
type Config struct {
	WordCount    uint32
	MemoryOffset uint32

	// SettleReads is the number of version reads used as a settle delay
	// before the test starts.
	SettleReads int

	// PollBudget bounds every busy-poll. The zero value never gives up.
	PollBudget poll.Budget
}

// DefaultConfig returns a 256-word run at memory offset 0.
func DefaultConfig() Config {
	return Config{
		WordCount:   256,
		SettleReads: 20,
	}
}

// A Mismatch is a drained word that differs from its position.
type Mismatch struct {
	Index    uint32
	Expected uint32
	Got      uint32
}

func (m Mismatch) String() string {
	return fmt.Sprintf("expected %d, got %d", m.Expected, m.Got)
}

// Result is the outcome of a run.
type Result struct {
	WordCount  uint32
	Version    dma.Version
	RawVersion uint32

	Received   []uint32
	Mismatches []Mismatch

	PendingPolls   int
	WriteBusyPolls int
	ReadBusyPolls  int
}

// Failed reports whether any word mismatched.
func (r *Result) Failed() bool {
	return len(r.Mismatches) > 0
}

// Code returns the number of mismatches.
func (r *Result) Code() int {
	return len(r.Mismatches)
}

// ExitCode maps the outcome of Driver.Run to a process exit code: 0 on
// pass, the mismatch count on data errors and 1 if the run was aborted.
// Counts above MaxExitCode are clamped.
//
// An aborted run and a run with exactly one mismatch both exit with 1, as
// the firmware testbench does. Callers that must tell them apart check the
// error from Run, or Result.Failed, instead of the code.
func ExitCode(res *Result, err error) int {
	if err != nil {
		return 1
	}

	if res == nil {
		return 1
	}

	return min(res.Code(), MaxExitCode)
}
