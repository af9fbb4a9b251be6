package verify

import (
	"context"
	"fmt"

	"github.com/sarchlab/dmatb/axis"
	"github.com/sarchlab/dmatb/console"
	"github.com/sarchlab/dmatb/csr"
	"github.com/sarchlab/dmatb/dma"
	"github.com/sarchlab/dmatb/poll"
	valgen "github.com/sarchlab/dmatb/util"
)

// Driver sequences the stream and DMA controllers through one round trip.
type Driver struct {
	source *axis.Source
	sink   *axis.Sink
	dma    *dma.Controller
	out    console.Reporter
	cfg    Config
}

// NewDriver creates a driver. out receives the progress and error lines.
func NewDriver(
	source *axis.Source,
	sink *axis.Sink,
	ctrl *dma.Controller,
	out console.Reporter,
	cfg Config,
) *Driver {
	if cfg.SettleReads < 1 {
		cfg.SettleReads = 1
	}

	return &Driver{
		source: source,
		sink:   sink,
		dma:    ctrl,
		out:    out,
		cfg:    cfg,
	}
}

// Config returns the parameters of the driver.
func (d *Driver) Config() Config {
	return d.cfg
}

// Run executes the test. A non-nil error means the run was aborted before
// the drain; data mismatches are reported in the Result only.
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	res := &Result{WordCount: d.cfg.WordCount}

	d.out.Report("IOB DMA testbench")
	d.out.Report("Reset complete")

	d.settle(res)

	if err := d.checkIdle(); err != nil {
		d.out.Report("Error: " + err.Error())
		return res, err
	}

	if err := d.writePhase(ctx, res); err != nil {
		d.out.Report("Error: " + err.Error())
		return res, err
	}

	if err := d.readPhase(ctx, res); err != nil {
		d.out.Report("Error: " + err.Error())
		return res, err
	}

	d.drain(res)

	d.out.Report("DMA test complete.")

	return res, nil
}

func (d *Driver) settle(res *Result) {
	for i := 0; i < d.cfg.SettleReads; i++ {
		res.RawVersion = d.dma.RawVersion()
	}

	res.Version = dma.ParseVersion(res.RawVersion)
	console.Reportf(d.out, "DMA Version is %s (major %d, minor %d)",
		res.Version, res.Version.Major, res.Version.Minor)
}

func (d *Driver) checkIdle() error {
	if d.dma.IsWriteBusy() {
		return fmt.Errorf("%w: DMA write channel busy before start",
			ErrPrecondition)
	}

	if d.dma.IsReadBusy() {
		return fmt.Errorf("%w: DMA read channel busy before start",
			ErrPrecondition)
	}

	return nil
}

func (d *Driver) writePhase(ctx context.Context, res *Result) error {
	n := d.cfg.WordCount

	d.out.Report("Configure stream sink for DMA")
	d.sink.Reset()
	d.sink.Configure(axis.ModeAccept, n)
	d.sink.Enable()

	d.out.Report("Configure stream source for CSR data")
	d.source.Reset()
	d.source.Configure(axis.ModeEmit, n)
	d.source.Enable()

	console.Reportf(d.out, "Write %d words to stream source", n)
	gen := valgen.MakeIncreasingGen(0)
	for i := uint32(0); i < n; i++ {
		d.source.Push(gen())
	}

	polls, err := poll.Until(ctx, d.cfg.PollBudget, func() bool {
		return d.sink.PendingCount() >= d.sink.Expected()
	})
	res.PendingPolls = polls
	if err != nil {
		return fmt.Errorf(
			"waiting for %d words in stream sink (source FIFO %d, sink FIFO %d): %w",
			d.sink.Expected(), d.source.FIFOLevel(), d.sink.FIFOLevel(), err)
	}

	d.out.Report("Start DMA write transfer")
	err = d.dma.StartWriteTransfer(d.cfg.MemoryOffset, n)
	if err != nil {
		return err
	}

	res.WriteBusyPolls, err = d.dma.WaitWrite(ctx, d.cfg.PollBudget)
	if err != nil {
		return fmt.Errorf("waiting for DMA write transfer: %w", err)
	}
	d.out.Report("DMA write transfer done")

	csr.Trace("Verify",
		"Behavior", "WritePhaseDone",
		"PendingPolls", res.PendingPolls,
		"BusyPolls", res.WriteBusyPolls,
	)

	return nil
}

func (d *Driver) readPhase(ctx context.Context, res *Result) error {
	n := d.cfg.WordCount

	d.out.Report("Configure stream sink for CSR data")
	d.sink.Reset()
	d.sink.Configure(axis.ModeEmit, n)
	d.sink.Enable()

	d.out.Report("Configure stream source for DMA")
	d.source.Reset()
	d.source.Configure(axis.ModeAccept, n)
	d.source.Enable()

	d.out.Report("Start DMA read transfer")
	err := d.dma.StartReadTransfer(d.cfg.MemoryOffset, n)
	if err != nil {
		return err
	}

	res.ReadBusyPolls, err = d.dma.WaitRead(ctx, d.cfg.PollBudget)
	if err != nil {
		return fmt.Errorf("waiting for DMA read transfer: %w", err)
	}
	d.out.Report("DMA read transfer done")

	csr.Trace("Verify",
		"Behavior", "ReadPhaseDone",
		"BusyPolls", res.ReadBusyPolls,
	)

	return nil
}

func (d *Driver) drain(res *Result) {
	n := d.cfg.WordCount

	d.out.Report("Read data from stream sink")

	expected := valgen.MakeIncreasingGen(0)
	res.Received = make([]uint32, 0, n)
	for i := uint32(0); i < n; i++ {
		want := expected()
		word := d.sink.Pop()
		res.Received = append(res.Received, word)

		if word != want {
			m := Mismatch{Index: i, Expected: want, Got: word}
			res.Mismatches = append(res.Mismatches, m)
			d.out.Report("Error: " + m.String())
		}
	}
}
