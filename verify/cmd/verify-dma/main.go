// Command verify-dma runs the DMA round-trip test on the simulated platform
// and exits with the test result code.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/sarchlab/akita/v4/sim"
	flag "github.com/spf13/pflag"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/dmatb/config"
	"github.com/sarchlab/dmatb/console"
	"github.com/sarchlab/dmatb/csr"
	"github.com/sarchlab/dmatb/verify"
)

var (
	configFile = flag.String("config", "", "Testbench YAML file")
	words      = flag.Uint32("words", 256, "Number of words in the round trip")
	offset     = flag.Uint32("offset", 0, "DMA memory byte offset")
	maxPolls   = flag.Int("max-polls", 0, "Give up a busy-poll after this many reads, 0 to never give up")
	timeout    = flag.Duration("timeout", 0, "Give up a busy-poll after this long, 0 to never give up")
	reportFile = flag.String("report", "", "Write a verification report to this file")
	traceLog   = flag.String("trace-log", "", "Write a JSON trace of register accesses to this file")
	busTrace   = flag.String("bus-trace", "", "Dump every register transaction to this file")
	serialPort = flag.String("serial", "", "Also send console output to this serial port")
	baudRate   = flag.Uint("baud", 115200, "Serial port baud rate")
	hwfc       = flag.Bool("hw-flow-control", false, "Enable serial hardware flow control")
)

func loadTestbench() (config.Testbench, error) {
	tb := config.DefaultTestbench()
	if *configFile != "" {
		var err error
		if tb, err = config.LoadTestbench(*configFile); err != nil {
			return tb, err
		}
	}

	if flag.CommandLine.Changed("words") {
		tb.Words = *words
	}
	if flag.CommandLine.Changed("offset") {
		tb.MemoryOffset = *offset
	}
	if flag.CommandLine.Changed("max-polls") {
		tb.Poll.MaxPolls = *maxPolls
	}
	if flag.CommandLine.Changed("timeout") {
		tb.Poll.Timeout = *timeout
	}
	if flag.CommandLine.Changed("report") {
		tb.Report = *reportFile
	}

	return tb, tb.Validate()
}

func setupLogging() {
	if *traceLog == "" {
		slog.SetDefault(slog.New(console.NewLogHandler(os.Stderr, false)))
		return
	}

	f, err := os.Create(*traceLog)
	if err != nil {
		panic(err)
	}
	atexit.Register(func() { f.Close() })

	slog.SetDefault(slog.New(console.NewLogHandler(f, true)))
}

func setupConsole() console.Reporter {
	out := console.Multi{console.NewWriter(os.Stdout)}

	if *serialPort == "" {
		return out
	}

	s, err := console.OpenSerial(console.SerialOptions{
		Port:     *serialPort,
		BaudRate: *baudRate,
		HWFC:     *hwfc,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}
	atexit.Register(func() { s.Close() })

	return append(out, s)
}

func main() {
	flag.Parse()

	tb, err := loadTestbench()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}

	setupLogging()
	out := setupConsole()

	platform := tb.PlatformBuilder().Build("Platform")

	var acc csr.Accessor = platform.Accessor()
	var rec *csr.Recorder
	if *busTrace != "" {
		rec = csr.NewRecorder(acc)
		acc = rec
	}

	// Ctrl-C stops a poll that has no budget.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	atexit.Register(stop)

	periphs := config.Bind(acc)
	driver := verify.NewDriver(
		periphs.Source, periphs.Sink, periphs.DMA, out, tb.VerifyConfig())

	start := time.Now()
	res, err := driver.Run(ctx)
	console.Reportf(out, "Simulated %d cycles, %s at %.0f MHz",
		platform.Bus.Cycles(), platform.SimulatedTime(),
		float64(platform.Freq/sim.MHz))
	slog.Info("Run finished",
		"Cycles", platform.Bus.Cycles(),
		"SimTime", platform.SimulatedTime().String(),
		"Elapsed", time.Since(start).String(),
	)

	if rec != nil {
		dumpBusTrace(rec, *busTrace)
	}

	report := verify.NewReport(tb.VerifyConfig(), res, err, platform.Bus.Cycles())
	report.SimTime = platform.SimulatedTime()
	if tb.Report != "" {
		if err := report.SaveReportToFile(tb.Report); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}

	atexit.Exit(report.ExitCode())
}

func dumpBusTrace(rec *csr.Recorder, path string) {
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	defer f.Close()

	if err := rec.Dump(f); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}
