package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sarchlab/akita/v4/sim"
	"gopkg.in/yaml.v3"

	"github.com/sarchlab/dmatb/poll"
	"github.com/sarchlab/dmatb/verify"
)

// ErrInvalid is returned for testbench files that fail validation.
var ErrInvalid = errors.New("invalid testbench config")

// PollConfig bounds every busy-poll of a run.
type PollConfig struct {
	MaxPolls int           `yaml:"max_polls"`
	Timeout  time.Duration `yaml:"timeout"`
}

// PlatformConfig describes the simulated platform.
type PlatformConfig struct {
	FreqMHz   float64 `yaml:"freq_mhz"`
	FIFODepth int     `yaml:"fifo_depth"`
	RAMSize   uint64  `yaml:"ram_size"`
	Version   uint32  `yaml:"version"`
}

// Testbench is the content of a testbench YAML file.
type Testbench struct {
	Words        uint32         `yaml:"words"`
	MemoryOffset uint32         `yaml:"memory_offset"`
	SettleReads  int            `yaml:"settle_reads"`
	Poll         PollConfig     `yaml:"poll"`
	Platform     PlatformConfig `yaml:"platform"`
	Report       string         `yaml:"report"`
}

// DefaultTestbench returns the parameters used when no file is given.
func DefaultTestbench() Testbench {
	return Testbench{
		Words:       256,
		SettleReads: 20,
		Platform: PlatformConfig{
			FreqMHz:   100,
			FIFODepth: 1024,
			RAMSize:   64 * 1024,
			Version:   0x00010003,
		},
	}
}

// LoadTestbench reads a testbench file. Keys missing from the file keep
// their default values.
func LoadTestbench(path string) (Testbench, error) {
	tb := DefaultTestbench()

	data, err := os.ReadFile(path)
	if err != nil {
		return tb, fmt.Errorf("failed to read testbench config: %w", err)
	}

	if err := yaml.Unmarshal(data, &tb); err != nil {
		return tb, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := tb.Validate(); err != nil {
		return tb, err
	}

	return tb, nil
}

// Validate checks that the testbench can run on the described platform.
func (tb Testbench) Validate() error {
	if tb.MemoryOffset%4 != 0 {
		return fmt.Errorf("%w: memory_offset 0x%x is not word aligned",
			ErrInvalid, tb.MemoryOffset)
	}

	if tb.SettleReads < 1 {
		return fmt.Errorf("%w: settle_reads must be at least 1", ErrInvalid)
	}

	if tb.Poll.MaxPolls < 0 || tb.Poll.Timeout < 0 {
		return fmt.Errorf("%w: poll limits must not be negative", ErrInvalid)
	}

	p := tb.Platform
	if p.FreqMHz <= 0 {
		return fmt.Errorf("%w: freq_mhz must be positive", ErrInvalid)
	}

	if p.FIFODepth < 1 {
		return fmt.Errorf("%w: fifo_depth must be at least 1", ErrInvalid)
	}

	if uint64(tb.Words) > uint64(p.FIFODepth) {
		return fmt.Errorf("%w: %d words do not fit a %d word FIFO",
			ErrInvalid, tb.Words, p.FIFODepth)
	}

	end := uint64(tb.MemoryOffset) + 4*uint64(tb.Words)
	if end > p.RAMSize {
		return fmt.Errorf("%w: transfer ends at 0x%x beyond %d bytes of RAM",
			ErrInvalid, end, p.RAMSize)
	}

	return nil
}

// VerifyConfig returns the driver parameters.
func (tb Testbench) VerifyConfig() verify.Config {
	return verify.Config{
		WordCount:    tb.Words,
		MemoryOffset: tb.MemoryOffset,
		SettleReads:  tb.SettleReads,
		PollBudget: poll.Budget{
			MaxPolls: tb.Poll.MaxPolls,
			Timeout:  tb.Poll.Timeout,
		},
	}
}

// PlatformBuilder returns a builder for the described platform.
func (tb Testbench) PlatformBuilder() PlatformBuilder {
	return MakePlatformBuilder().
		WithFreq(sim.Freq(tb.Platform.FreqMHz) * sim.MHz).
		WithFIFODepth(tb.Platform.FIFODepth).
		WithRAMSize(tb.Platform.RAMSize).
		WithVersion(tb.Platform.Version)
}
