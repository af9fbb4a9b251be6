package config_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/dmatb/axis"
	"github.com/sarchlab/dmatb/config"
	"github.com/sarchlab/dmatb/poll"
	"github.com/sarchlab/dmatb/verify"
)

var _ = Describe("PlatformBuilder", func() {
	It("should map the peripherals at their windows", func() {
		p := config.MakePlatformBuilder().
			WithEngine(sim.NewSerialEngine()).
			WithVersion(0x00020001).
			Build("Platform")
		periphs := config.Bind(p.Accessor())

		Expect(periphs.DMA.RawVersion()).To(Equal(uint32(0x00020001)))
		Expect(p.Bus.ReadReg(config.SinkBase+axis.InVersion.Offset, 4)).
			To(Equal(uint32(0x00020001)))
		Expect(p.Bus.ReadReg(config.SourceBase+axis.OutVersion.Offset, 4)).
			To(Equal(uint32(0x00020001)))
		Expect(periphs.DMA.IsWriteBusy()).To(BeFalse())
		Expect(periphs.DMA.IsReadBusy()).To(BeFalse())
	})

	It("should connect the source to the sink", func() {
		p := config.MakePlatformBuilder().Build("Platform")
		periphs := config.Bind(p.Accessor())

		periphs.Sink.Reset()
		periphs.Sink.Configure(axis.ModeEmit, 2)
		periphs.Sink.Enable()
		periphs.Source.Reset()
		periphs.Source.Configure(axis.ModeEmit, 2)
		periphs.Source.Enable()
		periphs.Source.Push(7)
		periphs.Source.Push(8)

		Expect(periphs.Sink.PendingCount()).To(Equal(uint32(2)))
		Expect(periphs.Sink.Pop()).To(Equal(uint32(7)))
		Expect(periphs.Sink.Pop()).To(Equal(uint32(8)))
	})

	It("should scale simulated time with the frequency", func() {
		slow := config.MakePlatformBuilder().WithFreq(1 * sim.MHz).Build("Slow")
		fast := config.MakePlatformBuilder().WithFreq(1 * sim.GHz).Build("Fast")

		for _, p := range []*config.Platform{slow, fast} {
			dma := config.Bind(p.Accessor()).DMA
			for i := 0; i < 1000; i++ {
				dma.RawVersion()
			}
		}

		Expect(slow.Bus.Cycles()).To(Equal(fast.Bus.Cycles()))
		Expect(float64(slow.SimulatedTime())).
			To(BeNumerically("~", float64(time.Millisecond), 1))
		Expect(float64(fast.SimulatedTime())).
			To(BeNumerically("~", float64(time.Microsecond), 1))
	})

	It("should size the RAM", func() {
		p := config.MakePlatformBuilder().WithRAMSize(1024).Build("Platform")

		Expect(p.RAM.Capacity()).To(Equal(uint64(1024)))
		Expect(p.String()).To(ContainSubstring("Platform"))
	})
})

var _ = Describe("Testbench", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	write := func(content string) string {
		path := filepath.Join(dir, "tb.yaml")
		Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())
		return path
	}

	It("should load a full file", func() {
		tb, err := config.LoadTestbench(write(`
words: 128
memory_offset: 0x100
settle_reads: 5
poll:
  max_polls: 5000
  timeout: 2s
platform:
  freq_mhz: 50
  fifo_depth: 256
  ram_size: 4096
  version: 0x00010004
report: out.txt
`))

		Expect(err).NotTo(HaveOccurred())
		Expect(tb.Report).To(Equal("out.txt"))
		Expect(tb.Platform.Version).To(Equal(uint32(0x00010004)))
		Expect(tb.VerifyConfig()).To(Equal(verify.Config{
			WordCount:    128,
			MemoryOffset: 0x100,
			SettleReads:  5,
			PollBudget: poll.Budget{
				MaxPolls: 5000,
				Timeout:  2 * time.Second,
			},
		}))
	})

	It("should keep defaults for missing keys", func() {
		tb, err := config.LoadTestbench(write("words: 16\n"))

		Expect(err).NotTo(HaveOccurred())
		Expect(tb.Words).To(Equal(uint32(16)))
		Expect(tb.SettleReads).To(Equal(20))
		Expect(tb.Platform).To(Equal(config.DefaultTestbench().Platform))
	})

	It("should build the described platform", func() {
		tb, err := config.LoadTestbench(write(
			"platform:\n  freq_mhz: 50\n  ram_size: 2048\n  version: 0x00030002\n"))
		Expect(err).NotTo(HaveOccurred())

		p := tb.PlatformBuilder().Build("Platform")

		Expect(p.Freq).To(Equal(50 * sim.MHz))
		Expect(p.RAM.Capacity()).To(Equal(uint64(2048)))
		Expect(config.Bind(p.Accessor()).DMA.Version().Minor).
			To(Equal(uint32(2)))
	})

	It("should reject a transfer that does not fit the FIFO", func() {
		_, err := config.LoadTestbench(write(
			"words: 64\nplatform:\n  fifo_depth: 32\n"))

		Expect(err).To(MatchError(config.ErrInvalid))
	})

	It("should reject a transfer beyond RAM", func() {
		_, err := config.LoadTestbench(write(
			"words: 16\nmemory_offset: 0xfff0\n"))

		Expect(err).To(MatchError(config.ErrInvalid))
	})

	It("should reject an unaligned offset", func() {
		_, err := config.LoadTestbench(write("memory_offset: 2\n"))

		Expect(err).To(MatchError(config.ErrInvalid))
	})

	It("should report malformed YAML", func() {
		_, err := config.LoadTestbench(write("words: [\n"))

		Expect(err).To(HaveOccurred())
		Expect(err).NotTo(MatchError(config.ErrInvalid))
	})

	It("should report a missing file", func() {
		_, err := config.LoadTestbench(filepath.Join(dir, "none.yaml"))

		Expect(err).To(MatchError(os.ErrNotExist))
	})
})
