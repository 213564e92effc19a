package conf_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"minimalmon/internal/conf"
)

var _ = Describe("LoadConfig", func() {
	var path string

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), "config.toml")
	})

	It("uses the defaults without writing a file when the file is missing", func() {
		Expect(conf.LoadConfig(path)).To(Succeed())
		_, err := os.Stat(path)
		Expect(os.IsNotExist(err)).To(BeTrue())

		Expect(conf.Read()).To(Equal(conf.Default()))
		Expect(conf.GetIntervalIndex()).To(Equal(1))
		Expect(conf.GetScheduler().Command).To(Equal("systemctl"))
		Expect(conf.GetScheduler().Skip).To(Equal(7))
		Expect(conf.GetScheduler().Take).To(Equal(10))

		Expect(conf.LoadConfig(path)).To(Succeed())
		Expect(conf.Read()).To(Equal(conf.Default()))
		Expect(filepath.Dir(path)).To(BeADirectory())
		entries, err := os.ReadDir(filepath.Dir(path))
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(BeEmpty())
	})

	It("resets to the defaults when a later path is missing", func() {
		Expect(os.WriteFile(path, []byte("IntervalIndex = 3"), 0644)).To(Succeed())
		Expect(conf.LoadConfig(path)).To(Succeed())
		Expect(conf.GetIntervalIndex()).To(Equal(3))

		Expect(conf.LoadConfig(filepath.Join(filepath.Dir(path), "missing.toml"))).To(Succeed())
		Expect(conf.GetIntervalIndex()).To(Equal(1))
	})

	It("overrides only the keys present in the file", func() {
		content := `
IntervalIndex = 3
CPUWindow = "500ms"

[Scheduler]
Command = "launchctl"
Args = ["list"]

[Web]
Enabled = true
Addr = "127.0.0.1:9090"
`
		Expect(os.WriteFile(path, []byte(content), 0644)).To(Succeed())
		Expect(conf.LoadConfig(path)).To(Succeed())

		Expect(conf.GetIntervalIndex()).To(Equal(3))
		window, err := conf.GetCPUWindow()
		Expect(err).NotTo(HaveOccurred())
		Expect(window).To(Equal(500 * time.Millisecond))

		sched := conf.GetScheduler()
		Expect(sched.Command).To(Equal("launchctl"))
		Expect(sched.Args).To(Equal([]string{"list"}))
		Expect(sched.Skip).To(Equal(7))

		Expect(conf.GetWeb()).To(Equal(conf.Web{Enabled: true, Addr: "127.0.0.1:9090", RootPath: "web"}))
		Expect(conf.GetDisplay().Terminal).To(BeTrue())
		Expect(conf.GetLog().Level).To(Equal("info"))
	})

	It("fails on malformed TOML", func() {
		Expect(os.WriteFile(path, []byte("IntervalIndex = ["), 0644)).To(Succeed())
		Expect(conf.LoadConfig(path)).To(MatchError(ContainSubstring("failed to load config")))
	})

	It("reports an invalid CPU window", func() {
		Expect(os.WriteFile(path, []byte(`CPUWindow = "soon"`), 0644)).To(Succeed())
		Expect(conf.LoadConfig(path)).To(Succeed())

		_, err := conf.GetCPUWindow()
		Expect(err).To(MatchError(ContainSubstring("invalid CPUWindow")))
	})

	It("round-trips a written config", func() {
		Expect(conf.LoadConfig(path)).To(Succeed())

		next := conf.Read()
		next.IntervalIndex = 0
		next.Display.ClearScreen = false
		Expect(conf.Write(next)).To(Succeed())

		Expect(conf.Update()).To(Succeed())
		Expect(conf.GetIntervalIndex()).To(Equal(0))
		Expect(conf.GetDisplay().ClearScreen).To(BeFalse())
	})

	It("returns copies that callers cannot mutate", func() {
		Expect(conf.LoadConfig(path)).To(Succeed())

		sched := conf.GetScheduler()
		sched.Args[0] = "mutated"
		Expect(conf.GetScheduler().Args[0]).To(Equal("status"))
	})
})
