package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"minimalmon/internal/refresh"
	"minimalmon/internal/system"
)

type stubHost struct{}

func (stubHost) CPU(context.Context) (*system.CPUUsage, error) {
	return &system.CPUUsage{Model: "stub", Cores: 2, Percent: 3}, nil
}

func (stubHost) Memory(context.Context) (*system.MemoryUsage, error) {
	return &system.MemoryUsage{Total: 8 << 30, Used: 2 << 30, Free: 6 << 30}, nil
}

func (stubHost) Partitions(context.Context) ([]system.Partition, error) {
	return []system.Partition{{Device: "/dev/vda1", Mountpoint: "/"}}, nil
}

func (stubHost) DiskUsage(context.Context, string) (*system.DiskUsage, error) {
	return &system.DiskUsage{}, nil
}

func (stubHost) ProcessNames(context.Context) ([]string, error) {
	return []string{"init", "minimalmon"}, nil
}

var _ = Describe("minimalmon command", func() {
	var (
		dir     string
		cfgPath string
		restore func(time.Duration) system.Host
	)

	writeConfig := func(content string) {
		Expect(os.WriteFile(cfgPath, []byte(content), 0644)).To(Succeed())
	}

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		cfgPath = filepath.Join(dir, "config.toml")

		restore = newHost
		newHost = func(time.Duration) system.Host { return stubHost{} }
		DeferCleanup(func() { newHost = restore })
	})

	Describe("once", func() {
		It("prints exactly one rendered view", func() {
			writeConfig(`
[Scheduler]
Command = "/nonexistent/minimalmon-status"
`)
			var out bytes.Buffer
			cmd := newRootCmd(&rootOptions{})
			cmd.SetOut(&out)
			cmd.SetArgs([]string{"once", "--config", cfgPath})

			Expect(cmd.Execute()).To(Succeed())
			Expect(strings.Count(out.String(), "Процессор: ")).To(Equal(1))
			Expect(out.String()).To(HavePrefix("Процессор: stub, Ядер: 2, Загрузка: 3.0%\n"))
			Expect(out.String()).To(ContainSubstring("Работающие процессы: 2\ninit\nminimalmon\n"))
			Expect(out.String()).To(ContainSubstring("Задачи планировщика: Информация недоступна"))
			Expect(out.String()).NotTo(ContainSubstring("\033[2J"))
		})

		It("does not create a config file", func() {
			cmd := newRootCmd(&rootOptions{})
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetArgs([]string{"once", "--config", cfgPath})

			Expect(cmd.Execute()).To(Succeed())
			_, err := os.Stat(cfgPath)
			Expect(os.IsNotExist(err)).To(BeTrue())
		})

		It("rejects a negative scheduler window", func() {
			writeConfig(`
[Scheduler]
Command = "systemctl"
Skip = -1
`)
			cmd := newRootCmd(&rootOptions{})
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs([]string{"once", "--config", cfgPath})

			Expect(cmd.Execute()).To(MatchError(system.ErrStatusWindow))
		})
	})

	Describe("building the monitor", func() {
		build := func(args ...string) (*monitor, error) {
			opts := &rootOptions{}
			cmd := newRootCmd(opts)
			cmd.SetOut(&bytes.Buffer{})
			Expect(cmd.ParseFlags(append([]string{"--config", cfgPath}, args...))).To(Succeed())
			Expect(opts.load()).To(Succeed())
			return opts.buildMonitor(cmd)
		}

		It("starts at the configured interval", func() {
			writeConfig("IntervalIndex = 3\n")
			m, err := build()
			Expect(err).NotTo(HaveOccurred())
			Expect(m.driver.Interval()).To(Equal(30 * time.Second))
		})

		It("lets --interval override the config", func() {
			writeConfig("IntervalIndex = 3\n")
			m, err := build("--interval", "0")
			Expect(err).NotTo(HaveOccurred())
			Expect(m.driver.Index()).To(Equal(0))
			Expect(m.driver.Interval()).To(Equal(1 * time.Second))
		})

		It("rejects an interval outside the selector", func() {
			_, err := build("--interval", "7")
			Expect(err).To(MatchError(refresh.ErrInvalidInterval))
		})

		It("fails when no display surface is enabled", func() {
			writeConfig(`
[Display]
Terminal = false
`)
			_, err := build()
			Expect(err).To(MatchError("no display surface enabled"))
		})

		It("fails when the terminal is disabled by flag and the web is off", func() {
			_, err := build("--no-terminal")
			Expect(err).To(MatchError("no display surface enabled"))
		})
	})
})
