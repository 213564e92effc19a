package system

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// Host is the OS introspection surface the Sampler reads from
type Host interface {
	CPU(ctx context.Context) (*CPUUsage, error)
	Memory(ctx context.Context) (*MemoryUsage, error)
	Partitions(ctx context.Context) ([]Partition, error)
	DiskUsage(ctx context.Context, path string) (*DiskUsage, error)
	ProcessNames(ctx context.Context) ([]string, error)
}

// LocalHost reads the live state of the machine via gopsutil
type LocalHost struct {
	// CPUWindow is passed to cpu.Percent; zero compares against the previous call
	CPUWindow time.Duration
}

// NewLocalHost returns a Host backed by gopsutil
func NewLocalHost(window time.Duration) *LocalHost {
	return &LocalHost{CPUWindow: window}
}

// CPU returns processor identity, logical core count and load
func (h *LocalHost) CPU(ctx context.Context) (*CPUUsage, error) {
	cores, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to get CPU count: %w", err)
	}

	percent, err := cpu.PercentWithContext(ctx, h.CPUWindow, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get CPU usage: %w", err)
	}

	var total float64
	if len(percent) > 0 {
		total = percent[0]
	}

	return &CPUUsage{
		Model:   cpuModel(ctx),
		Cores:   cores,
		Percent: total,
	}, nil
}

// cpuModel falls back to the architecture name when the platform does not
// report a model string
func cpuModel(ctx context.Context) string {
	info, err := cpu.InfoWithContext(ctx)
	if err != nil || len(info) == 0 || info[0].ModelName == "" {
		return runtime.GOARCH
	}
	return info[0].ModelName
}

// Memory returns physical memory totals in bytes
func (h *LocalHost) Memory(ctx context.Context) (*MemoryUsage, error) {
	memStat, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get memory info: %w", err)
	}

	return &MemoryUsage{
		Total: memStat.Total,
		Used:  memStat.Used,
		Free:  memStat.Free,
	}, nil
}

// Partitions returns the mounted physical partitions in enumeration order
func (h *LocalHost) Partitions(ctx context.Context) ([]Partition, error) {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list partitions: %w", err)
	}

	result := make([]Partition, 0, len(parts))
	for _, p := range parts {
		result = append(result, Partition{Device: p.Device, Mountpoint: p.Mountpoint})
	}
	return result, nil
}

// DiskUsage returns disk usage information for the specified path
func (h *LocalHost) DiskUsage(ctx context.Context, path string) (*DiskUsage, error) {
	diskStat, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to get disk usage for path %s: %w", path, err)
	}

	return &DiskUsage{
		Total: diskStat.Total,
		Used:  diskStat.Used,
		Free:  diskStat.Free,
	}, nil
}

// ProcessNames returns the name of every running process.
// Processes that exit between enumeration and the name lookup are skipped.
func (h *LocalHost) ProcessNames(ctx context.Context) ([]string, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	names := make([]string, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}
