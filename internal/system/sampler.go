package system

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Sampler builds a Snapshot from the live host state
type Sampler struct {
	host      Host
	services  ServiceLister
	scheduler SchedulerStatusProvider
	logger    *slog.Logger
	now       func() time.Time
}

// NewSampler wires a Sampler. A nil logger discards log output.
func NewSampler(host Host, services ServiceLister, scheduler SchedulerStatusProvider, logger *slog.Logger) *Sampler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Sampler{
		host:      host,
		services:  services,
		scheduler: scheduler,
		logger:    logger,
		now:       time.Now,
	}
}

// Sample queries every metric once. CPU, memory, disk and process failures
// abort the sample; service and scheduler failures degrade to sentinels.
func (s *Sampler) Sample(ctx context.Context) (*Snapshot, error) {
	cpuUsage, err := s.host.CPU(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sample cpu: %w", err)
	}

	memUsage, err := s.host.Memory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sample memory: %w", err)
	}

	disks, err := s.Disks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sample disks: %w", err)
	}

	processes, err := s.host.ProcessNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sample processes: %w", err)
	}

	snap := &Snapshot{
		CPUName:        cpuUsage.Model,
		CPUCores:       cpuUsage.Cores,
		CPULoadPercent: cpuUsage.Percent,
		MemTotal:       memUsage.Total,
		MemUsed:        memUsage.Used,
		MemFree:        memUsage.Free,
		Disks:          disks,
		ProcessNames:   processes,
		TakenAt:        s.now(),
	}
	snap.ServiceNames, snap.ServicesSupported = s.serviceNames(ctx)
	snap.SchedulerStatusLines, snap.SchedulerAvailable = s.schedulerLines(ctx)

	return snap, nil
}

// Disks returns usage for every mounted partition except the root mount
func (s *Sampler) Disks(ctx context.Context) ([]DiskInfo, error) {
	parts, err := s.host.Partitions(ctx)
	if err != nil {
		return nil, err
	}

	disks := make([]DiskInfo, 0, len(parts))
	for i, part := range parts {
		if part.Mountpoint == RootMountpoint {
			continue
		}
		usage, err := s.host.DiskUsage(ctx, part.Mountpoint)
		if err != nil {
			return nil, err
		}
		disks = append(disks, DiskInfo{
			Index:      i,
			Device:     part.Device,
			Mountpoint: part.Mountpoint,
			Total:      usage.Total,
			Used:       usage.Used,
			Free:       usage.Free,
		})
	}
	return disks, nil
}

func (s *Sampler) serviceNames(ctx context.Context) ([]string, bool) {
	if s.services == nil || !s.services.Supported() {
		return []string{SentinelUnsupported}, false
	}

	names, err := s.services.ServiceNames(ctx)
	if err != nil {
		s.logger.Warn("service enumeration failed", "error", err)
		return []string{SentinelUnsupported}, false
	}
	return names, true
}

func (s *Sampler) schedulerLines(ctx context.Context) ([]string, bool) {
	if s.scheduler == nil {
		return []string{SentinelUnavailable}, false
	}

	lines, err := s.scheduler.StatusLines(ctx)
	if err != nil {
		s.logger.Debug("scheduler status unavailable", "error", err)
		return []string{SentinelUnavailable}, false
	}
	return lines, true
}
