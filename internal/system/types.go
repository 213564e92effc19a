package system

import "time"

const (
	// SentinelUnsupported is carried in ServiceNames when the host exposes no service API
	SentinelUnsupported = "unsupported"
	// SentinelUnavailable is the single scheduler line when the status command fails
	SentinelUnavailable = "unavailable"

	// RootMountpoint is never reported in Snapshot.Disks
	RootMountpoint = "/"
)

// Snapshot represents one complete sample of host metrics
type Snapshot struct {
	CPUName        string  `json:"cpu_name"`
	CPUCores       int     `json:"cpu_cores"`
	CPULoadPercent float64 `json:"cpu_load_percent"`

	MemTotal uint64 `json:"mem_total_bytes"`
	MemUsed  uint64 `json:"mem_used_bytes"`
	MemFree  uint64 `json:"mem_free_bytes"`

	Disks []DiskInfo `json:"disks"`

	ProcessNames []string `json:"process_names"`

	ServiceNames      []string `json:"service_names"`
	ServicesSupported bool     `json:"services_supported"`

	SchedulerStatusLines []string `json:"scheduler_status_lines"`
	SchedulerAvailable   bool     `json:"scheduler_available"`

	TakenAt time.Time `json:"taken_at"`
}

// DiskInfo represents usage of a single mounted partition
type DiskInfo struct {
	Index      int    `json:"index"`
	Device     string `json:"device"`
	Mountpoint string `json:"mountpoint"`
	Total      uint64 `json:"total_bytes"`
	Used       uint64 `json:"used_bytes"`
	Free       uint64 `json:"free_bytes"`
}

// CPUUsage represents CPU identity and load
type CPUUsage struct {
	Model   string
	Cores   int
	Percent float64
}

// MemoryUsage represents physical memory totals
type MemoryUsage struct {
	Total uint64
	Used  uint64
	Free  uint64
}

// Partition is a mounted filesystem as reported by the OS
type Partition struct {
	Device     string
	Mountpoint string
}

// DiskUsage represents usage information for one mountpoint
type DiskUsage struct {
	Total uint64
	Used  uint64
	Free  uint64
}
