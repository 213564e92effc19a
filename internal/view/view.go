package view

import (
	"fmt"
	"strconv"
	"strings"

	"minimalmon/internal/system"
)

const (
	ServicesUnsupported  = "Работающие службы: Не поддерживается"
	SchedulerUnavailable = "Задачи планировщика: Информация недоступна"
)

// View is the text shown on a display surface for one snapshot
type View struct {
	Summary        string `json:"summary"`
	ProcessCount   string `json:"process_count"`
	ServiceCount   string `json:"service_count"`
	Processes      string `json:"processes"`
	Services       string `json:"services"`
	SchedulerTasks string `json:"scheduler_tasks"`
}

// Render formats a snapshot. Byte counts are truncated to whole gigabytes.
func Render(snap *system.Snapshot) View {
	v := View{
		Summary:      Summary(snap),
		ProcessCount: "Работающие процессы: " + strconv.Itoa(len(snap.ProcessNames)),
		Processes:    strings.Join(snap.ProcessNames, "\n"),
	}

	if snap.ServicesSupported {
		v.ServiceCount = "Работающие службы: " + strconv.Itoa(len(snap.ServiceNames))
		v.Services = strings.Join(snap.ServiceNames, "\n")
	} else {
		v.ServiceCount = ServicesUnsupported
		v.Services = ServicesUnsupported
	}

	if snap.SchedulerAvailable {
		v.SchedulerTasks = strings.Join(snap.SchedulerStatusLines, "\n")
	} else {
		v.SchedulerTasks = SchedulerUnavailable
	}

	return v
}

// Summary returns the CPU, memory and disk lines
func Summary(snap *system.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Процессор: %s, Ядер: %d, Загрузка: %s%%\n",
		snap.CPUName, snap.CPUCores, system.Float2string(snap.CPULoadPercent, 1))
	fmt.Fprintf(&b, "Оперативная память: %d GB, Использовано: %d GB, Свободно: %d GB\n",
		system.GB(snap.MemTotal), system.GB(snap.MemUsed), system.GB(snap.MemFree))
	b.WriteString(Disks(snap.Disks))
	return b.String()
}

// Disks returns one line per partition
func Disks(disks []system.DiskInfo) string {
	var b strings.Builder
	for _, d := range disks {
		fmt.Fprintf(&b, "Диск %d: %s - Объем: %d GB, Занято: %d GB, Свободно: %d GB\n",
			d.Index, d.Device, system.GB(d.Total), system.GB(d.Used), system.GB(d.Free))
	}
	return b.String()
}

// String lays the view out as a single text block
func (v View) String() string {
	var b strings.Builder
	b.WriteString(v.Summary)
	b.WriteString(v.ProcessCount + "\n")
	b.WriteString(v.Processes + "\n")
	b.WriteString(v.ServiceCount + "\n")
	b.WriteString(v.Services + "\n")
	b.WriteString(v.SchedulerTasks + "\n")
	return b.String()
}
