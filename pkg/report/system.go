package report

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemInfo describes the machine a report was generated on
type SystemInfo struct {
	Hostname     string
	OS           string
	Architecture string
	CPUModel     string
	CPUCores     int
	TotalMemory  string
}

// CollectSystemInfo queries the host. Fields that cannot be read are
// reported as "Unknown".
func CollectSystemInfo() SystemInfo {
	info := SystemInfo{
		Hostname:     "Unknown",
		OS:           runtime.GOOS,
		Architecture: runtime.GOARCH,
		CPUModel:     "Unknown",
		CPUCores:     runtime.NumCPU(),
		TotalMemory:  "Unknown",
	}

	if h, err := host.Info(); err == nil {
		info.Hostname = h.Hostname
		if h.Platform != "" {
			info.OS = fmt.Sprintf("%s %s", h.Platform, h.PlatformVersion)
		}
		if h.KernelArch != "" {
			info.Architecture = h.KernelArch
		}
	}

	if cpus, err := cpu.Info(); err == nil && len(cpus) > 0 {
		info.CPUModel = cpus[0].ModelName
	}
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		info.CPUCores = n
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		info.TotalMemory = formatBytes(vm.Total)
	}

	return info
}

func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
