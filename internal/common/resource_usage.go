package common

import (
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// ResourceUsage is a point-in-time view of the server's memory footprint
type ResourceUsage struct {
	AllocMB              int64   `json:"alloc_mb"`
	SysMB                int64   `json:"sys_mb"`
	Goroutines           int     `json:"goroutines"`
	GCCount              int64   `json:"gc_count"`
	ProcessRSSMB         int64   `json:"process_rss_mb"`
	SystemMemUsedPercent float64 `json:"system_mem_used_percent"`
}

// GetResourceUsage returns current resource usage statistics.
// gopsutil failures leave the corresponding fields at zero.
func GetResourceUsage() ResourceUsage {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	usage := ResourceUsage{
		AllocMB:    int64(m.Alloc / 1024 / 1024),
		SysMB:      int64(m.Sys / 1024 / 1024),
		Goroutines: runtime.NumGoroutine(),
		GCCount:    int64(m.NumGC),
	}

	if vmStat, err := mem.VirtualMemory(); err == nil {
		usage.SystemMemUsedPercent = vmStat.UsedPercent
	}

	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if memInfo, err := proc.MemoryInfo(); err == nil && memInfo != nil {
			usage.ProcessRSSMB = int64(memInfo.RSS / 1024 / 1024)
		}
	}

	return usage
}
