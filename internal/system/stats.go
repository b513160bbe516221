package system

import (
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// RunStats is a snapshot of resource usage at the end of a run.
type RunStats struct {
	Elapsed        time.Duration
	RSSBytes       uint64
	CPUPercent     float64
	HostUsedPct    float64
	HostTotalBytes uint64
}

// CollectStats samples the current process and host memory.
func CollectStats(start time.Time) (RunStats, error) {
	stats := RunStats{Elapsed: time.Since(start)}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return stats, fmt.Errorf("open process: %w", err)
	}

	memInfo, err := proc.MemoryInfo()
	if err != nil {
		return stats, fmt.Errorf("process memory: %w", err)
	}
	stats.RSSBytes = memInfo.RSS

	if cpu, err := proc.CPUPercent(); err == nil {
		stats.CPUPercent = cpu
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		return stats, fmt.Errorf("host memory: %w", err)
	}
	stats.HostUsedPct = vm.UsedPercent
	stats.HostTotalBytes = vm.Total

	return stats, nil
}

func (s RunStats) String() string {
	return fmt.Sprintf("time %.2fs | RSS %.1f MiB | CPU %.1f%% | host memory %.1f%% of %.1f GiB",
		s.Elapsed.Seconds(),
		float64(s.RSSBytes)/(1<<20),
		s.CPUPercent,
		s.HostUsedPct,
		float64(s.HostTotalBytes)/(1<<30),
	)
}
