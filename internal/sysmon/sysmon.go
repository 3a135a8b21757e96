// Package sysmon provides host-wide readings shown next to the sampled
// processes: installed RAM once at startup, CPU and memory usage on demand.
package sysmon

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Returns zero values on error.
func Sample(ctx context.Context) Stats {
	var s Stats
	cpuPcts, err := cpu.PercentWithContext(ctx, 0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemoryWithContext(ctx)
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	return s
}

// TotalRAM returns the installed physical memory in bytes. It is used for
// display only and never sits on the sampling path.
func TotalRAM(ctx context.Context) (uint64, error) {
	vmem, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("reading physical memory: %w", err)
	}
	return vmem.Total, nil
}
