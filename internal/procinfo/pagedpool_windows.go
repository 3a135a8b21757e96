//go:build windows

package procinfo

import (
	"context"
	"fmt"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modpsapi                 = windows.NewLazySystemDLL("psapi.dll")
	procGetProcessMemoryInfo = modpsapi.NewProc("GetProcessMemoryInfo")
)

// processMemoryCounters mirrors PROCESS_MEMORY_COUNTERS.
type processMemoryCounters struct {
	CB                         uint32
	PageFaultCount             uint32
	PeakWorkingSetSize         uintptr
	WorkingSetSize             uintptr
	QuotaPeakPagedPoolUsage    uintptr
	QuotaPagedPoolUsage        uintptr
	QuotaPeakNonPagedPoolUsage uintptr
	QuotaNonPagedPoolUsage     uintptr
	PagefileUsage              uintptr
	PeakPagefileUsage          uintptr
}

type hostPagedPool struct{}

// NewPagedPoolCounter returns the host paged-pool counter. Like the
// "\Process(name)\Pool Paged Bytes" performance counter, a name resolves to
// the first running instance with that image name.
func NewPagedPoolCounter() PagedPoolCounter { return hostPagedPool{} }

func (hostPagedPool) PagedPool(_ context.Context, name string) (PagedPool, error) {
	pid, err := firstPIDByName(name)
	if err != nil {
		return PagedPool{}, err
	}
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return PagedPool{}, fmt.Errorf("%w: open %d: %v", ErrCounterUnavailable, pid, err)
	}
	defer windows.CloseHandle(h)

	var c processMemoryCounters
	c.CB = uint32(unsafe.Sizeof(c))
	r1, _, e1 := procGetProcessMemoryInfo.Call(uintptr(h), uintptr(unsafe.Pointer(&c)), uintptr(c.CB))
	if r1 == 0 {
		return PagedPool{}, fmt.Errorf("%w: %v", ErrCounterUnavailable, e1)
	}
	return PagedPool{
		Bytes:     uint64(c.QuotaPagedPoolUsage),
		PeakBytes: uint64(c.QuotaPeakPagedPoolUsage),
	}, nil
}

func firstPIDByName(name string) (uint32, error) {
	snap, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCounterUnavailable, err)
	}
	defer windows.CloseHandle(snap)

	var e windows.ProcessEntry32
	e.Size = uint32(unsafe.Sizeof(e))
	for err = windows.Process32First(snap, &e); err == nil; err = windows.Process32Next(snap, &e) {
		if strings.EqualFold(ImageName(windows.UTF16ToString(e.ExeFile[:])), name) {
			return e.ProcessID, nil
		}
	}
	return 0, ErrCounterUnavailable
}
