//go:build windows

package procinfo

import (
	"context"

	"golang.org/x/sys/windows"
)

var (
	moduser32           = windows.NewLazySystemDLL("user32.dll")
	procGetGuiResources = moduser32.NewProc("GetGuiResources")
)

// GetGuiResources uiFlags values from winuser.h.
const (
	grGDIObjects  = 0
	grUserObjects = 1
)

type hostGuiCounter struct{}

// NewGuiResourceCounter returns the user32-backed GUI object counter.
func NewGuiResourceCounter() GuiResourceCounter { return hostGuiCounter{} }

func (hostGuiCounter) GuiResources(_ context.Context, pid int32) (GuiResources, error) {
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, uint32(pid))
	if err != nil {
		return GuiResources{}, err
	}
	defer windows.CloseHandle(h)

	// A zero return is either a real zero or a failure; both count as zero.
	user, _, _ := procGetGuiResources.Call(uintptr(h), grUserObjects)
	gdi, _, _ := procGetGuiResources.Call(uintptr(h), grGDIObjects)
	return GuiResources{User: int64(user), GDI: int64(gdi)}, nil
}
