//go:build !windows

package procinfo

import "context"

type hostGuiCounter struct{}

// NewGuiResourceCounter returns the host GUI object counter. Hosts other
// than Windows have no USER or GDI object pools, so every process reports
// zero.
func NewGuiResourceCounter() GuiResourceCounter { return hostGuiCounter{} }

func (hostGuiCounter) GuiResources(context.Context, int32) (GuiResources, error) {
	return GuiResources{}, nil
}
