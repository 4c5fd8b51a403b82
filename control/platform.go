// control/platform.go
// Author: momentics <momentics@gmail.com>
//
// Host-level debug probes: CPU count and memory as seen by the reservation
// advisor.

package control

import (
	"runtime"

	"github.com/momentics/hioload-vector/sysmem"
)

// RegisterPlatformProbes publishes host facts into dp.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
	dp.RegisterProbe("platform.memory.total", func() any {
		return sysmem.TotalMemory()
	})
	dp.RegisterProbe("platform.memory.free", func() any {
		return sysmem.FreeMemory()
	})
}
