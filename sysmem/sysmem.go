// File: sysmem/sysmem.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral memory statistics used to size RAM-aware reservations.
// Platform-specific readers live in sysmem_linux.go, sysmem_windows.go and
// sysmem_stub.go, guarded by build tags.

package sysmem

const (
	// FallbackElements is reserved when the host cannot report memory.
	FallbackElements uint64 = 4096
	// MaxReserveElements caps a RAM-derived reservation.
	MaxReserveElements uint64 = 1 << 28
	minSafetyDivisor   uint64 = 2
)

// Advisor reports host memory in bytes. Zero means unknown.
type Advisor interface {
	TotalMemory() uint64
	FreeMemory() uint64
}

type system struct{}

// System is the Advisor backed by the operating system.
var System Advisor = system{}

func (system) TotalMemory() uint64 { return TotalMemory() }
func (system) FreeMemory() uint64  { return FreeMemory() }

// TotalMemory returns physical memory installed on the host.
func TotalMemory() uint64 {
	total, _ := platformMemory()
	return total
}

// FreeMemory returns physical memory currently available.
func FreeMemory() uint64 {
	_, free := platformMemory()
	return free
}

// ReserveElements sizes a reservation of elemSize-byte elements to a
// fraction of free memory: free / elemSize / divisor.
func ReserveElements(a Advisor, elemSize, divisor uint64) uint64 {
	if a == nil {
		return FallbackElements
	}
	if divisor < minSafetyDivisor {
		divisor = minSafetyDivisor
	}
	if elemSize == 0 {
		elemSize = 1
	}
	free := a.FreeMemory()
	if free == 0 {
		return FallbackElements
	}
	n := free / elemSize / divisor
	switch {
	case n == 0:
		return FallbackElements
	case n > MaxReserveElements:
		return MaxReserveElements
	}
	return n
}
