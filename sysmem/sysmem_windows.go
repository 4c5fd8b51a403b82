//go:build windows
// +build windows

// File: sysmem/sysmem_windows.go
// Author: momentics <momentics@gmail.com>
//
// Windows memory statistics via GlobalMemoryStatusEx.

package sysmem

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modkernel32              = windows.NewLazySystemDLL("kernel32.dll")
	procGlobalMemoryStatusEx = modkernel32.NewProc("GlobalMemoryStatusEx")
)

// memoryStatusEx mirrors MEMORYSTATUSEX.
type memoryStatusEx struct {
	length               uint32
	memoryLoad           uint32
	totalPhys            uint64
	availPhys            uint64
	totalPageFile        uint64
	availPageFile        uint64
	totalVirtual         uint64
	availVirtual         uint64
	availExtendedVirtual uint64
}

func platformMemory() (total, free uint64) {
	if err := procGlobalMemoryStatusEx.Find(); err != nil {
		return 0, 0
	}
	var st memoryStatusEx
	st.length = uint32(unsafe.Sizeof(st))
	ret, _, _ := procGlobalMemoryStatusEx.Call(uintptr(unsafe.Pointer(&st)))
	if ret == 0 {
		return 0, 0
	}
	return st.totalPhys, st.availPhys
}
