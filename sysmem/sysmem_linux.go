//go:build linux
// +build linux

// File: sysmem/sysmem_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux memory statistics via sysinfo(2).

package sysmem

import "golang.org/x/sys/unix"

func platformMemory() (total, free uint64) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0, 0
	}
	unit := uint64(info.Unit)
	if unit == 0 {
		unit = 1
	}
	return uint64(info.Totalram) * unit, uint64(info.Freeram) * unit
}
