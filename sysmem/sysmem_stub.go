//go:build !linux && !windows
// +build !linux,!windows

// File: sysmem/sysmem_stub.go
// Author: momentics <momentics@gmail.com>
//
// Unsupported platforms report unknown memory; callers fall back.

package sysmem

func platformMemory() (total, free uint64) {
	return 0, 0
}
