//go:build linux

package executor

import "golang.org/x/sys/unix"

// applyMemoryLimit caps the address space of an already-started process.
// Allocations made before the limit lands are not reclaimed, so the ceiling
// is best-effort.
func applyMemoryLimit(pid int, limit uint64) error {
	rlim := unix.Rlimit{Cur: limit, Max: limit}
	return unix.Prlimit(pid, unix.RLIMIT_AS, &rlim, nil)
}
