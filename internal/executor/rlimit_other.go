//go:build !linux

package executor

// applyMemoryLimit is a no-op on platforms without cross-process rlimit
// support; the timeout remains the only enforced bound.
func applyMemoryLimit(pid int, limit uint64) error {
	return nil
}
