//go:build unix

package executor

import "syscall"

// detachedAttr starts spawned programs in their own session so they outlive
// the launcher and ignore its terminal signals.
func detachedAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
