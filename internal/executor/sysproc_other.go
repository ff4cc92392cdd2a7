//go:build !unix

package executor

import "syscall"

func detachedAttr() *syscall.SysProcAttr {
	return nil
}
