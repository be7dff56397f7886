//go:build unix

package assets

import "golang.org/x/sys/unix"

const (
	accessRead  = unix.R_OK
	accessWrite = unix.W_OK
	accessExec  = unix.X_OK
)

func accessible(path string, mode uint32) bool {
	return unix.Access(path, mode) == nil
}
