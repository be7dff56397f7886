//go:build !unix

package assets

import "os"

const (
	accessRead  = 0x4
	accessWrite = 0x2
	accessExec  = 0x1
)

func accessible(path string, mode uint32) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	perm := uint32(info.Mode().Perm() >> 6)
	return perm&mode == mode
}
