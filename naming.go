package spatial

import (
	"path/filepath"
	"strings"
)

// OutputTarget is the destination of one exported role.
type OutputTarget struct {
	Dir  string
	Base string
	Role Role
	Path string
}

// TargetIn names the output for role in dir: <dir>/<base of name>_<role>.jpg.
func TargetIn(dir, name string, role Role) OutputTarget {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return OutputTarget{
		Dir:  dir,
		Base: base,
		Role: role,
		Path: filepath.Join(dir, base+"_"+string(role)+outputExt),
	}
}

// TargetBeside names the output for role next to the source file.
func TargetBeside(sourcePath string, role Role) OutputTarget {
	return TargetIn(filepath.Dir(sourcePath), sourcePath, role)
}
