//go:build linux

package resource

import (
	"io/fs"
	"syscall"
	"time"
)

// statTimes reports atime and ctime; Linux stat has no portable birth time.
func statTimes(fi fs.FileInfo) (accessed, created time.Time) {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}, time.Time{}
	}
	return time.Unix(st.Atim.Unix()), time.Unix(st.Ctim.Unix())
}
