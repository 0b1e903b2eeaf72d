//go:build darwin

package resource

import (
	"io/fs"
	"syscall"
	"time"
)

func statTimes(fi fs.FileInfo) (accessed, created time.Time) {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}, time.Time{}
	}
	return time.Unix(st.Atimespec.Unix()), time.Unix(st.Birthtimespec.Unix())
}
