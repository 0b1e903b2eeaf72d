//go:build windows

package resource

import (
	"io/fs"
	"syscall"
	"time"
)

func statTimes(fi fs.FileInfo) (accessed, created time.Time) {
	d, ok := fi.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return time.Time{}, time.Time{}
	}
	return time.Unix(0, d.LastAccessTime.Nanoseconds()), time.Unix(0, d.CreationTime.Nanoseconds())
}
