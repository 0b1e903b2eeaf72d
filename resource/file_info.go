package resource

import (
	"io/fs"
	"time"
)

// FileInfo is platform-neutral file metadata. Times are carried at microsecond
// resolution in UTC.
type FileInfo struct {
	Size         int64
	IsDirectory  bool
	LastModified time.Time
	LastAccessed time.Time
	CreationTime time.Time
}

// FileInfoFrom converts an fs.FileInfo. Access and creation times come from the
// platform stat record when available and fall back to the modification time.
func FileInfoFrom(fi fs.FileInfo) FileInfo {
	mod := fi.ModTime()
	accessed, created := statTimes(fi)
	if accessed.IsZero() {
		accessed = mod
	}
	if created.IsZero() {
		created = mod
	}
	return FileInfo{
		Size:         fi.Size(),
		IsDirectory:  fi.IsDir(),
		LastModified: mod.UTC(),
		LastAccessed: accessed.UTC(),
		CreationTime: created.UTC(),
	}
}

func (f FileInfo) Equal(o FileInfo) bool {
	return f.Size == o.Size && f.IsDirectory == o.IsDirectory &&
		sameMicro(f.LastModified, o.LastModified) &&
		sameMicro(f.LastAccessed, o.LastAccessed) &&
		sameMicro(f.CreationTime, o.CreationTime)
}
