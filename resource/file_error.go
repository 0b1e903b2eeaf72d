package resource

import (
	"errors"
	"io/fs"
	"strconv"
)

// FileError is the platform-neutral result of a file operation.
type FileError int32

const (
	FileOK                    FileError = 0
	FileErrorFailed           FileError = -1
	FileErrorInUse            FileError = -2
	FileErrorExists           FileError = -3
	FileErrorNotFound         FileError = -4
	FileErrorAccessDenied     FileError = -5
	FileErrorTooManyOpened    FileError = -6
	FileErrorNoMemory         FileError = -7
	FileErrorNoSpace          FileError = -8
	FileErrorNotADirectory    FileError = -9
	FileErrorInvalidOperation FileError = -10
	FileErrorSecurity         FileError = -11
	FileErrorAbort            FileError = -12
	FileErrorNotAFile         FileError = -13
	FileErrorNotEmpty         FileError = -14
)

var fileErrorNames = [...]string{
	"ok", "failed", "in_use", "exists", "not_found", "access_denied",
	"too_many_opened", "no_memory", "no_space", "not_a_directory",
	"invalid_operation", "security", "abort", "not_a_file", "not_empty",
}

func (e FileError) Valid() bool { return e <= FileOK && e >= FileErrorNotEmpty }

func (e FileError) String() string {
	if !e.Valid() {
		return "file_error(" + strconv.Itoa(int(e)) + ")"
	}
	return fileErrorNames[-e]
}

// FileErrorFrom maps a Go file error to a FileError. Unknown errors map to
// FileErrorFailed.
func FileErrorFrom(err error) FileError {
	switch {
	case err == nil:
		return FileOK
	case errors.Is(err, fs.ErrNotExist):
		return FileErrorNotFound
	case errors.Is(err, fs.ErrExist):
		return FileErrorExists
	case errors.Is(err, fs.ErrPermission):
		return FileErrorAccessDenied
	case errors.Is(err, fs.ErrInvalid), errors.Is(err, fs.ErrClosed):
		return FileErrorInvalidOperation
	default:
		return FileErrorFailed
	}
}
