package video

import (
	"errors"
	"fmt"
)

var (
	ErrVideoNotFound     = errors.New("video not found")
	ErrTooLarge          = errors.New("file exceeds maximum allowed size")
	ErrUnsupportedFormat = errors.New("file format is not allowed")
	ErrEmptyFile         = errors.New("file is empty")
	ErrToolUnavailable   = errors.New("external tool is not available")
	ErrNoFrame           = errors.New("no frame could be decoded from video")
	ErrUnsupportedField  = errors.New("field cannot be edited")
)

// ToolError reports a non-zero exit from an external tool together with
// its combined stdout/stderr for the logs.
type ToolError struct {
	Tool   string
	Output []byte
	Err    error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
}

func (e *ToolError) Unwrap() error { return e.Err }
