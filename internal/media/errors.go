package media

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a location does not resolve to a resource.
	ErrNotFound = errors.New("media: resource not found")
	// ErrUnsupportedFormat is returned when fetched bytes are not a known format.
	ErrUnsupportedFormat = errors.New("media: unsupported format")
	// ErrNoSource is returned when a handle is created without a location.
	ErrNoSource = errors.New("media: no source")
	// ErrAborted rejects a pending start that was interrupted by pause or reload.
	ErrAborted = errors.New("media: play request aborted")
	// ErrNotAllowed rejects a start denied by the autoplay policy.
	ErrNotAllowed = errors.New("media: playback not allowed")
	// ErrVolumeRange is returned for volumes outside [0, 1].
	ErrVolumeRange = errors.New("media: volume out of range")
)

// MediaErrorCode mirrors the media element error codes.
type MediaErrorCode int

const (
	MediaErrAborted MediaErrorCode = iota + 1
	MediaErrNetwork
	MediaErrDecode
	MediaErrSrcNotSupported
)

func (c MediaErrorCode) String() string {
	switch c {
	case MediaErrAborted:
		return "aborted"
	case MediaErrNetwork:
		return "network"
	case MediaErrDecode:
		return "decode"
	case MediaErrSrcNotSupported:
		return "src_not_supported"
	default:
		return "unknown"
	}
}

// MediaError is the error state a handle reports after a failed load.
type MediaError struct {
	Code MediaErrorCode
	Err  error
}

func (e *MediaError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("media error: %s", e.Code)
	}
	return fmt.Sprintf("media error: %s: %v", e.Code, e.Err)
}

func (e *MediaError) Unwrap() error { return e.Err }
