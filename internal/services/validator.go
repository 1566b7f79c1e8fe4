package services

import (
	"fmt"
	"strings"
)

// DefaultMaxUploadBytes is the upload size ceiling used when no explicit
// limit is configured (50 MiB).
const DefaultMaxUploadBytes int64 = 50 << 20

type MediaValidator interface {
	Validate(mimeType string, size int64) error
}

type mediaValidator struct {
	maxBytes int64
}

func NewMediaValidator(maxBytes int64) MediaValidator {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}

	return &mediaValidator{
		maxBytes: maxBytes,
	}
}

// Validate implements MediaValidator. The type rule is checked before the
// size rule, so an oversized non-video file reports the type mismatch.
func (v *mediaValidator) Validate(mimeType string, size int64) error {
	if !strings.HasPrefix(mimeType, "video/") {
		return fmt.Errorf("%w: %q is not a video format", ErrUnsupportedMediaType, mimeType)
	}

	if size > v.maxBytes {
		return fmt.Errorf("%w: %d bytes exceeds the %d byte limit", ErrMediaTooLarge, size, v.maxBytes)
	}

	return nil
}
