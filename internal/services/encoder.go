package services

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"interview-analyzer/internal/models"
)

type MediaEncoder interface {
	ReadUpload(file *multipart.FileHeader) (*models.SelectedMedia, error)
	Encode(media *models.SelectedMedia) *models.EncodedMedia
	DecodeDataURL(raw string) (*models.SelectedMedia, error)
}

type mediaEncoder struct{}

func NewMediaEncoder() MediaEncoder {
	return &mediaEncoder{}
}

// ReadUpload implements MediaEncoder. The whole file is read into memory;
// the validator's size ceiling bounds how much that can be.
func (e *mediaEncoder) ReadUpload(file *multipart.FileHeader) (*models.SelectedMedia, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMediaUnreadable, err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMediaUnreadable, err)
	}

	return &models.SelectedMedia{
		Data:        data,
		MIMEType:    file.Header.Get("Content-Type"),
		Size:        int64(len(data)),
		DisplayName: file.Filename,
	}, nil
}

// Encode implements MediaEncoder. The output is plain base64 with no
// data-URL prefix, ready to embed in a request body.
func (e *mediaEncoder) Encode(media *models.SelectedMedia) *models.EncodedMedia {
	return &models.EncodedMedia{
		MIMEType: media.MIMEType,
		Data:     base64.StdEncoding.EncodeToString(media.Data),
	}
}

// DecodeDataURL implements MediaEncoder. It accepts the
// "data:<mime>;base64,<payload>" form a browser produces and strips the
// prefix so only the payload bytes travel downstream.
func (e *mediaEncoder) DecodeDataURL(raw string) (*models.SelectedMedia, error) {
	meta, payload, found := strings.Cut(raw, ",")
	if !found || !strings.HasPrefix(meta, "data:") {
		return nil, fmt.Errorf("media payload is not a data URL")
	}

	mimeType, isBase64 := strings.CutSuffix(strings.TrimPrefix(meta, "data:"), ";base64")
	if !isBase64 {
		return nil, fmt.Errorf("media payload must be base64 encoded")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode media payload: %w", err)
	}

	return &models.SelectedMedia{
		Data:     data,
		MIMEType: mimeType,
		Size:     int64(len(data)),
	}, nil
}
