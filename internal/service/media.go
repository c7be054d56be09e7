package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/errors"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/logging"
)

// DefaultMaxImageBytes bounds uploads when no limit is configured.
const DefaultMaxImageBytes int64 = 2 * 1024 * 1024

// ImageUploader turns uploaded image files into data URIs that are stored
// directly in a product's image field.
type ImageUploader struct {
	maxBytes int64
	logger   *logging.LoggerV2
}

func NewImageUploader(maxBytes int64) *ImageUploader {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	return &ImageUploader{
		maxBytes: maxBytes,
		logger:   logging.NewLoggerV2("media"),
	}
}

// MaxBytes is the largest accepted payload.
func (u *ImageUploader) MaxBytes() int64 {
	return u.maxBytes
}

// HandleImageUpload reads r fully and returns a base64 data URI. Read
// failures are returned as-is; empty, oversized and non-image payloads are
// validation errors.
func (u *ImageUploader) HandleImageUpload(ctx context.Context, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := io.ReadAll(io.LimitReader(r, u.maxBytes+1))
	if err != nil {
		u.logger.Error("Failed to read image", logging.Fields{"error": err.Error()})
		return "", fmt.Errorf("read image: %w", err)
	}

	if len(data) == 0 {
		return "", errors.NewValidationError("image", "image file is empty")
	}
	if int64(len(data)) > u.maxBytes {
		return "", errors.NewValidationError("image", fmt.Sprintf("image exceeds %d bytes", u.maxBytes))
	}

	mtype := mimetype.Detect(data)
	mediaType := mtype.String()
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = mediaType[:i]
	}
	if !strings.HasPrefix(mediaType, "image/") {
		return "", errors.NewValidationError("image", fmt.Sprintf("unsupported file type %s", mediaType))
	}

	u.logger.Debug("Image ingested", logging.Fields{
		"media_type": mediaType,
		"bytes":      len(data),
	})

	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// HandleMultipartImage opens an uploaded form file and ingests it.
func (u *ImageUploader) HandleMultipartImage(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	if fh.Size > u.maxBytes {
		return "", errors.NewValidationError("image", fmt.Sprintf("image exceeds %d bytes", u.maxBytes))
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	return u.HandleImageUpload(ctx, f)
}
