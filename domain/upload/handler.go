package upload

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/lumaxtec/site-backend/pkg/apperrors"
	"github.com/lumaxtec/site-backend/pkg/logger"
)

// 8 MiB decoded. Product images and datasheets stay well under this.
const maxUploadBytes = 8 << 20

var allowedContentTypes = map[string]string{
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
	"image/webp":      ".webp",
	"image/svg+xml":   ".svg",
	"application/pdf": ".pdf",
}

// Uploader stores an object and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, content []byte) (string, error)
	Delete(ctx context.Context, key string) error
}

// Handler serves asset uploads for the admin editors.
type Handler struct {
	uploader Uploader
}

// NewHandler creates an upload handler.
func NewHandler(uploader Uploader) *Handler {
	return &Handler{uploader: uploader}
}

// UploadRequest is the staff payload for uploading an asset.
type UploadRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Content     string `json:"content"` // base64
}

// UploadHandler decodes a base64 asset, stores it under a generated key and
// returns the public URL. Staff only.
func (h *Handler) UploadHandler(c echo.Context) error {
	log := logger.Get().WithComponent("upload")

	if h.uploader == nil {
		return apperrors.RespondWithError(c, apperrors.NewServiceUnavailable(
			apperrors.ErrCodeS3Error,
			"Asset storage is not configured.",
			nil,
		))
	}

	req := new(UploadRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request payload.",
		))
	}

	ext, ok := allowedContentTypes[req.ContentType]
	if !ok {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Unsupported content type.",
		))
	}

	content, err := base64.StdEncoding.DecodeString(req.Content)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Content must be base64 encoded.",
		))
	}
	if len(content) == 0 {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeMissingField,
			"Content is empty.",
		))
	}
	if len(content) > maxUploadBytes {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodePayloadTooLarge,
			"File exceeds the upload size limit.",
		))
	}

	key := fmt.Sprintf("assets/%s%s", uuid.New().String(), ext)
	url, err := h.uploader.Upload(c.Request().Context(), key, req.ContentType, content)
	if err != nil {
		log.Error("Failed to upload asset", err, logger.String("key", key))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeS3Error,
			"Failed to store the file.",
			err,
		))
	}

	log.Info("Asset uploaded", logger.String("key", key), logger.Count(len(content)))
	return c.JSON(http.StatusCreated, map[string]string{
		"key":      key,
		"url":      url,
		"fileName": sanitizeFileName(req.FileName),
	})
}

// DeleteHandler removes a previously uploaded asset. Staff only.
func (h *Handler) DeleteHandler(c echo.Context) error {
	log := logger.Get().WithComponent("upload")

	if h.uploader == nil {
		return apperrors.RespondWithError(c, apperrors.NewServiceUnavailable(
			apperrors.ErrCodeS3Error,
			"Asset storage is not configured.",
			nil,
		))
	}

	key := c.QueryParam("key")
	if key == "" || !strings.HasPrefix(key, "assets/") || strings.Contains(key, "..") {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"A valid asset key is required.",
		))
	}

	if err := h.uploader.Delete(c.Request().Context(), key); err != nil {
		log.Error("Failed to delete asset", err, logger.String("key", key))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeS3Error,
			"Failed to delete the file.",
			err,
		))
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Asset deleted successfully"})
}

func sanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" {
		return ""
	}
	return name
}
