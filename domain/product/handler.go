package product

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/lumaxtec/site-backend/domain/content"
	"github.com/lumaxtec/site-backend/pkg/apperrors"
	"github.com/lumaxtec/site-backend/pkg/logger"
)

// Handler serves the product catalog endpoints.
type Handler struct {
	store  *Store
	source Source
}

// NewHandler creates a product handler on an injected database handle.
// When remoteURL is set, public reads go through the remote catalog endpoint
// instead of the local store (migration mode).
func NewHandler(db *sqlx.DB, remoteURL string) *Handler {
	store := NewStore(db)
	var source Source = NewLiveSource(store)
	if remoteURL != "" {
		source = NewHTTPSource(remoteURL)
	}
	return &Handler{store: store, source: source}
}

// SaveRequest carries the full per-language arrays the editor wants
// persisted. Overwrite semantics per row, never a partial patch; rows absent
// from the arrays stay untouched.
type SaveRequest struct {
	DE []Product `json:"de"`
	EN []Product `json:"en"`
}

// LinkRequest re-keys targetContentId in targetLanguage to sourceContentId.
type LinkRequest struct {
	SourceContentID string `json:"sourceContentId"`
	TargetContentID string `json:"targetContentId"`
	TargetLanguage  string `json:"targetLanguage"`
}

// ListHandler returns the language-partitioned catalog. Reads degrade to the
// bundled snapshot when the store is unreachable.
func (h *Handler) ListHandler(c echo.Context) error {
	log := logger.Get().WithComponent("product")

	cat, degraded, err := CatalogOrFallback(c.Request().Context(), h.source)
	if err != nil {
		log.Error("Failed to fetch product catalog", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}
	if degraded {
		log.Warn("Serving product catalog from fallback snapshot")
	}
	return c.JSON(http.StatusOK, cat)
}

// SaveHandler bulk-upserts the submitted records. Write failures are
// surfaced, never swallowed; a silently dropped write would desynchronize
// the language pair.
func (h *Handler) SaveHandler(c echo.Context) error {
	log := logger.Get().WithComponent("product")

	req := new(SaveRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request payload.",
		))
	}

	rows := make([]Row, 0, len(req.DE)+len(req.EN))
	for _, p := range req.DE {
		if err := validateRecord(p); err != nil {
			return apperrors.RespondWithError(c, err)
		}
		rows = append(rows, ToRow(p, content.LanguageDE))
	}
	for _, p := range req.EN {
		if err := validateRecord(p); err != nil {
			return apperrors.RespondWithError(c, err)
		}
		rows = append(rows, ToRow(p, content.LanguageEN))
	}

	if err := h.store.BulkUpsert(c.Request().Context(), rows); err != nil {
		log.Error("Failed to upsert products", err, logger.Count(len(rows)))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Failed to save products.",
			err,
		))
	}

	log.Info("Products saved", logger.Count(len(rows)))
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Products saved successfully",
		"count":   len(rows),
	})
}

// DeleteHandler soft-deletes a product in both languages.
func (h *Handler) DeleteHandler(c echo.Context) error {
	log := logger.Get().WithComponent("product")
	contentID := c.Param("content_id")

	if strings.TrimSpace(contentID) == "" {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeMissingField,
			"content_id is required.",
		))
	}

	err := h.store.Delete(c.Request().Context(), contentID)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return apperrors.RespondWithError(c, apperrors.NewNotFound(
				apperrors.ErrCodeContentNotFound,
				"Product not found.",
			))
		}
		log.Error("Failed to delete product", err, logger.ContentID(contentID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Failed to delete product.",
			err,
		))
	}

	log.Info("Product deleted", logger.ContentID(contentID))
	return c.JSON(http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

// LinkHandler marks two records as translations of the same entity by
// re-keying the target-language row.
func (h *Handler) LinkHandler(c echo.Context) error {
	log := logger.Get().WithComponent("product")

	req := new(LinkRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request payload.",
		))
	}
	if req.SourceContentID == "" || req.TargetContentID == "" {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeMissingField,
			"sourceContentId and targetContentId are required.",
		))
	}
	lang, err := content.ParseLanguage(req.TargetLanguage)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidLanguage,
			"targetLanguage must be one of: de, en.",
		))
	}

	err = h.store.Link(c.Request().Context(), req.SourceContentID, req.TargetContentID, lang)
	if err != nil {
		switch {
		case errors.Is(err, content.ErrNotFound):
			return apperrors.RespondWithError(c, apperrors.NewNotFound(
				apperrors.ErrCodeContentNotFound,
				"Source or target record not found.",
			))
		case errors.Is(err, content.ErrConflict):
			return apperrors.RespondWithError(c, apperrors.NewConflict(
				apperrors.ErrCodeLinkConflict,
				"A record already exists under the destination key.",
			))
		}
		log.Error("Failed to link products", err,
			logger.ContentID(req.SourceContentID),
			logger.Language(req.TargetLanguage),
		)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Failed to link products.",
			err,
		))
	}

	log.Info("Products linked",
		logger.ContentID(req.SourceContentID),
		logger.Language(req.TargetLanguage),
	)
	return c.JSON(http.StatusOK, map[string]string{"message": "Products linked successfully"})
}

func validateRecord(p Product) *apperrors.AppError {
	if strings.TrimSpace(p.ContentID) == "" {
		return apperrors.NewBadRequest(apperrors.ErrCodeMissingField, "contentId is required.")
	}
	if strings.TrimSpace(p.Name) == "" {
		return apperrors.NewBadRequest(apperrors.ErrCodeMissingField, "name is required.")
	}
	return nil
}
