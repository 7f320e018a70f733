package faq

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

// Handler serves the FAQ endpoints.
type Handler struct {
	store *Store
}

// NewHandler creates an FAQ handler on an injected database handle.
func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{store: NewStore(db)}
}

// SaveRequest carries the full per-language arrays the editor wants
// persisted.
type SaveRequest struct {
	DE []FAQ `json:"de"`
	EN []FAQ `json:"en"`
}

// LinkRequest re-keys targetContentId in targetLanguage to sourceContentId.
type LinkRequest struct {
	SourceContentID string `json:"sourceContentId"`
	TargetContentID string `json:"targetContentId"`
	TargetLanguage  string `json:"targetLanguage"`
}

// ListHandler returns the grouped FAQ for the public site. FAQs have no
// bundled snapshot; an unreachable store degrades to an empty response.
func (h *Handler) ListHandler(c echo.Context) error {
	log := logger.Get().WithComponent("faq")

	rows, err := h.store.FetchAll(c.Request().Context())
	if err != nil {
		if errors.Is(err, content.ErrUpstreamUnavailable) {
			log.Warn("Record store unreachable, serving empty FAQ")
			return c.JSON(http.StatusOK, Grouped{DE: []Group{}, EN: []Group{}})
		}
		log.Error("Failed to fetch FAQ entries", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}
	return c.JSON(http.StatusOK, GroupRows(rows))
}

// SaveHandler bulk-upserts the submitted entries.
func (h *Handler) SaveHandler(c echo.Context) error {
	log := logger.Get().WithComponent("faq")

	req := new(SaveRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request payload.",
		))
	}

	rows := make([]Row, 0, len(req.DE)+len(req.EN))
	collect := func(records []FAQ, lang content.Language) *apperrors.AppError {
		for _, rec := range records {
			if strings.TrimSpace(rec.ContentID) == "" {
				return apperrors.NewBadRequest(apperrors.ErrCodeMissingField, "contentId is required.")
			}
			if strings.TrimSpace(rec.Question) == "" {
				return apperrors.NewBadRequest(apperrors.ErrCodeMissingField, "question is required.")
			}
			rows = append(rows, ToRow(rec, lang))
		}
		return nil
	}
	if appErr := collect(req.DE, content.LanguageDE); appErr != nil {
		return apperrors.RespondWithError(c, appErr)
	}
	if appErr := collect(req.EN, content.LanguageEN); appErr != nil {
		return apperrors.RespondWithError(c, appErr)
	}

	if err := h.store.BulkUpsert(c.Request().Context(), rows); err != nil {
		log.Error("Failed to upsert FAQ entries", err, logger.Count(len(rows)))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Failed to save FAQ entries.",
			err,
		))
	}

	log.Info("FAQ entries saved", logger.Count(len(rows)))
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "FAQ entries saved successfully",
		"count":   len(rows),
	})
}

// DeleteHandler soft-deletes an entry in both languages.
func (h *Handler) DeleteHandler(c echo.Context) error {
	log := logger.Get().WithComponent("faq")
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
				"FAQ entry not found.",
			))
		}
		log.Error("Failed to delete FAQ entry", err, logger.ContentID(contentID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Failed to delete FAQ entry.",
			err,
		))
	}

	log.Info("FAQ entry deleted", logger.ContentID(contentID))
	return c.JSON(http.StatusOK, map[string]string{"message": "FAQ entry deleted successfully"})
}

// LinkHandler marks two entries as translations of the same question.
func (h *Handler) LinkHandler(c echo.Context) error {
	log := logger.Get().WithComponent("faq")

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
				"Source or target entry not found.",
			))
		case errors.Is(err, content.ErrConflict):
			return apperrors.RespondWithError(c, apperrors.NewConflict(
				apperrors.ErrCodeLinkConflict,
				"An entry already exists under the destination key.",
			))
		}
		log.Error("Failed to link FAQ entries", err,
			logger.ContentID(req.SourceContentID),
			logger.Language(req.TargetLanguage),
		)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Failed to link FAQ entries.",
			err,
		))
	}

	log.Info("FAQ entries linked",
		logger.ContentID(req.SourceContentID),
		logger.Language(req.TargetLanguage),
	)
	return c.JSON(http.StatusOK, map[string]string{"message": "FAQ entries linked successfully"})
}
