package career

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/lumaxtec/site-backend/domain/content"
	"github.com/lumaxtec/site-backend/pkg/apperrors"
	"github.com/lumaxtec/site-backend/pkg/logger"
	"github.com/microcosm-cc/bluemonday"
)

// Handler serves the careers board endpoints.
type Handler struct {
	store     *Store
	sanitizer *bluemonday.Policy
}

// NewHandler creates a career handler on an injected database handle.
func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{
		store:     NewStore(db),
		sanitizer: descriptionPolicy(),
	}
}

// SaveRequest carries the full per-language arrays the editor wants
// persisted.
type SaveRequest struct {
	DE []Career `json:"de"`
	EN []Career `json:"en"`
}

// LinkRequest re-keys targetContentId in targetLanguage to sourceContentId.
type LinkRequest struct {
	SourceContentID string `json:"sourceContentId"`
	TargetContentID string `json:"targetContentId"`
	TargetLanguage  string `json:"targetLanguage"`
}

// ListHandler returns the published postings for the public site. Careers
// have no bundled snapshot; an unreachable store degrades to an empty board.
func (h *Handler) ListHandler(c echo.Context) error {
	return h.list(c, true)
}

// AdminListHandler returns every active posting, drafts included.
func (h *Handler) AdminListHandler(c echo.Context) error {
	return h.list(c, false)
}

func (h *Handler) list(c echo.Context, onlyPublished bool) error {
	log := logger.Get().WithComponent("career")

	rows, err := h.store.FetchAll(c.Request().Context(), onlyPublished)
	if err != nil {
		if errors.Is(err, content.ErrUpstreamUnavailable) {
			log.Warn("Record store unreachable, serving empty careers board")
			return c.JSON(http.StatusOK, Board{DE: []Career{}, EN: []Career{}})
		}
		log.Error("Failed to fetch careers", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}
	return c.JSON(http.StatusOK, Partition(rows))
}

// SaveHandler bulk-upserts the submitted postings. Descriptions come from a
// rich text editor and are sanitized before they reach the store.
func (h *Handler) SaveHandler(c echo.Context) error {
	log := logger.Get().WithComponent("career")

	req := new(SaveRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request payload.",
		))
	}

	rows := make([]Row, 0, len(req.DE)+len(req.EN))
	clear := map[string]bool{}
	collect := func(records []Career, lang content.Language) *apperrors.AppError {
		for _, rec := range records {
			if strings.TrimSpace(rec.ContentID) == "" {
				return apperrors.NewBadRequest(apperrors.ErrCodeMissingField, "contentId is required.")
			}
			if strings.TrimSpace(rec.Title) == "" {
				return apperrors.NewBadRequest(apperrors.ErrCodeMissingField, "title is required.")
			}
			rec.Description = h.sanitizer.Sanitize(rec.Description)
			rows = append(rows, ToRow(rec, lang))
			if rec.ClearPublishedAt {
				clear[rec.ContentID+"/"+string(lang)] = true
			}
		}
		return nil
	}
	if appErr := collect(req.DE, content.LanguageDE); appErr != nil {
		return apperrors.RespondWithError(c, appErr)
	}
	if appErr := collect(req.EN, content.LanguageEN); appErr != nil {
		return apperrors.RespondWithError(c, appErr)
	}

	if err := h.store.BulkUpsert(c.Request().Context(), rows, clear); err != nil {
		log.Error("Failed to upsert careers", err, logger.Count(len(rows)))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Failed to save careers.",
			err,
		))
	}

	log.Info("Careers saved", logger.Count(len(rows)))
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Careers saved successfully",
		"count":   len(rows),
	})
}

// DeleteHandler soft-deletes a posting in both languages.
func (h *Handler) DeleteHandler(c echo.Context) error {
	log := logger.Get().WithComponent("career")
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
				"Career posting not found.",
			))
		}
		log.Error("Failed to delete career", err, logger.ContentID(contentID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Failed to delete career posting.",
			err,
		))
	}

	log.Info("Career deleted", logger.ContentID(contentID))
	return c.JSON(http.StatusOK, map[string]string{"message": "Career posting deleted successfully"})
}

// LinkHandler marks two postings as translations of the same opening.
func (h *Handler) LinkHandler(c echo.Context) error {
	log := logger.Get().WithComponent("career")

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
				"Source or target posting not found.",
			))
		case errors.Is(err, content.ErrConflict):
			return apperrors.RespondWithError(c, apperrors.NewConflict(
				apperrors.ErrCodeLinkConflict,
				"A posting already exists under the destination key.",
			))
		}
		log.Error("Failed to link careers", err,
			logger.ContentID(req.SourceContentID),
			logger.Language(req.TargetLanguage),
		)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Failed to link career postings.",
			err,
		))
	}

	log.Info("Careers linked",
		logger.ContentID(req.SourceContentID),
		logger.Language(req.TargetLanguage),
	)
	return c.JSON(http.StatusOK, map[string]string{"message": "Career postings linked successfully"})
}

// descriptionPolicy allows the formatting a rich text editor emits while
// stripping anything executable.
func descriptionPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("h2", "h3", "h4")
	p.AllowAttrs("class").OnElements("p", "span", "ul", "ol", "li", "h2", "h3", "h4")
	p.AllowAttrs("href", "target", "rel").OnElements("a")
	p.AllowRelativeURLs(true)
	return p
}
