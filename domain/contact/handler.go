package contact

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/lumaxtec/site-backend/domain/content"
	"github.com/lumaxtec/site-backend/pkg/apperrors"
	"github.com/lumaxtec/site-backend/pkg/logger"
	"github.com/microcosm-cc/bluemonday"
)

const maxBodyLength = 10000

// Notifier forwards contact submissions to the sales inbox. A nil Notifier
// disables forwarding without affecting intake.
type Notifier interface {
	Notify(ctx context.Context, subject, htmlBody string) error
}

// Handler serves the contact form endpoints.
type Handler struct {
	db       *sqlx.DB
	notifier Notifier
	policy   *bluemonday.Policy
}

// NewHandler creates a contact handler. notifier may be nil.
func NewHandler(db *sqlx.DB, notifier Notifier) *Handler {
	return &Handler{db: db, notifier: notifier, policy: bluemonday.StrictPolicy()}
}

// SubmitHandler accepts a contact form submission from the public site.
// Registered behind the rate limiter.
func (h *Handler) SubmitHandler(c echo.Context) error {
	log := logger.Get().WithComponent("contact")

	req := new(SubmitRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request payload.",
		))
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Body) == "" {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeMissingField,
			"name and body are required.",
		))
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidEmail,
			"A valid email address is required.",
		))
	}
	if len(req.Body) > maxBodyLength {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodePayloadTooLarge,
			"Message body is too long.",
		))
	}
	lang, err := content.ParseLanguage(req.Language)
	if err != nil {
		lang = content.LanguageDE
	}

	msg := Message{
		Name:     h.policy.Sanitize(strings.TrimSpace(req.Name)),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Company:  h.policy.Sanitize(strings.TrimSpace(req.Company)),
		Subject:  h.policy.Sanitize(strings.TrimSpace(req.Subject)),
		Body:     h.policy.Sanitize(req.Body),
		Language: string(lang),
	}

	_, err = h.db.ExecContext(c.Request().Context(), h.db.Rebind(`
		INSERT INTO contact_messages (name, email, company, subject, body, language, processed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		msg.Name, msg.Email, msg.Company, msg.Subject, msg.Body, msg.Language,
		false, time.Now().UTC())
	if err != nil {
		log.Error("Failed to store contact message", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Failed to submit message.",
			err,
		))
	}

	// Notification failures are logged only, the submission is already stored.
	if h.notifier != nil {
		subject := fmt.Sprintf("Kontaktanfrage: %s", msg.Subject)
		if msg.Subject == "" {
			subject = "Kontaktanfrage über die Website"
		}
		body := fmt.Sprintf("<p><b>%s</b> (%s, %s)</p><p>%s</p>",
			html.EscapeString(msg.Name), html.EscapeString(msg.Email),
			html.EscapeString(msg.Company), html.EscapeString(msg.Body))
		if err := h.notifier.Notify(c.Request().Context(), subject, body); err != nil {
			log.Warn("Failed to send contact notification", logger.Err(err))
		}
	}

	log.Info("Contact message received", logger.Email(msg.Email))
	return c.JSON(http.StatusCreated, map[string]string{"message": "Message submitted successfully"})
}

// ListHandler returns contact messages, unprocessed first. Staff only.
func (h *Handler) ListHandler(c echo.Context) error {
	log := logger.Get().WithComponent("contact")

	messages := []Message{}
	err := h.db.SelectContext(c.Request().Context(), &messages, `
		SELECT id, name, email, company, subject, body, language, processed, created_at, handled_at
		FROM contact_messages
		ORDER BY processed ASC, created_at DESC`)
	if err != nil {
		log.Error("Failed to list contact messages", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}
	return c.JSON(http.StatusOK, messages)
}

// MarkProcessedHandler marks a message as handled. Staff only.
func (h *Handler) MarkProcessedHandler(c echo.Context) error {
	log := logger.Get().WithComponent("contact")

	res, err := h.db.ExecContext(c.Request().Context(),
		h.db.Rebind(`UPDATE contact_messages SET processed = ?, handled_at = ? WHERE id = ?`),
		true, time.Now().UTC(), c.Param("id"))
	if err != nil {
		log.Error("Failed to mark contact message processed", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeResourceNotFound,
			"Message not found.",
		))
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Message marked as processed"})
}
