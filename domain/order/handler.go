package order

import (
	"database/sql"
	"errors"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/lumaxtec/site-backend/domain/content"
	"github.com/lumaxtec/site-backend/pkg/apperrors"
	"github.com/lumaxtec/site-backend/pkg/logger"
)

const defaultPageSize = 50

// Handler serves the order intake and management endpoints.
type Handler struct {
	db *sqlx.DB
}

// NewHandler creates an order handler on an injected database handle.
func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{db: db}
}

// CreateHandler accepts a product inquiry from the public site.
func (h *Handler) CreateHandler(c echo.Context) error {
	log := logger.Get().WithComponent("order")

	req := new(CreateRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request payload.",
		))
	}

	if strings.TrimSpace(req.CustomerName) == "" {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeMissingField,
			"customerName is required.",
		))
	}
	if _, err := mail.ParseAddress(req.CustomerEmail); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidEmail,
			"A valid customerEmail is required.",
		))
	}
	if len(req.Items) == 0 {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeMissingField,
			"At least one item is required.",
		))
	}
	for _, item := range req.Items {
		if strings.TrimSpace(item.ContentID) == "" || item.Quantity < 1 {
			return apperrors.RespondWithError(c, apperrors.NewBadRequest(
				apperrors.ErrCodeValidationFailed,
				"Each item needs a contentId and a quantity of at least 1.",
			))
		}
	}
	lang, err := content.ParseLanguage(req.Language)
	if err != nil {
		lang = content.LanguageDE
	}

	orderNumber := uuid.New().String()
	now := time.Now().UTC()

	_, err = h.db.ExecContext(c.Request().Context(), h.db.Rebind(`
		INSERT INTO orders (order_number, customer_name, customer_email, company,
		                    phone, language, items, message, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		orderNumber, req.CustomerName, strings.ToLower(strings.TrimSpace(req.CustomerEmail)),
		req.Company, req.Phone, string(lang), ItemList(req.Items), req.Message,
		StatusNew, now, now)
	if err != nil {
		log.Error("Failed to create order", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Failed to submit order.",
			err,
		))
	}

	log.Info("Order created", logger.OrderNumber(orderNumber), logger.Count(len(req.Items)))
	return c.JSON(http.StatusCreated, map[string]string{
		"message":     "Order submitted successfully",
		"orderNumber": orderNumber,
	})
}

// ListHandler returns orders for the admin views, newest first. Staff only.
func (h *Handler) ListHandler(c echo.Context) error {
	log := logger.Get().WithComponent("order")

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	status := c.QueryParam("status")
	if status != "" && !ValidStatus(status) {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Unknown status filter.",
		))
	}

	query := `
		SELECT id, order_number, customer_name, customer_email, company, phone,
		       language, items, message, status, created_at, updated_at
		FROM orders`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, defaultPageSize, (page-1)*defaultPageSize)

	orders := []Order{}
	if err := h.db.SelectContext(c.Request().Context(), &orders, h.db.Rebind(query), args...); err != nil {
		log.Error("Failed to list orders", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}
	return c.JSON(http.StatusOK, orders)
}

// GetHandler returns a single order. Staff only.
func (h *Handler) GetHandler(c echo.Context) error {
	log := logger.Get().WithComponent("order")

	var o Order
	err := h.db.GetContext(c.Request().Context(), &o, h.db.Rebind(`
		SELECT id, order_number, customer_name, customer_email, company, phone,
		       language, items, message, status, created_at, updated_at
		FROM orders WHERE id = ?`), c.Param("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.RespondWithError(c, apperrors.NewNotFound(
				apperrors.ErrCodeOrderNotFound,
				"Order not found.",
			))
		}
		log.Error("Failed to fetch order", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}
	return c.JSON(http.StatusOK, o)
}

// UpdateStatusHandler moves an order to a new status. Staff only.
func (h *Handler) UpdateStatusHandler(c echo.Context) error {
	log := logger.Get().WithComponent("order")

	req := new(UpdateStatusRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request payload.",
		))
	}
	if !ValidStatus(req.Status) {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Status must be one of: new, processing, completed, cancelled.",
		))
	}

	res, err := h.db.ExecContext(c.Request().Context(),
		h.db.Rebind(`UPDATE orders SET status = ?, updated_at = ? WHERE id = ?`),
		req.Status, time.Now().UTC(), c.Param("id"))
	if err != nil {
		log.Error("Failed to update order status", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeOrderNotFound,
			"Order not found.",
		))
	}

	log.Info("Order status updated", logger.String("status", req.Status))
	return c.JSON(http.StatusOK, map[string]string{"message": "Order updated successfully"})
}
