package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
)

// Response is the health check payload.
type Response struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Checks    map[string]Check `json:"checks,omitempty"`
}

// Check is an individual dependency check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// StatsResponse carries runtime statistics for monitoring.
type StatsResponse struct {
	GoVersion    string `json:"go_version"`
	NumCPU       int    `json:"num_cpu"`
	NumGoroutine int    `json:"num_goroutine"`
	MemAlloc     uint64 `json:"mem_alloc_bytes"`
	MemSys       uint64 `json:"mem_sys_bytes"`
	Uptime       string `json:"uptime,omitempty"`
}

var startTime = time.Now()

// Handler serves liveness and readiness probes.
type Handler struct {
	db *sqlx.DB
}

// NewHandler creates a health handler on an injected database handle.
func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{db: db}
}

// LivenessHandler returns 200 while the process is running.
func (h *Handler) LivenessHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, Response{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// ReadinessHandler returns 200 when the database is reachable, 503 otherwise.
// The catalog endpoints keep serving the fallback snapshot either way.
func (h *Handler) ReadinessHandler(c echo.Context) error {
	checks := map[string]Check{"database": h.checkDatabase(c.Request().Context())}

	status, httpStatus := "ok", http.StatusOK
	if checks["database"].Status != "ok" {
		status, httpStatus = "degraded", http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, Response{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	})
}

// StatsHandler returns runtime statistics.
func (h *Handler) StatsHandler(c echo.Context) error {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return c.JSON(http.StatusOK, StatsResponse{
		GoVersion:    runtime.Version(),
		NumCPU:       runtime.NumCPU(),
		NumGoroutine: runtime.NumGoroutine(),
		MemAlloc:     m.Alloc,
		MemSys:       m.Sys,
		Uptime:       time.Since(startTime).Round(time.Second).String(),
	})
}

func (h *Handler) checkDatabase(ctx context.Context) Check {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	err := h.db.PingContext(ctx)
	latency := time.Since(start).String()

	if err != nil {
		return Check{Status: "error", Message: "Database connection failed", Latency: latency}
	}
	return Check{Status: "ok", Latency: latency}
}
