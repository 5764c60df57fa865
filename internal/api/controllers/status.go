package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v5"

	"github.com/quaketrack/rbfetch/internal/domain"
	"github.com/quaketrack/rbfetch/internal/scheduler"
)

// StatusSource exposes the scheduler's current position.
type StatusSource interface {
	Status() scheduler.Status
}

// WindowIndex is the queryable side of the archive index. May be nil when
// the index is disabled in config.
type WindowIndex interface {
	RecentWindows(limit int) ([]*domain.ArchivedWindow, error)
	CountWindows() (int64, error)
}

type StatusController struct {
	Status StatusSource
	Index  WindowIndex
}

// HandleStatus reports the cursor, backlog and loop settings.
func (ctrl *StatusController) HandleStatus(c *echo.Context) error {
	st := ctrl.Status.Status()

	resp := StatusResponse{
		RunID:          st.RunID,
		Stream:         st.Stream,
		Cursor:         st.Cursor,
		BacklogSeconds: st.Backlog.Seconds(),
		WindowMinutes:  st.Window.Minutes(),
		RetryMinutes:   st.Retry.Minutes(),
	}

	if ctrl.Index != nil {
		if n, err := ctrl.Index.CountWindows(); err == nil {
			resp.WindowsIndexed = n
		}
	}

	return c.JSON(http.StatusOK, resp)
}

// HandleWindows lists recently archived windows from the index.
func (ctrl *StatusController) HandleWindows(c *echo.Context) error {
	if ctrl.Index == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "archive index is disabled"})
	}

	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
		}
		limit = n
	}

	recs, err := ctrl.Index.RecentWindows(limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	resp := make([]WindowResponse, 0, len(recs))
	for _, r := range recs {
		resp = append(resp, WindowResponse{
			RunID:      r.RunID,
			Stream:     r.Stream,
			Start:      r.Window.Start,
			End:        r.Window.End,
			Path:       r.Path,
			Bytes:      r.Bytes,
			RecordedAt: r.RecordedAt,
		})
	}
	return c.JSON(http.StatusOK, resp)
}
