package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Tocea2003/Practica-BookSystem/internal/library"
	"github.com/Tocea2003/Practica-BookSystem/internal/reports"
)

// StatsReader provides the read-only reservation reports.
type StatsReader interface {
	Summary(ctx context.Context, now time.Time) (*reports.Summary, error)
	Overdue(ctx context.Context, now time.Time) ([]reports.OverdueReservation, error)
}

type StatsController struct {
	reports  StatsReader
	currency string
	now      func() time.Time
}

func NewStatsController(reports StatsReader, currency string) *StatsController {
	return &StatsController{
		reports:  reports,
		currency: currency,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

type StatsResponse struct {
	*reports.Summary
	Currency string `json:"currency,omitempty"`
	AsOf     string `json:"asOf"`
}

type OverdueDTO struct {
	ID          uint    `json:"id"`
	BookID      uint    `json:"bookId"`
	BookTitle   string  `json:"bookTitle"`
	UserID      uint    `json:"userId"`
	UserName    string  `json:"userName"`
	Status      string  `json:"status"`
	DueDate     string  `json:"dueDate"`
	DaysOverdue int     `json:"daysOverdue"`
	AccruedFine float64 `json:"accruedFine"`
}

func (sc *StatsController) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", sc.Summary)
	rg.GET("/overdue", sc.Overdue)
}

// asOf reads the optional ?date= query parameter, defaulting to now.
func (sc *StatsController) asOf(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return sc.now(), true
	}
	t, err := library.ParseDate(raw)
	if err != nil {
		respondBadRequest(c, "invalid date")
		return time.Time{}, false
	}
	return t, true
}

// Summary handles GET /api/stats
// Returns catalog counts, reservations grouped by status, and the number of
// open reservations that are past due.
func (sc *StatsController) Summary(c *gin.Context) {
	now, ok := sc.asOf(c)
	if !ok {
		return
	}
	summary, err := sc.reports.Summary(c.Request.Context(), now)
	if err != nil {
		respondInternalError(c, err, "stats summary")
		return
	}
	c.JSON(http.StatusOK, StatsResponse{
		Summary:  summary,
		Currency: sc.currency,
		AsOf:     library.FormatDate(now),
	})
}

// Overdue handles GET /api/stats/overdue
// Lists open reservations past due with the fine a return would charge.
// Nothing is written.
func (sc *StatsController) Overdue(c *gin.Context) {
	now, ok := sc.asOf(c)
	if !ok {
		return
	}
	overdue, err := sc.reports.Overdue(c.Request.Context(), now)
	if err != nil {
		respondInternalError(c, err, "overdue report")
		return
	}
	c.JSON(http.StatusOK, mapSlice(overdue, func(o reports.OverdueReservation) OverdueDTO {
		return OverdueDTO{
			ID:          o.ID,
			BookID:      o.BookID,
			BookTitle:   o.BookTitle,
			UserID:      o.UserID,
			UserName:    o.FirstName + " " + o.LastName,
			Status:      o.Status,
			DueDate:     library.FormatDate(o.DueDate),
			DaysOverdue: o.DaysOverdue,
			AccruedFine: o.AccruedFine,
		}
	}))
}
