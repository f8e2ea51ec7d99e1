package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/Tocea2003/Practica-BookSystem/internal/library"
	"github.com/Tocea2003/Practica-BookSystem/internal/reports"
)

const QueueOverdueReport = "overdue_report"

// OverdueLister lists open reservations past their due date.
type OverdueLister interface {
	Overdue(ctx context.Context, now time.Time) ([]reports.OverdueReservation, error)
}

// OverdueReportTask logs every open reservation that is past due as of AsOf
// (yyyy-MM-dd), or as of the time the task runs when AsOf is empty.
type OverdueReportTask struct {
	AsOf string `json:"as_of,omitempty"`
}

// Config returns the queue configuration for overdue reports.
func (t OverdueReportTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        QueueOverdueReport,
		MaxAttempts: 2,
		Backoff:     time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// OverdueReportProcessor creates a processor function for OverdueReportTask.
// now and logger may be nil.
func OverdueReportProcessor(lister OverdueLister, logger MaintenanceLogger, now func() time.Time) backlite.QueueProcessor[OverdueReportTask] {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return func(ctx context.Context, task OverdueReportTask) error {
		if lister == nil {
			return fmt.Errorf("overdue lister not configured")
		}

		asOf := now()
		if task.AsOf != "" {
			parsed, err := library.ParseDate(task.AsOf)
			if err != nil {
				return fmt.Errorf("overdue report: %w", err)
			}
			asOf = parsed
		}

		overdue, err := lister.Overdue(ctx, asOf)
		if err != nil {
			if logger != nil {
				logger.LogMaintenance("overdue_report", "Overdue report failed", nil, err)
			}
			return fmt.Errorf("overdue report: %w", err)
		}

		var accrued float64
		for _, o := range overdue {
			accrued += o.AccruedFine
			log.Printf("[TASK] Overdue: reservation %d, %q borrowed by %s %s, due %s, %d days late (fine so far %.2f)",
				o.ID, o.BookTitle, o.FirstName, o.LastName, library.FormatDate(o.DueDate), o.DaysOverdue, o.AccruedFine)
		}
		log.Printf("[TASK] Overdue report as of %s: %d reservations", library.FormatDate(asOf), len(overdue))

		if logger != nil {
			logger.LogMaintenance("overdue_report",
				fmt.Sprintf("%d overdue reservations as of %s", len(overdue), library.FormatDate(asOf)),
				map[string]any{"overdue": len(overdue), "accrued_fines": accrued}, nil)
		}
		return nil
	}
}

// NewOverdueReportQueue creates a backlite queue for overdue reports.
func NewOverdueReportQueue(lister OverdueLister, logger MaintenanceLogger) backlite.Queue {
	return backlite.NewQueue(OverdueReportProcessor(lister, logger, nil))
}
