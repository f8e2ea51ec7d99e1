package library

import (
	"math"
	"time"
)

// CalculateFine charges rate for every full day between due and returnedAt.
// It returns nil when there is no due date or the book came back on time.
func CalculateFine(due *time.Time, returnedAt time.Time, rate float64) *float64 {
	if due == nil || !returnedAt.After(*due) {
		return nil
	}
	daysLate := math.Floor(returnedAt.Sub(*due).Hours() / 24)
	fine := math.Max(0, daysLate) * rate
	return &fine
}
