// Package library holds the business rules of the library: the reservation
// lifecycle with its fines, and the catalog, member and review records
// around it.
//
// Services take a *gorm.DB and open one transaction per operation that
// writes. Repositories are built on that transaction so existence checks,
// delete guards and the write itself share a snapshot.
package library

import (
	"context"
	"time"

	"github.com/Tocea2003/Practica-BookSystem/internal/entities"
)

// Auditor records domain events. *audit.Service satisfies it.
type Auditor interface {
	LogReservation(ctx context.Context, action string, reservation *entities.BookReservation)
	LogDelete(ctx context.Context, entityType string, entityID uint, entityName string)
}

type noopAuditor struct{}

func (noopAuditor) LogReservation(context.Context, string, *entities.BookReservation) {}
func (noopAuditor) LogDelete(context.Context, string, uint, string)                  {}

func auditorOrNoop(a Auditor) Auditor {
	if a == nil {
		return noopAuditor{}
	}
	return a
}

// Clock returns the current time. Tests replace it to pin "now".
type Clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}
