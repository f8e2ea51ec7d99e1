package library

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/Tocea2003/Practica-BookSystem/internal/database/books"
	"github.com/Tocea2003/Practica-BookSystem/internal/database/reservations"
	"github.com/Tocea2003/Practica-BookSystem/internal/database/users"
	"github.com/Tocea2003/Practica-BookSystem/internal/entities"
)

const (
	ActionReservationCreate = "reservation_create"
	ActionReservationUpdate = "reservation_update"
	ActionReservationReturn = "reservation_return"
	ActionReservationDelete = "reservation_delete"
)

type CreateReservationInput struct {
	BookID  uint
	UserID  uint
	DueDate *time.Time
	Status  entities.ReservationStatus // Empty means Reserved
}

// UpdateReservationInput overwrites only the fields that are non-nil.
type UpdateReservationInput struct {
	DueDate    *time.Time
	ReturnDate *time.Time
	Status     *entities.ReservationStatus
	Fine       *float64
}

// ReservationService manages the reservation lifecycle.
type ReservationService struct {
	db       *gorm.DB
	auditor  Auditor
	now      Clock
	fineRate float64
}

type ReservationOption func(*ReservationService)

// WithClock replaces the wall clock used for reservation and return dates.
func WithClock(now Clock) ReservationOption {
	return func(s *ReservationService) { s.now = now }
}

func WithAuditor(a Auditor) ReservationOption {
	return func(s *ReservationService) { s.auditor = auditorOrNoop(a) }
}

func NewReservationService(db *gorm.DB, fineRate float64, opts ...ReservationOption) *ReservationService {
	s := &ReservationService{
		db:       db,
		auditor:  noopAuditor{},
		now:      utcNow,
		fineRate: fineRate,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ReservationService) List(ctx context.Context) ([]entities.BookReservation, error) {
	return reservations.NewRepository(s.db.WithContext(ctx)).List()
}

func (s *ReservationService) Get(ctx context.Context, id uint) (*entities.BookReservation, error) {
	r, err := reservations.NewRepository(s.db.WithContext(ctx)).GetByID(id)
	if err != nil {
		return nil, lookupErr(err, "reservation", id)
	}
	return r, nil
}

// ListByUser returns an empty list for unknown users.
func (s *ReservationService) ListByUser(ctx context.Context, userID uint) ([]entities.BookReservation, error) {
	return reservations.NewRepository(s.db.WithContext(ctx)).ListByUser(userID)
}

// ListByBook returns an empty list for unknown books.
func (s *ReservationService) ListByBook(ctx context.Context, bookID uint) ([]entities.BookReservation, error) {
	return reservations.NewRepository(s.db.WithContext(ctx)).ListByBook(bookID)
}

// Create checks that the book and user exist and stores a new reservation
// dated now. Nothing is written when either reference is missing.
func (s *ReservationService) Create(ctx context.Context, in CreateReservationInput) (*entities.BookReservation, error) {
	status := in.Status
	if status == "" {
		status = entities.ReservationStatusReserved
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	var created *entities.BookReservation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if ok, err := books.NewRepository(tx).Exists(in.BookID); err != nil {
			return err
		} else if !ok {
			return notFound("book", in.BookID)
		}
		if ok, err := users.NewRepository(tx).Exists(in.UserID); err != nil {
			return err
		} else if !ok {
			return notFound("user", in.UserID)
		}

		reservation := &entities.BookReservation{
			BookID:          in.BookID,
			UserID:          in.UserID,
			ReservationDate: s.now(),
			DueDate:         in.DueDate,
			Status:          status,
		}
		repo := reservations.NewRepository(tx)
		if err := repo.Create(reservation); err != nil {
			return err
		}

		var err error
		created, err = repo.GetByID(reservation.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.auditor.LogReservation(ctx, ActionReservationCreate, created)
	return created, nil
}

// Update overwrites the supplied fields. A status change must follow the
// lifecycle; see entities.ReservationStatus.CanTransitionTo.
func (s *ReservationService) Update(ctx context.Context, id uint, in UpdateReservationInput) error {
	if in.Status != nil && !in.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, *in.Status)
	}
	if in.Fine != nil && *in.Fine < 0 {
		return fmt.Errorf("%w: fine must not be negative", ErrInvalidInput)
	}

	var updated *entities.BookReservation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := reservations.NewRepository(tx)
		reservation, err := repo.GetByID(id)
		if err != nil {
			return lookupErr(err, "reservation", id)
		}

		if in.Status != nil {
			if !reservation.Status.CanTransitionTo(*in.Status) {
				return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, reservation.Status, *in.Status)
			}
			reservation.Status = *in.Status
		}
		if in.DueDate != nil {
			reservation.DueDate = in.DueDate
		}
		if in.ReturnDate != nil {
			reservation.ReturnDate = in.ReturnDate
		}
		if in.Fine != nil {
			reservation.Fine = in.Fine
		}

		updated = reservation
		return repo.Update(reservation)
	})
	if err != nil {
		return err
	}

	s.auditor.LogReservation(ctx, ActionReservationUpdate, updated)
	return nil
}

// Return closes the reservation: it stamps the return date, marks it
// Returned and charges a fine when the due date has passed. A reservation
// can be returned once; later calls fail with ErrAlreadyReturned and leave
// the stored fine untouched.
func (s *ReservationService) Return(ctx context.Context, id uint) (*entities.BookReservation, error) {
	var returned *entities.BookReservation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := reservations.NewRepository(tx)
		reservation, err := repo.GetByID(id)
		if err != nil {
			return lookupErr(err, "reservation", id)
		}
		if reservation.Status == entities.ReservationStatusReturned {
			return ErrAlreadyReturned
		}

		now := s.now()
		reservation.ReturnDate = &now
		reservation.Status = entities.ReservationStatusReturned
		if fine := CalculateFine(reservation.DueDate, now, s.fineRate); fine != nil {
			reservation.Fine = fine
		}

		returned = reservation
		return repo.Update(reservation)
	})
	if err != nil {
		return nil, err
	}

	if returned.Fine != nil && *returned.Fine > 0 {
		log.Printf("Reservation: %d returned %s late, fine %.2f", returned.ID,
			returnedLate(returned), *returned.Fine)
	}
	s.auditor.LogReservation(ctx, ActionReservationReturn, returned)
	return returned, nil
}

func returnedLate(r *entities.BookReservation) string {
	if r.DueDate == nil || r.ReturnDate == nil {
		return "0d"
	}
	days := int(r.ReturnDate.Sub(*r.DueDate).Hours() / 24)
	return fmt.Sprintf("%dd", days)
}

func (s *ReservationService) Delete(ctx context.Context, id uint) error {
	var deleted *entities.BookReservation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := reservations.NewRepository(tx)
		reservation, err := repo.GetByID(id)
		if err != nil {
			return lookupErr(err, "reservation", id)
		}
		deleted = reservation
		_, err = repo.Delete(id)
		return err
	})
	if err != nil {
		return err
	}

	s.auditor.LogReservation(ctx, ActionReservationDelete, deleted)
	return nil
}
