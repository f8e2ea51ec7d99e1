package entities

import "time"

type ReservationStatus string

const (
	ReservationStatusReserved ReservationStatus = "Reserved"
	ReservationStatusBorrowed ReservationStatus = "Borrowed"
	ReservationStatusReturned ReservationStatus = "Returned"
)

// AllReservationStatuses lists the statuses in lifecycle order.
var AllReservationStatuses = []ReservationStatus{
	ReservationStatusReserved,
	ReservationStatusBorrowed,
	ReservationStatusReturned,
}

// Valid reports whether s is one of the known statuses.
func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationStatusReserved, ReservationStatusBorrowed, ReservationStatusReturned:
		return true
	}
	return false
}

// CanTransitionTo reports whether a reservation in status s may move to next.
// Writing the current status again is allowed; Returned is terminal.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	if !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	switch s {
	case ReservationStatusReserved:
		return next == ReservationStatusBorrowed || next == ReservationStatusReturned
	case ReservationStatusBorrowed:
		return next == ReservationStatusReturned
	}
	return false
}

// IsOpen reports whether the book is still out (not yet returned).
func (s ReservationStatus) IsOpen() bool {
	return s == ReservationStatusReserved || s == ReservationStatusBorrowed
}

type BookReservation struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	BookID          uint              `gorm:"index;not null" json:"book_id"`
	UserID          uint              `gorm:"index;not null" json:"user_id"`
	ReservationDate time.Time         `gorm:"not null" json:"reservation_date"`
	DueDate         *time.Time        `json:"due_date,omitempty"`
	ReturnDate      *time.Time        `json:"return_date,omitempty"`
	Status          ReservationStatus `gorm:"size:50;index;default:'Reserved'" json:"status"`
	Fine            *float64          `gorm:"type:decimal(10,2)" json:"fine,omitempty"`
	Book            Book              `gorm:"foreignKey:BookID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	User            User              `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

func (BookReservation) TableName() string {
	return "book_reservations"
}

// IsOverdue reports whether the reservation is still open and its due date lies before now.
func (r BookReservation) IsOverdue(now time.Time) bool {
	return r.Status.IsOpen() && r.DueDate != nil && now.After(*r.DueDate)
}
