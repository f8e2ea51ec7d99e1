// Package reservations provides database operations for book reservations.
//
// Reads preload the reserved book and the reserving user so the HTTP layer
// can show titles and names next to the IDs.
package reservations

import (
	"gorm.io/gorm"

	"github.com/Tocea2003/Practica-BookSystem/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) withRelations() *gorm.DB {
	return r.db.Preload("Book").Preload("User")
}

// List retrieves every reservation ordered by ID.
func (r *Repository) List() ([]entities.BookReservation, error) {
	var reservations []entities.BookReservation
	err := r.withRelations().Order("id ASC").Find(&reservations).Error
	return reservations, err
}

// GetByID returns gorm.ErrRecordNotFound when the reservation does not exist.
func (r *Repository) GetByID(id uint) (*entities.BookReservation, error) {
	var reservation entities.BookReservation
	if err := r.withRelations().First(&reservation, id).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *Repository) ListByUser(userID uint) ([]entities.BookReservation, error) {
	var reservations []entities.BookReservation
	err := r.withRelations().Where("user_id = ?", userID).Order("id ASC").Find(&reservations).Error
	return reservations, err
}

func (r *Repository) ListByBook(bookID uint) ([]entities.BookReservation, error) {
	var reservations []entities.BookReservation
	err := r.withRelations().Where("book_id = ?", bookID).Order("id ASC").Find(&reservations).Error
	return reservations, err
}

// ListOpen retrieves reservations that have not been returned yet.
func (r *Repository) ListOpen() ([]entities.BookReservation, error) {
	var reservations []entities.BookReservation
	err := r.withRelations().
		Where("status IN ?", []entities.ReservationStatus{
			entities.ReservationStatusReserved,
			entities.ReservationStatusBorrowed,
		}).
		Order("due_date ASC").
		Find(&reservations).Error
	return reservations, err
}

func (r *Repository) Create(reservation *entities.BookReservation) error {
	return r.db.Omit("Book", "User").Create(reservation).Error
}

// Update writes every column of the reservation, relations excluded.
func (r *Repository) Update(reservation *entities.BookReservation) error {
	return r.db.Omit("Book", "User").Save(reservation).Error
}

func (r *Repository) Delete(id uint) (bool, error) {
	result := r.db.Delete(&entities.BookReservation{}, id)
	return result.RowsAffected > 0, result.Error
}
