// Package reviews provides database operations for reviews.
package reviews

import (
	"gorm.io/gorm"

	"github.com/Tocea2003/Practica-BookSystem/internal/entities"
)

// Repository handles review persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new reviews repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List() ([]entities.Review, error) {
	var reviews []entities.Review
	err := r.db.Order("id ASC").Find(&reviews).Error
	return reviews, err
}

func (r *Repository) GetByID(id uint) (*entities.Review, error) {
	var review entities.Review
	if err := r.db.First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// ListByAuthor returns an author's reviews, newest first.
func (r *Repository) ListByAuthor(authorID uint) ([]entities.Review, error) {
	var reviews []entities.Review
	err := r.db.Where("author_id = ?", authorID).Order("review_date DESC, id DESC").Find(&reviews).Error
	return reviews, err
}

func (r *Repository) Create(review *entities.Review) error {
	return r.db.Omit("Author", "Book", "User").Create(review).Error
}

func (r *Repository) Update(review *entities.Review) error {
	return r.db.Omit("Author", "Book", "User").Save(review).Error
}

func (r *Repository) Delete(id uint) (bool, error) {
	result := r.db.Delete(&entities.Review{}, id)
	return result.RowsAffected > 0, result.Error
}
