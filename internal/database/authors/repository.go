// Package authors provides database operations for authors.
//
// # Usage
//
//	repo := authors.NewRepository(db)
//	author, err := repo.GetByID(1)
package authors

import (
	"gorm.io/gorm"

	"github.com/Tocea2003/Practica-BookSystem/internal/entities"
)

// Repository handles author persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns all authors ordered by ID.
func (r *Repository) List() ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.Order("id ASC").Find(&authors).Error
	return authors, err
}

// GetByID returns gorm.ErrRecordNotFound when the author does not exist.
func (r *Repository) GetByID(id uint) (*entities.Author, error) {
	var author entities.Author
	if err := r.db.First(&author, id).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

func (r *Repository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Author{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *Repository) Create(author *entities.Author) error {
	return r.db.Create(author).Error
}

// Update writes every column of author.
func (r *Repository) Update(author *entities.Author) error {
	return r.db.Save(author).Error
}

// Delete removes the author and reports whether a row was deleted.
func (r *Repository) Delete(id uint) (bool, error) {
	result := r.db.Delete(&entities.Author{}, id)
	return result.RowsAffected > 0, result.Error
}
