// Package categories provides database operations for book categories.
package categories

import (
	"gorm.io/gorm"

	"github.com/Tocea2003/Practica-BookSystem/internal/entities"
)

// Repository handles category persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new categories repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List() ([]entities.Category, error) {
	var categories []entities.Category
	err := r.db.Order("id ASC").Find(&categories).Error
	return categories, err
}

func (r *Repository) GetByID(id uint) (*entities.Category, error) {
	var category entities.Category
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// GetByIDs returns the categories that exist among ids. Unknown IDs are skipped.
func (r *Repository) GetByIDs(ids []uint) ([]entities.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var categories []entities.Category
	err := r.db.Where("id IN ?", ids).Order("id ASC").Find(&categories).Error
	return categories, err
}

func (r *Repository) Create(category *entities.Category) error {
	return r.db.Create(category).Error
}

func (r *Repository) Update(category *entities.Category) error {
	return r.db.Save(category).Error
}

func (r *Repository) Delete(id uint) (bool, error) {
	result := r.db.Delete(&entities.Category{}, id)
	return result.RowsAffected > 0, result.Error
}
