// Package publishers provides database operations for publishers.
package publishers

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

func (r *Repository) List() ([]entities.Publisher, error) {
	var publishers []entities.Publisher
	err := r.db.Order("id ASC").Find(&publishers).Error
	return publishers, err
}

func (r *Repository) GetByID(id uint) (*entities.Publisher, error) {
	var publisher entities.Publisher
	if err := r.db.First(&publisher, id).Error; err != nil {
		return nil, err
	}
	return &publisher, nil
}

func (r *Repository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Publisher{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *Repository) Create(publisher *entities.Publisher) error {
	return r.db.Create(publisher).Error
}

func (r *Repository) Update(publisher *entities.Publisher) error {
	return r.db.Save(publisher).Error
}

func (r *Repository) Delete(id uint) (bool, error) {
	result := r.db.Delete(&entities.Publisher{}, id)
	return result.RowsAffected > 0, result.Error
}
