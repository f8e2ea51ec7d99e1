// Package users provides database operations for library members.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetByEmail("user1@email.com")
package users

import (
	"gorm.io/gorm"

	"github.com/Tocea2003/Practica-BookSystem/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List retrieves all users ordered by ID.
func (r *Repository) List() ([]entities.User, error) {
	var users []entities.User
	err := r.db.Order("id ASC").Find(&users).Error
	return users, err
}

// GetByID retrieves a user by ID.
func (r *Repository) GetByID(id uint) (*entities.User, error) {
	var user entities.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email address (case-insensitive).
func (r *Repository) GetByEmail(email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Exists reports whether a user with the given ID is stored.
func (r *Repository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Create inserts a new user.
func (r *Repository) Create(user *entities.User) error {
	return r.db.Create(user).Error
}

// Update writes every column of user.
func (r *Repository) Update(user *entities.User) error {
	return r.db.Save(user).Error
}

// Delete removes a user and reports whether a row was deleted.
func (r *Repository) Delete(id uint) (bool, error) {
	result := r.db.Delete(&entities.User{}, id)
	return result.RowsAffected > 0, result.Error
}
