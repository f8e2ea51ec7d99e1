// Package books provides database operations for the book catalog.
//
// Every read preloads the author, publisher and categories so callers can
// render a book without further queries.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	list, err := repo.ListByCategory(3)
package books

import (
	"gorm.io/gorm"

	"github.com/Tocea2003/Practica-BookSystem/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) withRelations() *gorm.DB {
	return r.db.Preload("Author").Preload("Publisher").Preload("Categories", func(db *gorm.DB) *gorm.DB {
		return db.Order("categories.id ASC")
	})
}

// List retrieves all books ordered by ID.
func (r *Repository) List() ([]entities.Book, error) {
	var books []entities.Book
	err := r.withRelations().Order("books.id ASC").Find(&books).Error
	return books, err
}

// GetByID retrieves a book with its relations.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	if err := r.withRelations().First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *Repository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ListByAuthor retrieves the books written by an author.
func (r *Repository) ListByAuthor(authorID uint) ([]entities.Book, error) {
	var books []entities.Book
	err := r.withRelations().Where("author_id = ?", authorID).Order("books.id ASC").Find(&books).Error
	return books, err
}

// ListByCategory retrieves the books linked to a category.
func (r *Repository) ListByCategory(categoryID uint) ([]entities.Book, error) {
	var books []entities.Book
	err := r.withRelations().
		Joins("JOIN "+entities.BookCategoriesTable+" bc ON bc.book_id = books.id").
		Where("bc.category_id = ?", categoryID).
		Order("books.id ASC").
		Find(&books).Error
	return books, err
}

// Create inserts the book and links any categories already set on it.
func (r *Repository) Create(book *entities.Book) error {
	return r.db.Omit("Author", "Publisher", "Categories.*").Create(book).Error
}

// Update saves the book's own columns. Category links are left alone;
// use ReplaceCategories for those.
func (r *Repository) Update(book *entities.Book) error {
	return r.db.Omit("Author", "Publisher", "Categories").Save(book).Error
}

// ReplaceCategories sets the book's category links to exactly categories.
func (r *Repository) ReplaceCategories(book *entities.Book, categories []entities.Category) error {
	if len(categories) == 0 {
		return r.db.Model(book).Association("Categories").Clear()
	}
	return r.db.Model(book).Association("Categories").Replace(categories)
}

// Delete removes the book's category links and then the book itself.
func (r *Repository) Delete(id uint) (bool, error) {
	book := &entities.Book{ID: id}
	if err := r.db.Model(book).Association("Categories").Clear(); err != nil {
		return false, err
	}
	result := r.db.Delete(&entities.Book{}, id)
	return result.RowsAffected > 0, result.Error
}
