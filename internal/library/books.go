package library

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Tocea2003/Practica-BookSystem/internal/database/authors"
	"github.com/Tocea2003/Practica-BookSystem/internal/database/books"
	"github.com/Tocea2003/Practica-BookSystem/internal/database/categories"
	"github.com/Tocea2003/Practica-BookSystem/internal/database/publishers"
	"github.com/Tocea2003/Practica-BookSystem/internal/entities"
	"github.com/Tocea2003/Practica-BookSystem/internal/integrity"
)

type BookInput struct {
	Title         string
	AuthorID      uint
	ISBN          string
	PublishedDate *time.Time
	Genre         string
	Description   string
	Pages         int
	Price         float64
	PublisherID   *uint
	// CategoryIDs that do not exist are skipped.
	CategoryIDs []uint
}

func (in BookInput) validate() error {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return fmt.Errorf("%w: book title is required", ErrInvalidInput)
	case in.Pages < 0:
		return fmt.Errorf("%w: pages must not be negative", ErrInvalidInput)
	case in.Price < 0:
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	return nil
}

// resolveRefs checks the author and publisher and loads the categories.
func (in BookInput) resolveRefs(tx *gorm.DB) ([]entities.Category, error) {
	if ok, err := authors.NewRepository(tx).Exists(in.AuthorID); err != nil {
		return nil, err
	} else if !ok {
		return nil, notFound("author", in.AuthorID)
	}
	if in.PublisherID != nil {
		if ok, err := publishers.NewRepository(tx).Exists(*in.PublisherID); err != nil {
			return nil, err
		} else if !ok {
			return nil, notFound("publisher", *in.PublisherID)
		}
	}
	return categories.NewRepository(tx).GetByIDs(in.CategoryIDs)
}

func (in BookInput) applyTo(b *entities.Book) {
	b.Title = strings.TrimSpace(in.Title)
	b.AuthorID = in.AuthorID
	b.ISBN = in.ISBN
	b.Genre = in.Genre
	b.Description = in.Description
	b.Pages = in.Pages
	b.Price = in.Price
	b.PublisherID = in.PublisherID
	// Stale preloaded relations would shadow the new foreign keys.
	b.Author = entities.Author{}
	b.Publisher = nil
	if in.PublishedDate != nil {
		b.PublishedDate = *in.PublishedDate
	}
}

func (c *CatalogService) ListBooks(ctx context.Context) ([]entities.Book, error) {
	return books.NewRepository(c.db.WithContext(ctx)).List()
}

func (c *CatalogService) GetBook(ctx context.Context, id uint) (*entities.Book, error) {
	book, err := books.NewRepository(c.db.WithContext(ctx)).GetByID(id)
	if err != nil {
		return nil, lookupErr(err, "book", id)
	}
	return book, nil
}

func (c *CatalogService) ListBooksByAuthor(ctx context.Context, authorID uint) ([]entities.Book, error) {
	return books.NewRepository(c.db.WithContext(ctx)).ListByAuthor(authorID)
}

func (c *CatalogService) ListBooksByCategory(ctx context.Context, categoryID uint) ([]entities.Book, error) {
	return books.NewRepository(c.db.WithContext(ctx)).ListByCategory(categoryID)
}

func (c *CatalogService) CreateBook(ctx context.Context, in BookInput) (*entities.Book, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var created *entities.Book
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cats, err := in.resolveRefs(tx)
		if err != nil {
			return err
		}

		book := &entities.Book{Categories: cats}
		in.applyTo(book)

		repo := books.NewRepository(tx)
		if err := repo.Create(book); err != nil {
			return err
		}
		created, err = repo.GetByID(book.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateBook overwrites the book and replaces its category links.
func (c *CatalogService) UpdateBook(ctx context.Context, id uint, in BookInput) error {
	if err := in.validate(); err != nil {
		return err
	}

	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := books.NewRepository(tx)
		book, err := repo.GetByID(id)
		if err != nil {
			return lookupErr(err, "book", id)
		}

		cats, err := in.resolveRefs(tx)
		if err != nil {
			return err
		}

		in.applyTo(book)
		if err := repo.Update(book); err != nil {
			return err
		}
		return repo.ReplaceCategories(book, cats)
	})
}

// DeleteBook fails with a conflict while the book has reservations or reviews.
// Category links are removed together with the book.
func (c *CatalogService) DeleteBook(ctx context.Context, id uint) error {
	return guardedDelete(ctx, c.db, c.guard, c.auditor, integrity.EntityBook, id,
		func(tx *gorm.DB) (string, error) {
			book, err := books.NewRepository(tx).GetByID(id)
			if err != nil {
				return "", err
			}
			return book.Title, nil
		},
		func(tx *gorm.DB) (bool, error) {
			return books.NewRepository(tx).Delete(id)
		},
	)
}
