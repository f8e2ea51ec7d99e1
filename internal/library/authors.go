package library

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Tocea2003/Practica-BookSystem/internal/database/authors"
	"github.com/Tocea2003/Practica-BookSystem/internal/entities"
	"github.com/Tocea2003/Practica-BookSystem/internal/integrity"
)

type AuthorInput struct {
	Name        string
	Biography   string
	BirthDate   *time.Time
	Nationality string
}

func (in AuthorInput) apply(a *entities.Author) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: author name is required", ErrInvalidInput)
	}
	a.Name = strings.TrimSpace(in.Name)
	a.Biography = in.Biography
	a.Nationality = in.Nationality
	if in.BirthDate != nil {
		a.BirthDate = *in.BirthDate
	}
	return nil
}

func (c *CatalogService) ListAuthors(ctx context.Context) ([]entities.Author, error) {
	return authors.NewRepository(c.db.WithContext(ctx)).List()
}

func (c *CatalogService) GetAuthor(ctx context.Context, id uint) (*entities.Author, error) {
	author, err := authors.NewRepository(c.db.WithContext(ctx)).GetByID(id)
	if err != nil {
		return nil, lookupErr(err, "author", id)
	}
	return author, nil
}

func (c *CatalogService) CreateAuthor(ctx context.Context, in AuthorInput) (*entities.Author, error) {
	author := &entities.Author{}
	if err := in.apply(author); err != nil {
		return nil, err
	}
	if err := authors.NewRepository(c.db.WithContext(ctx)).Create(author); err != nil {
		return nil, err
	}
	return author, nil
}

func (c *CatalogService) UpdateAuthor(ctx context.Context, id uint, in AuthorInput) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := authors.NewRepository(tx)
		author, err := repo.GetByID(id)
		if err != nil {
			return lookupErr(err, "author", id)
		}
		if err := in.apply(author); err != nil {
			return err
		}
		return repo.Update(author)
	})
}

// DeleteAuthor fails with a conflict while the author has books or reviews.
func (c *CatalogService) DeleteAuthor(ctx context.Context, id uint) error {
	return guardedDelete(ctx, c.db, c.guard, c.auditor, integrity.EntityAuthor, id,
		func(tx *gorm.DB) (string, error) {
			author, err := authors.NewRepository(tx).GetByID(id)
			if err != nil {
				return "", err
			}
			return author.Name, nil
		},
		func(tx *gorm.DB) (bool, error) {
			return authors.NewRepository(tx).Delete(id)
		},
	)
}
