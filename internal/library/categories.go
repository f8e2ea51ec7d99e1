package library

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Tocea2003/Practica-BookSystem/internal/database/categories"
	"github.com/Tocea2003/Practica-BookSystem/internal/entities"
	"github.com/Tocea2003/Practica-BookSystem/internal/integrity"
)

type CategoryInput struct {
	Name        string
	Description string
}

func (in CategoryInput) apply(cat *entities.Category) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: category name is required", ErrInvalidInput)
	}
	cat.Name = strings.TrimSpace(in.Name)
	cat.Description = in.Description
	return nil
}

func (c *CatalogService) ListCategories(ctx context.Context) ([]entities.Category, error) {
	return categories.NewRepository(c.db.WithContext(ctx)).List()
}

func (c *CatalogService) GetCategory(ctx context.Context, id uint) (*entities.Category, error) {
	category, err := categories.NewRepository(c.db.WithContext(ctx)).GetByID(id)
	if err != nil {
		return nil, lookupErr(err, "category", id)
	}
	return category, nil
}

func (c *CatalogService) CreateCategory(ctx context.Context, in CategoryInput) (*entities.Category, error) {
	category := &entities.Category{}
	if err := in.apply(category); err != nil {
		return nil, err
	}
	if err := categories.NewRepository(c.db.WithContext(ctx)).Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (c *CatalogService) UpdateCategory(ctx context.Context, id uint, in CategoryInput) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := categories.NewRepository(tx)
		category, err := repo.GetByID(id)
		if err != nil {
			return lookupErr(err, "category", id)
		}
		if err := in.apply(category); err != nil {
			return err
		}
		return repo.Update(category)
	})
}

// DeleteCategory fails with a conflict while any book is filed under it.
func (c *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	return guardedDelete(ctx, c.db, c.guard, c.auditor, integrity.EntityCategory, id,
		func(tx *gorm.DB) (string, error) {
			category, err := categories.NewRepository(tx).GetByID(id)
			if err != nil {
				return "", err
			}
			return category.Name, nil
		},
		func(tx *gorm.DB) (bool, error) {
			return categories.NewRepository(tx).Delete(id)
		},
	)
}
