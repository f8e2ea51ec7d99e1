package library

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Tocea2003/Practica-BookSystem/internal/database/publishers"
	"github.com/Tocea2003/Practica-BookSystem/internal/entities"
	"github.com/Tocea2003/Practica-BookSystem/internal/integrity"
)

type PublisherInput struct {
	Name        string
	Address     string
	Country     string
	FoundedDate *time.Time
	Phone       string
	Email       string
}

func (in PublisherInput) apply(p *entities.Publisher) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: publisher name is required", ErrInvalidInput)
	}
	p.Name = strings.TrimSpace(in.Name)
	p.Address = in.Address
	p.Country = in.Country
	p.Phone = in.Phone
	p.Email = in.Email
	if in.FoundedDate != nil {
		p.FoundedDate = *in.FoundedDate
	}
	return nil
}

func (c *CatalogService) ListPublishers(ctx context.Context) ([]entities.Publisher, error) {
	return publishers.NewRepository(c.db.WithContext(ctx)).List()
}

func (c *CatalogService) GetPublisher(ctx context.Context, id uint) (*entities.Publisher, error) {
	publisher, err := publishers.NewRepository(c.db.WithContext(ctx)).GetByID(id)
	if err != nil {
		return nil, lookupErr(err, "publisher", id)
	}
	return publisher, nil
}

func (c *CatalogService) CreatePublisher(ctx context.Context, in PublisherInput) (*entities.Publisher, error) {
	publisher := &entities.Publisher{}
	if err := in.apply(publisher); err != nil {
		return nil, err
	}
	if err := publishers.NewRepository(c.db.WithContext(ctx)).Create(publisher); err != nil {
		return nil, err
	}
	return publisher, nil
}

func (c *CatalogService) UpdatePublisher(ctx context.Context, id uint, in PublisherInput) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := publishers.NewRepository(tx)
		publisher, err := repo.GetByID(id)
		if err != nil {
			return lookupErr(err, "publisher", id)
		}
		if err := in.apply(publisher); err != nil {
			return err
		}
		return repo.Update(publisher)
	})
}

func (c *CatalogService) DeletePublisher(ctx context.Context, id uint) error {
	return guardedDelete(ctx, c.db, c.guard, c.auditor, integrity.EntityPublisher, id,
		func(tx *gorm.DB) (string, error) {
			publisher, err := publishers.NewRepository(tx).GetByID(id)
			if err != nil {
				return "", err
			}
			return publisher.Name, nil
		},
		func(tx *gorm.DB) (bool, error) {
			return publishers.NewRepository(tx).Delete(id)
		},
	)
}
