package library

import (
	"context"

	"gorm.io/gorm"

	"github.com/Tocea2003/Practica-BookSystem/internal/integrity"
)

// CatalogService manages authors, publishers, categories and books.
type CatalogService struct {
	db      *gorm.DB
	guard   *integrity.Guard
	auditor Auditor
}

func NewCatalogService(db *gorm.DB, guard *integrity.Guard, auditor Auditor) *CatalogService {
	if guard == nil {
		guard = integrity.NewGuard(nil)
	}
	return &CatalogService{db: db, guard: guard, auditor: auditorOrNoop(auditor)}
}

// guardedDelete loads the record's display name, refuses the delete when
// the guard finds dependents, and otherwise removes the record. All three
// steps share one transaction.
func guardedDelete(
	ctx context.Context,
	db *gorm.DB,
	guard *integrity.Guard,
	auditor Auditor,
	entity integrity.Entity,
	id uint,
	name func(tx *gorm.DB) (string, error),
	remove func(tx *gorm.DB) (bool, error),
) error {
	var label string
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := name(tx)
		if err != nil {
			return lookupErr(err, string(entity), id)
		}
		label = n

		if err := guard.Check(ctx, tx, entity, id); err != nil {
			return err
		}

		deleted, err := remove(tx)
		if err != nil {
			return err
		}
		if !deleted {
			return notFound(string(entity), id)
		}
		return nil
	})
	if err != nil {
		return err
	}

	auditor.LogDelete(ctx, string(entity), id, label)
	return nil
}
