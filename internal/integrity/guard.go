// Package integrity refuses deletes that would leave dangling references.
//
// Each entity has a list of rules naming the tables that point at it. A
// delete is allowed only when none of those tables holds a matching row.
// Guards run inside the caller's transaction so the check and the delete
// see the same snapshot.
package integrity

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Tocea2003/Practica-BookSystem/internal/entities"
)

// ErrConflict matches every *ConflictError via errors.Is.
var ErrConflict = errors.New("conflict")

type Entity string

const (
	EntityAuthor    Entity = "author"
	EntityPublisher Entity = "publisher"
	EntityCategory  Entity = "category"
	EntityBook      Entity = "book"
	EntityUser      Entity = "user"
)

// Rule describes one relation that blocks deleting an entity.
type Rule struct {
	Relation string // Human name of the dependents, e.g. "books"
	Table    string
	Column   string
	Message  string
}

// ConflictError is returned when dependents exist.
type ConflictError struct {
	Entity   Entity
	ID       uint
	Relation string
	Count    int64
	Message  string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// IsConflict reports whether err is (or wraps) a *ConflictError.
func IsConflict(err error) bool {
	var conflict *ConflictError
	return errors.As(err, &conflict)
}

// DefaultRules are the delete restrictions of the library schema.
func DefaultRules() map[Entity][]Rule {
	return map[Entity][]Rule{
		EntityAuthor: {
			{Relation: "books", Table: "books", Column: "author_id",
				Message: "Cannot delete author with existing books. Delete or reassign the books first."},
			{Relation: "reviews", Table: "reviews", Column: "author_id",
				Message: "Cannot delete author with existing reviews. Delete the reviews first."},
		},
		EntityPublisher: {
			{Relation: "books", Table: "books", Column: "publisher_id",
				Message: "Cannot delete publisher with existing books. Delete or reassign the books first."},
		},
		EntityCategory: {
			{Relation: "books", Table: entities.BookCategoriesTable, Column: "category_id",
				Message: "Cannot delete category with existing books. Remove the category from its books first."},
		},
		EntityBook: {
			{Relation: "reservations", Table: "book_reservations", Column: "book_id",
				Message: "Cannot delete book with existing reservations. Delete the reservations first."},
			{Relation: "reviews", Table: "reviews", Column: "book_id",
				Message: "Cannot delete book with existing reviews. Delete the reviews first."},
		},
		EntityUser: {
			{Relation: "reservations", Table: "book_reservations", Column: "user_id",
				Message: "Cannot delete user with existing reservations. Delete the reservations first."},
		},
	}
}

type Guard struct {
	rules map[Entity][]Rule
}

// NewGuard builds a guard over rules. A nil map means DefaultRules.
func NewGuard(rules map[Entity][]Rule) *Guard {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Guard{rules: rules}
}

// Rules returns the rules registered for entity.
func (g *Guard) Rules(entity Entity) []Rule {
	return g.rules[entity]
}

// Check returns a *ConflictError for the first rule with dependents, in
// registration order. Pass the transaction the delete will run in.
func (g *Guard) Check(ctx context.Context, tx *gorm.DB, entity Entity, id uint) error {
	for _, rule := range g.rules[entity] {
		var count int64
		err := tx.WithContext(ctx).
			Table(rule.Table).
			Where(rule.Column+" = ?", id).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("checking %s of %s %d: %w", rule.Relation, entity, id, err)
		}
		if count > 0 {
			return &ConflictError{
				Entity:   entity,
				ID:       id,
				Relation: rule.Relation,
				Count:    count,
				Message:  rule.Message,
			}
		}
	}
	return nil
}
