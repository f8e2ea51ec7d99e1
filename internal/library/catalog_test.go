package library

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tocea2003/Practica-BookSystem/internal/database/dbtest"
	"github.com/Tocea2003/Practica-BookSystem/internal/entities"
	"github.com/Tocea2003/Practica-BookSystem/internal/integrity"
)

func count(t *testing.T, f *fixture, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.DB.Model(model).Count(&n).Error)
	return n
}

func TestDeleteGuards_Conflict(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	publisher := entities.Publisher{Name: "Allen & Unwin"}
	require.NoError(t, f.db.DB.Create(&publisher).Error)
	category := entities.Category{Name: "Fantasy"}
	require.NoError(t, f.db.DB.Create(&category).Error)
	require.NoError(t, f.db.DB.Model(&f.book).Update("publisher_id", publisher.ID).Error)
	require.NoError(t, f.db.DB.Model(&f.book).Association("Categories").Append(&category))

	_, err := f.svc.Create(ctx, CreateReservationInput{BookID: f.book.ID, UserID: f.user.ID})
	require.NoError(t, err)

	catalog := NewCatalogService(f.db.DB, nil, f.auditor)
	members := NewUserService(f.db.DB, nil, f.auditor)

	tests := []struct {
		name     string
		del      func() error
		relation string
	}{
		{"book with reservation", func() error { return catalog.DeleteBook(ctx, f.book.ID) }, "reservations"},
		{"user with reservation", func() error { return members.Delete(ctx, f.user.ID) }, "reservations"},
		{"author with book", func() error { return catalog.DeleteAuthor(ctx, f.book.AuthorID) }, "books"},
		{"publisher with book", func() error { return catalog.DeletePublisher(ctx, publisher.ID) }, "books"},
		{"category with book", func() error { return catalog.DeleteCategory(ctx, category.ID) }, "books"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.del()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConflict)

			var conflict *integrity.ConflictError
			require.ErrorAs(t, err, &conflict)
			assert.Equal(t, tt.relation, conflict.Relation)
		})
	}

	assert.Equal(t, int64(1), count(t, f, &entities.Book{}))
	assert.Equal(t, int64(1), count(t, f, &entities.User{}))
	assert.Equal(t, int64(1), count(t, f, &entities.Author{}))
	assert.Equal(t, int64(1), count(t, f, &entities.Publisher{}))
	assert.Equal(t, int64(1), count(t, f, &entities.Category{}))
	assert.Equal(t, int64(1), count(t, f, &entities.BookReservation{}))
	assert.Empty(t, f.auditor.deletes)
}

func TestDeleteGuards_NoDependents(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	catalog := NewCatalogService(f.db.DB, nil, f.auditor)
	members := NewUserService(f.db.DB, nil, f.auditor)

	category, err := catalog.CreateCategory(ctx, CategoryInput{Name: "Classics"})
	require.NoError(t, err)
	publisher, err := catalog.CreatePublisher(ctx, PublisherInput{Name: "Penguin"})
	require.NoError(t, err)

	// The book's only dependents are category links, which go with it.
	require.NoError(t, f.db.DB.Model(&f.book).Association("Categories").Append(category))
	require.NoError(t, catalog.DeleteBook(ctx, f.book.ID))

	require.NoError(t, catalog.DeleteCategory(ctx, category.ID))
	require.NoError(t, catalog.DeletePublisher(ctx, publisher.ID))
	require.NoError(t, catalog.DeleteAuthor(ctx, f.book.AuthorID))
	require.NoError(t, members.Delete(ctx, f.user.ID))

	for _, model := range []any{&entities.Book{}, &entities.Category{}, &entities.Publisher{}, &entities.Author{}, &entities.User{}} {
		assert.Zero(t, count(t, f, model), "%T", model)
	}
	var links int64
	require.NoError(t, f.db.DB.Table(entities.BookCategoriesTable).Count(&links).Error)
	assert.Zero(t, links)

	assert.Equal(t, []string{"book", "category", "publisher", "author", "user"}, f.auditor.deletes)

	t.Run("deleting again is not found", func(t *testing.T) {
		assert.ErrorIs(t, catalog.DeleteBook(ctx, f.book.ID), ErrNotFound)
		assert.ErrorIs(t, members.Delete(ctx, f.user.ID), ErrNotFound)
	})
}

func TestCatalogService_Books(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewSeeded(t)
	catalog := NewCatalogService(db.DB, nil, nil)

	authors, err := catalog.ListAuthors(ctx)
	require.NoError(t, err)
	require.Len(t, authors, 3)
	categories, err := catalog.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 5)

	created, err := catalog.CreateBook(ctx, BookInput{
		Title:       "The Two Towers",
		AuthorID:    authors[2].ID,
		Pages:       352,
		Price:       49.99,
		CategoryIDs: []uint{categories[0].ID, 9999},
	})
	require.NoError(t, err)
	assert.Equal(t, "J.R.R. Tolkien", created.Author.Name)
	require.Len(t, created.Categories, 1, "unknown category ids are skipped")

	byAuthor, err := catalog.ListBooksByAuthor(ctx, authors[2].ID)
	require.NoError(t, err)
	assert.Len(t, byAuthor, 2)

	t.Run("update replaces categories and publisher", func(t *testing.T) {
		publishers, err := catalog.ListPublishers(ctx)
		require.NoError(t, err)

		err = catalog.UpdateBook(ctx, created.ID, BookInput{
			Title:       "The Two Towers",
			AuthorID:    authors[2].ID,
			Pages:       352,
			Price:       44.5,
			PublisherID: &publishers[0].ID,
			CategoryIDs: []uint{categories[1].ID, categories[4].ID},
		})
		require.NoError(t, err)

		book, err := catalog.GetBook(ctx, created.ID)
		require.NoError(t, err)
		assert.InDelta(t, 44.5, book.Price, 0.001)
		require.NotNil(t, book.Publisher)
		assert.Equal(t, publishers[0].Name, book.Publisher.Name)
		assert.Len(t, book.Categories, 2)

		inFantasy, err := catalog.ListBooksByCategory(ctx, categories[0].ID)
		require.NoError(t, err)
		for _, b := range inFantasy {
			assert.NotEqual(t, created.ID, b.ID)
		}
	})

	t.Run("missing author", func(t *testing.T) {
		_, err := catalog.CreateBook(ctx, BookInput{Title: "Orphan", AuthorID: 999})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing publisher", func(t *testing.T) {
		missing := uint(999)
		_, err := catalog.CreateBook(ctx, BookInput{Title: "Orphan", AuthorID: authors[0].ID, PublisherID: &missing})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("blank title", func(t *testing.T) {
		_, err := catalog.CreateBook(ctx, BookInput{Title: "  ", AuthorID: authors[0].ID})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("author with reviews only is still guarded", func(t *testing.T) {
		author, err := catalog.CreateAuthor(ctx, AuthorInput{Name: "Reviewed Author"})
		require.NoError(t, err)
		require.NoError(t, db.DB.Create(&entities.Review{
			ReviewerName: "Anonymous", Content: "Great", Rating: 5, AuthorID: author.ID,
		}).Error)

		err = catalog.DeleteAuthor(ctx, author.ID)
		var conflict *integrity.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "reviews", conflict.Relation)
	})
}

func TestCatalogService_UpdateAuthor(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	catalog := NewCatalogService(db.DB, nil, nil)

	author, err := catalog.CreateAuthor(ctx, AuthorInput{Name: "Frank Herbert", Nationality: "American"})
	require.NoError(t, err)

	birth := day(1920, 10, 8)
	require.NoError(t, catalog.UpdateAuthor(ctx, author.ID, AuthorInput{
		Name:        "Frank Herbert",
		Biography:   "Author of Dune.",
		BirthDate:   &birth,
		Nationality: "American",
	}))

	got, err := catalog.GetAuthor(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "Author of Dune.", got.Biography)
	assert.Equal(t, "1920-10-08", FormatDate(got.BirthDate))

	assert.ErrorIs(t, catalog.UpdateAuthor(ctx, 999, AuthorInput{Name: "Nobody"}), ErrNotFound)
	assert.ErrorIs(t, catalog.UpdateAuthor(ctx, author.ID, AuthorInput{}), ErrInvalidInput)
}
