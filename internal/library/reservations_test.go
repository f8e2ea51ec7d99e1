package library

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tocea2003/Practica-BookSystem/internal/database"
	"github.com/Tocea2003/Practica-BookSystem/internal/database/dbtest"
	"github.com/Tocea2003/Practica-BookSystem/internal/entities"
)

type recordingAuditor struct {
	mu           sync.Mutex
	reservations []string
	deletes      []string
}

func (a *recordingAuditor) LogReservation(_ context.Context, action string, _ *entities.BookReservation) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reservations = append(a.reservations, action)
}

func (a *recordingAuditor) LogDelete(_ context.Context, entityType string, _ uint, _ string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.deletes = append(a.deletes, entityType)
}

type fixture struct {
	db      *database.Database
	book    entities.Book
	user    entities.User
	auditor *recordingAuditor
	now     time.Time
	svc     *ReservationService
}

// newFixture stores one author, book and user, and a reservation service
// whose clock reads f.now.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		db:      dbtest.New(t),
		auditor: &recordingAuditor{},
		now:     day(2024, time.July, 1),
	}

	author := entities.Author{Name: "J.R.R. Tolkien"}
	require.NoError(t, f.db.DB.Create(&author).Error)
	f.book = entities.Book{Title: "The Hobbit", AuthorID: author.ID, Pages: 310, Price: 30}
	require.NoError(t, f.db.DB.Create(&f.book).Error)
	f.user = entities.User{FirstName: "John", LastName: "Doe", Email: "john@example.com"}
	require.NoError(t, f.db.DB.Create(&f.user).Error)

	f.svc = NewReservationService(f.db.DB, 1.0,
		WithClock(func() time.Time { return f.now }),
		WithAuditor(f.auditor),
	)
	return f
}

func (f *fixture) countReservations(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.DB.Model(&entities.BookReservation{}).Count(&n).Error)
	return n
}

func TestReservationService_Create(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	due := day(2024, time.July, 10)

	created, err := f.svc.Create(ctx, CreateReservationInput{
		BookID:  f.book.ID,
		UserID:  f.user.ID,
		DueDate: &due,
	})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, entities.ReservationStatusReserved, created.Status)
	assert.True(t, created.ReservationDate.Equal(f.now))
	assert.Nil(t, created.ReturnDate)
	assert.Nil(t, created.Fine)
	assert.Equal(t, "The Hobbit", created.Book.Title)
	assert.Equal(t, []string{ActionReservationCreate}, f.auditor.reservations)

	t.Run("round trip", func(t *testing.T) {
		got, err := f.svc.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.BookID, got.BookID)
		assert.Equal(t, created.UserID, got.UserID)
		assert.Equal(t, created.Status, got.Status)
		assert.Equal(t, FormatDate(created.ReservationDate), FormatDate(got.ReservationDate))
		require.NotNil(t, got.DueDate)
		assert.True(t, due.Equal(*got.DueDate))
	})

	t.Run("explicit initial status", func(t *testing.T) {
		borrowed, err := f.svc.Create(ctx, CreateReservationInput{
			BookID: f.book.ID,
			UserID: f.user.ID,
			Status: entities.ReservationStatusBorrowed,
		})
		require.NoError(t, err)
		assert.Equal(t, entities.ReservationStatusBorrowed, borrowed.Status)
		assert.Nil(t, borrowed.DueDate)
	})
}

func TestReservationService_CreateRejectsBadInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   CreateReservationInput
		wantErr error
	}{
		{"missing book", CreateReservationInput{BookID: 999, UserID: f.user.ID}, ErrNotFound},
		{"missing user", CreateReservationInput{BookID: f.book.ID, UserID: 999}, ErrNotFound},
		{"unknown status", CreateReservationInput{BookID: f.book.ID, UserID: f.user.ID, Status: "Lost"}, ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, f.countReservations(t), "nothing should be persisted")
		})
	}

	_, err := f.svc.Create(ctx, CreateReservationInput{BookID: 999, UserID: f.user.ID})
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "book", nf.Entity)
	assert.Equal(t, "book with id 999 not found", nf.Error())
	assert.Empty(t, f.auditor.reservations)
}

func TestReservationService_Return(t *testing.T) {
	ctx := context.Background()
	due := day(2024, time.July, 10)

	t.Run("late return charges whole days", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.svc.Create(ctx, CreateReservationInput{BookID: f.book.ID, UserID: f.user.ID, DueDate: &due})
		require.NoError(t, err)

		f.now = day(2024, time.July, 13).Add(10 * time.Hour)
		returned, err := f.svc.Return(ctx, created.ID)
		require.NoError(t, err)

		assert.Equal(t, entities.ReservationStatusReturned, returned.Status)
		require.NotNil(t, returned.ReturnDate)
		assert.True(t, returned.ReturnDate.Equal(f.now))
		require.NotNil(t, returned.Fine)
		assert.InDelta(t, 3.0, *returned.Fine, 1e-9)

		stored, err := f.svc.Get(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.Fine)
		assert.InDelta(t, 3.0, *stored.Fine, 1e-9)
	})

	t.Run("on-time return leaves fine unset", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.svc.Create(ctx, CreateReservationInput{BookID: f.book.ID, UserID: f.user.ID, DueDate: &due})
		require.NoError(t, err)

		f.now = day(2024, time.July, 9)
		returned, err := f.svc.Return(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.ReservationStatusReturned, returned.Status)
		assert.Nil(t, returned.Fine)
	})

	t.Run("no due date leaves fine unset", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.svc.Create(ctx, CreateReservationInput{BookID: f.book.ID, UserID: f.user.ID})
		require.NoError(t, err)

		f.now = day(2025, time.January, 1)
		returned, err := f.svc.Return(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, returned.Fine)
	})

	t.Run("second return is refused and keeps the fine", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.svc.Create(ctx, CreateReservationInput{BookID: f.book.ID, UserID: f.user.ID, DueDate: &due})
		require.NoError(t, err)

		f.now = day(2024, time.July, 12)
		_, err = f.svc.Return(ctx, created.ID)
		require.NoError(t, err)

		f.now = day(2024, time.August, 30)
		_, err = f.svc.Return(ctx, created.ID)
		assert.ErrorIs(t, err, ErrAlreadyReturned)

		stored, err := f.svc.Get(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.Fine)
		assert.InDelta(t, 2.0, *stored.Fine, 1e-9)
		assert.Equal(t, "2024-07-12", FormatDate(*stored.ReturnDate))
	})

	t.Run("unknown reservation", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Return(ctx, 42)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestReservationService_Update(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created, err := f.svc.Create(ctx, CreateReservationInput{BookID: f.book.ID, UserID: f.user.ID})
	require.NoError(t, err)

	borrowed := entities.ReservationStatusBorrowed
	newDue := day(2024, time.August, 1)
	require.NoError(t, f.svc.Update(ctx, created.ID, UpdateReservationInput{
		Status:  &borrowed,
		DueDate: &newDue,
	}))

	got, err := f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.ReservationStatusBorrowed, got.Status)
	assert.Equal(t, "2024-08-01", FormatDate(*got.DueDate))
	assert.Nil(t, got.ReturnDate, "untouched fields stay as they were")

	t.Run("fields are written independently", func(t *testing.T) {
		fine := 4.5
		require.NoError(t, f.svc.Update(ctx, created.ID, UpdateReservationInput{Fine: &fine}))

		got, err := f.svc.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.ReservationStatusBorrowed, got.Status)
		require.NotNil(t, got.Fine)
		assert.InDelta(t, 4.5, *got.Fine, 1e-9)
	})

	t.Run("backwards transition is refused", func(t *testing.T) {
		reserved := entities.ReservationStatusReserved
		err := f.svc.Update(ctx, created.ID, UpdateReservationInput{Status: &reserved})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("unknown status is refused", func(t *testing.T) {
		lost := entities.ReservationStatus("Lost")
		err := f.svc.Update(ctx, created.ID, UpdateReservationInput{Status: &lost})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("negative fine is refused", func(t *testing.T) {
		fine := -1.0
		err := f.svc.Update(ctx, created.ID, UpdateReservationInput{Fine: &fine})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		err := f.svc.Update(ctx, 999, UpdateReservationInput{})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestReservationService_QueriesAndDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, err := f.svc.Create(ctx, CreateReservationInput{BookID: f.book.ID, UserID: f.user.ID})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, CreateReservationInput{BookID: f.book.ID, UserID: f.user.ID})
	require.NoError(t, err)

	all, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byUser, err := f.svc.ListByUser(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	none, err := f.svc.ListByUser(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, none)

	byBook, err := f.svc.ListByBook(ctx, f.book.ID)
	require.NoError(t, err)
	assert.Len(t, byBook, 2)

	require.NoError(t, f.svc.Delete(ctx, first.ID))
	_, err = f.svc.Get(ctx, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.svc.Delete(ctx, first.ID), ErrNotFound)
	assert.Equal(t, int64(1), f.countReservations(t))
	assert.Contains(t, f.auditor.reservations, ActionReservationDelete)
}
