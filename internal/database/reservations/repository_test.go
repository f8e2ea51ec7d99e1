package reservations_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Tocea2003/Practica-BookSystem/internal/database/dbtest"
	"github.com/Tocea2003/Practica-BookSystem/internal/database/reservations"
	"github.com/Tocea2003/Practica-BookSystem/internal/entities"
)

func TestRepository_SeededReservations(t *testing.T) {
	db := dbtest.NewSeeded(t)
	repo := reservations.NewRepository(db.DB)

	all, err := repo.List()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Harry Potter and the Philosopher's Stone", all[0].Book.Title)
	assert.Equal(t, "John Doe", all[0].User.FullName())

	byUser, err := repo.ListByUser(all[0].UserID)
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	byBook, err := repo.ListByBook(all[1].BookID)
	require.NoError(t, err)
	require.Len(t, byBook, 1)
	assert.Equal(t, entities.ReservationStatusBorrowed, byBook[0].Status)

	open, err := repo.ListOpen()
	require.NoError(t, err)
	require.Len(t, open, 2)
	// Ordered by due date: the fellowship is due first.
	assert.Equal(t, all[1].ID, open[0].ID)
}

func TestRepository_UpdateAndDelete(t *testing.T) {
	db := dbtest.NewSeeded(t)
	repo := reservations.NewRepository(db.DB)

	reservation, err := repo.GetByID(1)
	require.NoError(t, err)

	returned := time.Date(2024, time.July, 20, 0, 0, 0, 0, time.UTC)
	fine := 5.0
	reservation.Status = entities.ReservationStatusReturned
	reservation.ReturnDate = &returned
	reservation.Fine = &fine
	require.NoError(t, repo.Update(reservation))

	reloaded, err := repo.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, entities.ReservationStatusReturned, reloaded.Status)
	require.NotNil(t, reloaded.Fine)
	assert.InDelta(t, 5.0, *reloaded.Fine, 0.001)

	deleted, err := repo.Delete(1)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = repo.GetByID(1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
