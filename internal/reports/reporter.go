// Package reports runs read-only aggregate queries over reservations.
//
// Queries are built with goqu for the configured SQL dialect and scanned
// with sqlx on the connection pool the ORM already holds. Nothing here
// writes: fines are only ever stored when a book is returned.
package reports

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/mysql"    // dialect registration
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // dialect registration
	"github.com/jmoiron/sqlx"

	"github.com/Tocea2003/Practica-BookSystem/internal/config"
	"github.com/Tocea2003/Practica-BookSystem/internal/database"
	"github.com/Tocea2003/Practica-BookSystem/internal/entities"
	"github.com/Tocea2003/Practica-BookSystem/internal/library"
)

var ErrBuildingQuery = errors.New("building report query failed")

const (
	tableReservations = "book_reservations"
	tableBooks        = "books"
	tableUsers        = "users"
	tableAuthors      = "authors"
)

type StatusCount struct {
	Status string  `db:"status" json:"status"`
	Count  int64   `db:"count" json:"count"`
	Fines  float64 `db:"fines" json:"fines"`
}

type Summary struct {
	Books        int64         `json:"books"`
	Authors      int64         `json:"authors"`
	Users        int64         `json:"users"`
	Reservations []StatusCount `json:"reservations"`
	Open         int64         `json:"open"`
	Overdue      int64         `json:"overdue"`
	TotalFines   float64       `json:"totalFines"`
}

// OverdueReservation is an open reservation whose due date has passed.
// AccruedFine is what returning the book right now would cost.
type OverdueReservation struct {
	ID          uint      `db:"id" json:"id"`
	BookID      uint      `db:"book_id" json:"bookId"`
	BookTitle   string    `db:"book_title" json:"bookTitle"`
	UserID      uint      `db:"user_id" json:"userId"`
	FirstName   string    `db:"first_name" json:"firstName"`
	LastName    string    `db:"last_name" json:"lastName"`
	Status      string    `db:"status" json:"status"`
	DueDate     time.Time `db:"due_date" json:"dueDate"`
	DaysOverdue int       `db:"-" json:"daysOverdue"`
	AccruedFine float64   `db:"-" json:"accruedFine"`
}

type Reporter struct {
	db       *sqlx.DB
	dialect  goqu.DialectWrapper
	fineRate float64
}

// NewReporter shares db's connection pool. Closing the Reporter is not
// needed; close the Database instead.
func NewReporter(db *database.Database, fineRate float64) (*Reporter, error) {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return nil, err
	}
	driverName, dialectName := names(db.Driver())
	return &Reporter{
		db:       sqlx.NewDb(sqlDB, driverName),
		dialect:  goqu.Dialect(dialectName),
		fineRate: fineRate,
	}, nil
}

// names maps a configured driver to its database/sql driver name and goqu dialect.
func names(d config.DatabaseDriver) (driverName, dialect string) {
	switch d {
	case config.DriverPostgres:
		return "pgx", "postgres"
	case config.DriverMySQL:
		return "mysql", "mysql"
	default:
		return "sqlite3", "sqlite3"
	}
}

func openStatuses() []any {
	return []any{
		string(entities.ReservationStatusReserved),
		string(entities.ReservationStatusBorrowed),
	}
}

func (r *Reporter) count(ctx context.Context, ds *goqu.SelectDataset) (int64, error) {
	query, args, err := ds.Select(goqu.COUNT(goqu.Star())).Prepared(true).ToSQL()
	if err != nil {
		return 0, errors.Join(ErrBuildingQuery, err)
	}
	var n int64
	if err := r.db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, err
	}
	return n, nil
}

// Summary counts catalog records and groups reservations by status.
func (r *Reporter) Summary(ctx context.Context, now time.Time) (*Summary, error) {
	summary := &Summary{Reservations: []StatusCount{}}

	var err error
	if summary.Books, err = r.count(ctx, r.dialect.From(tableBooks)); err != nil {
		return nil, fmt.Errorf("counting books: %w", err)
	}
	if summary.Authors, err = r.count(ctx, r.dialect.From(tableAuthors)); err != nil {
		return nil, fmt.Errorf("counting authors: %w", err)
	}
	if summary.Users, err = r.count(ctx, r.dialect.From(tableUsers)); err != nil {
		return nil, fmt.Errorf("counting users: %w", err)
	}

	query, args, err := r.dialect.From(tableReservations).
		Select(
			goqu.C("status"),
			goqu.COUNT(goqu.Star()).As("count"),
			goqu.COALESCE(goqu.SUM("fine"), 0).As("fines"),
		).
		GroupBy("status").
		Order(goqu.C("status").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, errors.Join(ErrBuildingQuery, err)
	}
	if err := r.db.SelectContext(ctx, &summary.Reservations, query, args...); err != nil {
		return nil, fmt.Errorf("grouping reservations: %w", err)
	}

	for _, sc := range summary.Reservations {
		if entities.ReservationStatus(sc.Status).IsOpen() {
			summary.Open += sc.Count
		}
		summary.TotalFines += sc.Fines
	}

	summary.Overdue, err = r.count(ctx, r.dialect.From(tableReservations).Where(
		goqu.C("status").In(openStatuses()...),
		goqu.C("due_date").IsNotNull(),
		goqu.C("due_date").Lt(now.UTC()),
	))
	if err != nil {
		return nil, fmt.Errorf("counting overdue reservations: %w", err)
	}

	return summary, nil
}

// Overdue lists open reservations due before now, oldest due date first.
func (r *Reporter) Overdue(ctx context.Context, now time.Time) ([]OverdueReservation, error) {
	query, args, err := r.dialect.From(goqu.T(tableReservations).As("r")).
		Join(goqu.T(tableBooks).As("b"), goqu.On(goqu.I("b.id").Eq(goqu.I("r.book_id")))).
		Join(goqu.T(tableUsers).As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("r.user_id")))).
		Select(
			goqu.I("r.id"),
			goqu.I("r.book_id"),
			goqu.I("b.title").As("book_title"),
			goqu.I("r.user_id"),
			goqu.I("u.first_name"),
			goqu.I("u.last_name"),
			goqu.I("r.status"),
			goqu.I("r.due_date"),
		).
		Where(
			goqu.I("r.status").In(openStatuses()...),
			goqu.I("r.due_date").IsNotNull(),
			goqu.I("r.due_date").Lt(now.UTC()),
		).
		Order(goqu.I("r.due_date").Asc(), goqu.I("r.id").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, errors.Join(ErrBuildingQuery, err)
	}

	overdue := []OverdueReservation{}
	if err := r.db.SelectContext(ctx, &overdue, query, args...); err != nil {
		return nil, fmt.Errorf("listing overdue reservations: %w", err)
	}

	for i := range overdue {
		o := &overdue[i]
		o.DaysOverdue = int(math.Floor(now.Sub(o.DueDate).Hours() / 24))
		if fine := library.CalculateFine(&o.DueDate, now, r.fineRate); fine != nil {
			o.AccruedFine = *fine
		}
	}
	return overdue, nil
}
