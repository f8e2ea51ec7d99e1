package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tocea2003/Practica-BookSystem/internal/audit"
	"github.com/Tocea2003/Practica-BookSystem/internal/database"
	auditRepo "github.com/Tocea2003/Practica-BookSystem/internal/database/audit"
	"github.com/Tocea2003/Practica-BookSystem/internal/database/dbtest"
	"github.com/Tocea2003/Practica-BookSystem/internal/demo"
	"github.com/Tocea2003/Practica-BookSystem/internal/entities"
	"github.com/Tocea2003/Practica-BookSystem/internal/library"
	"github.com/Tocea2003/Practica-BookSystem/internal/reports"
	"github.com/Tocea2003/Practica-BookSystem/internal/tasks"
)

// Seeded ids: authors 1 Rowling, 2 Martin, 3 Tolkien; users 1 Admin, 2 John;
// books 1 Philosopher's Stone, 2 Game of Thrones, 3 Fellowship;
// reservation 1 (book 1, Reserved, due 2024-07-15) and reservation 2
// (book 3, Borrowed, due 2024-07-10), both held by John.

type apiFixture struct {
	db     *database.Database
	audit  *audit.Service
	router *gin.Engine
}

func newAPIFixture(t *testing.T, mutate ...func(*RouterConfig)) *apiFixture {
	t.Helper()
	db := dbtest.NewSeeded(t)
	now := time.Date(2024, time.July, 12, 9, 0, 0, 0, time.UTC)

	auditSvc := audit.NewService(auditRepo.NewRepository(db.DB))
	t.Cleanup(auditSvc.Wait)

	reporter, err := reports.NewReporter(db, 1.0)
	require.NoError(t, err)

	cfg := RouterConfig{
		Catalog: library.NewCatalogService(db.DB, nil, auditSvc),
		Users:   library.NewUserService(db.DB, nil, auditSvc),
		Reviews: library.NewReviewService(db.DB),
		Reservations: library.NewReservationService(db.DB, 1.0,
			library.WithClock(func() time.Time { return now }),
			library.WithAuditor(auditSvc),
		),
		Stats:    reporter,
		Audit:    auditSvc,
		Database: db,
		Currency: "RON",
		Version:  "test",
	}
	for _, m := range mutate {
		m(&cfg)
	}

	return &apiFixture{db: db, audit: auditSvc, router: NewRouter(cfg)}
}

func (f *apiFixture) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (f *apiFixture) countReservations(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.DB.Model(&entities.BookReservation{}).Count(&n).Error)
	return n
}

func TestReservationsAPI_Create(t *testing.T) {
	f := newAPIFixture(t)

	t.Run("stores a reservation dated today", func(t *testing.T) {
		w := f.do(t, "POST", "/api/book-reservations", gin.H{
			"bookId":  2,
			"userId":  1,
			"dueDate": "2024-07-20",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"reservationDate":"2024-07-12"`)

		dto := decode[ReservationDTO](t, w)
		assert.NotZero(t, dto.ID)
		assert.Equal(t, "A Game of Thrones", dto.BookTitle)
		assert.Equal(t, "Admin User", dto.UserName)
		require.NotNil(t, dto.DueDate)
		assert.Equal(t, "2024-07-20", *dto.DueDate)
		assert.Nil(t, dto.ReturnDate)
		assert.Nil(t, dto.Fine)
		assert.Equal(t, "Reserved", dto.Status)
	})

	t.Run("blank due date means none", func(t *testing.T) {
		w := f.do(t, "POST", "/api/book-reservations", gin.H{"bookId": 1, "userId": 1, "dueDate": ""})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Nil(t, decode[ReservationDTO](t, w).DueDate)
	})

	before := f.countReservations(t)

	t.Run("unknown book is 404", func(t *testing.T) {
		w := f.do(t, "POST", "/api/book-reservations", gin.H{"bookId": 999, "userId": 1})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "book with id 999 not found")
	})

	t.Run("unknown user is 404", func(t *testing.T) {
		w := f.do(t, "POST", "/api/book-reservations", gin.H{"bookId": 1, "userId": 999})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "user with id 999 not found")
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		w := f.do(t, "POST", "/api/book-reservations", gin.H{"bookId": 1, "userId": 1, "status": "Lost"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decode[ErrorResponse](t, w)
		assert.Equal(t, "validation_failed", resp.Code)
		assert.Equal(t, map[string]any{"status": "reservation_status"}, resp.Details)
	})

	t.Run("malformed due date is rejected", func(t *testing.T) {
		w := f.do(t, "POST", "/api/book-reservations", gin.H{"bookId": 1, "userId": 1, "dueDate": "20/07/2024"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"dueDate":"date"`)
	})

	t.Run("book is required", func(t *testing.T) {
		w := f.do(t, "POST", "/api/book-reservations", gin.H{"userId": 1})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"bookId":"required"`)
	})

	assert.Equal(t, before, f.countReservations(t), "failed requests must not store anything")
}

func TestReservationsAPI_Return(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, "PUT", "/api/book-reservations/2/return", nil)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
	assert.Empty(t, w.Body.String())

	w = f.do(t, "GET", "/api/book-reservations/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	dto := decode[ReservationDTO](t, w)
	assert.Equal(t, "Returned", dto.Status)
	require.NotNil(t, dto.ReturnDate)
	assert.Equal(t, "2024-07-12", *dto.ReturnDate)
	require.NotNil(t, dto.Fine)
	assert.InDelta(t, 2.0, *dto.Fine, 1e-9)

	t.Run("second return is a conflict", func(t *testing.T) {
		w := f.do(t, "PUT", "/api/book-reservations/2/return", nil)
		assert.Equal(t, http.StatusConflict, w.Code)

		var stored entities.BookReservation
		require.NoError(t, f.db.DB.First(&stored, 2).Error)
		require.NotNil(t, stored.Fine)
		assert.InDelta(t, 2.0, *stored.Fine, 1e-9)
	})

	t.Run("on time return has no fine", func(t *testing.T) {
		w := f.do(t, "PUT", "/api/book-reservations/1/return", nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		dto := decode[ReservationDTO](t, f.do(t, "GET", "/api/book-reservations/1", nil))
		assert.Equal(t, "Returned", dto.Status)
		assert.Nil(t, dto.Fine)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		w := f.do(t, "PUT", "/api/book-reservations/999/return", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestReservationsAPI_Update(t *testing.T) {
	f := newAPIFixture(t)

	t.Run("only supplied fields change", func(t *testing.T) {
		w := f.do(t, "PUT", "/api/book-reservations/1", gin.H{"status": "Borrowed"})
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		dto := decode[ReservationDTO](t, f.do(t, "GET", "/api/book-reservations/1", nil))
		assert.Equal(t, "Borrowed", dto.Status)
		require.NotNil(t, dto.DueDate)
		assert.Equal(t, "2024-07-15", *dto.DueDate)
		assert.Equal(t, "2024-07-01", dto.ReservationDate)
	})

	t.Run("extend due date", func(t *testing.T) {
		w := f.do(t, "PUT", "/api/book-reservations/2", gin.H{"dueDate": "2024-08-01"})
		require.Equal(t, http.StatusNoContent, w.Code)

		dto := decode[ReservationDTO](t, f.do(t, "GET", "/api/book-reservations/2", nil))
		assert.Equal(t, "2024-08-01", *dto.DueDate)
		assert.Equal(t, "Borrowed", dto.Status)
	})

	t.Run("status cannot go backwards", func(t *testing.T) {
		w := f.do(t, "PUT", "/api/book-reservations/2", gin.H{"status": "Reserved"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		w := f.do(t, "PUT", "/api/book-reservations/999", gin.H{"status": "Borrowed"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestReservationsAPI_Lists(t *testing.T) {
	f := newAPIFixture(t)

	all := decode[[]ReservationDTO](t, f.do(t, "GET", "/api/book-reservations", nil))
	assert.Len(t, all, 2)

	byUser := decode[[]ReservationDTO](t, f.do(t, "GET", "/api/book-reservations/by-user/2", nil))
	assert.Len(t, byUser, 2)

	w := f.do(t, "GET", "/api/book-reservations/by-user/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	byBook := decode[[]ReservationDTO](t, f.do(t, "GET", "/api/book-reservations/by-book/3", nil))
	require.Len(t, byBook, 1)
	assert.Equal(t, "The Fellowship of the Ring", byBook[0].BookTitle)

	w = f.do(t, "GET", "/api/book-reservations/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteGuards(t *testing.T) {
	f := newAPIFixture(t)

	tests := []struct {
		name     string
		path     string
		relation string
	}{
		{"book with reservations", "/api/books/3", "reservations"},
		{"book with reviews", "/api/books/2", "reviews"},
		{"author with books", "/api/authors/1", "books"},
		{"publisher with books", "/api/publishers/1", "books"},
		{"category with books", "/api/categories/1", "books"},
		{"user with reservations", "/api/users/2", "reservations"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(t, "DELETE", tt.path, nil)
			require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

			resp := decode[ErrorResponse](t, w)
			assert.Equal(t, "conflict", resp.Code)
			assert.Contains(t, resp.Error, "Cannot delete")
			details, ok := resp.Details.(map[string]any)
			require.True(t, ok)
			assert.Equal(t, tt.relation, details["relation"])
		})
	}

	t.Run("delete succeeds once dependents are gone", func(t *testing.T) {
		require.Equal(t, http.StatusNoContent, f.do(t, "DELETE", "/api/book-reservations/2", nil).Code)
		require.Equal(t, http.StatusNoContent, f.do(t, "DELETE", "/api/books/3", nil).Code)
		assert.Equal(t, http.StatusNotFound, f.do(t, "GET", "/api/books/3", nil).Code)
	})

	t.Run("unused records delete", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, f.do(t, "DELETE", "/api/users/1", nil).Code)
		assert.Equal(t, http.StatusConflict, f.do(t, "DELETE", "/api/categories/3", nil).Code,
			"Young Adult is still on the Philosopher's Stone")
	})
}

func TestBooksAPI(t *testing.T) {
	f := newAPIFixture(t)

	t.Run("create with categories", func(t *testing.T) {
		w := f.do(t, "POST", "/api/books", gin.H{
			"title":         "The Two Towers",
			"authorId":      3,
			"publishedDate": "1954-11-11",
			"pages":         352,
			"price":         49.5,
			"categoryIds":   []uint{1, 2, 99},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		dto := decode[BookDTO](t, w)
		assert.Equal(t, "J.R.R. Tolkien", dto.AuthorName)
		assert.Equal(t, "1954-11-11", dto.PublishedDate)
		assert.Len(t, dto.Categories, 2)
		assert.Nil(t, dto.PublisherName)
	})

	t.Run("unknown author", func(t *testing.T) {
		w := f.do(t, "POST", "/api/books", gin.H{"title": "Orphan", "authorId": 999})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("partial update keeps the rest", func(t *testing.T) {
		w := f.do(t, "PUT", "/api/books/1", gin.H{"price": 50})
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		dto := decode[BookDTO](t, f.do(t, "GET", "/api/books/1", nil))
		assert.InDelta(t, 50.0, dto.Price, 1e-9)
		assert.Equal(t, "Harry Potter and the Philosopher's Stone", dto.Title)
		assert.Equal(t, "1997-06-26", dto.PublishedDate)
		assert.Len(t, dto.Categories, 2)
		require.NotNil(t, dto.PublisherName)
		assert.Equal(t, "Bloomsbury Publishing", *dto.PublisherName)
	})

	t.Run("by author and category", func(t *testing.T) {
		byAuthor := decode[[]BookDTO](t, f.do(t, "GET", "/api/books/by-author/2", nil))
		require.Len(t, byAuthor, 1)
		assert.Equal(t, "A Game of Thrones", byAuthor[0].Title)

		byCategory := decode[[]BookDTO](t, f.do(t, "GET", "/api/books/by-category/5", nil))
		require.Len(t, byCategory, 1)
		assert.Equal(t, "The Fellowship of the Ring", byCategory[0].Title)
	})
}

func TestCatalogAPI_AuthorsPublishersCategories(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, "POST", "/api/authors", gin.H{"name": "Ursula K. Le Guin", "birthDate": "1929-10-21"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	author := decode[AuthorDTO](t, w)
	assert.Equal(t, "1929-10-21", author.BirthDate)

	w = f.do(t, "POST", "/api/publishers", gin.H{"name": "Ace Books", "email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, "POST", "/api/categories", gin.H{"name": "Science Fiction"})
	require.Equal(t, http.StatusCreated, w.Code)
	category := decode[CategoryDTO](t, w)

	w = f.do(t, "PUT", "/api/categories/"+itoa(category.ID), gin.H{"description": "Space and time"})
	require.Equal(t, http.StatusNoContent, w.Code)
	category = decode[CategoryDTO](t, f.do(t, "GET", "/api/categories/"+itoa(category.ID), nil))
	assert.Equal(t, "Science Fiction", category.Name)
	assert.Equal(t, "Space and time", category.Description)

	assert.Equal(t, http.StatusNoContent, f.do(t, "DELETE", "/api/categories/"+itoa(category.ID), nil).Code)
	assert.Equal(t, http.StatusNoContent, f.do(t, "DELETE", "/api/authors/"+itoa(author.ID), nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, "DELETE", "/api/authors/"+itoa(author.ID), nil).Code)
}

func TestUsersAPI(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, "GET", "/api/users/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := decode[UserDTO](t, w)
	assert.Equal(t, "John Doe", user.Username)
	assert.Equal(t, "2024-02-15", user.RegistrationDate)

	w = f.do(t, "POST", "/api/users", gin.H{"firstName": "Jane", "lastName": "Roe", "email": "jane@example.com"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[UserDTO](t, w)
	assert.Equal(t, "Jane Roe", created.Username)
	assert.NotEmpty(t, created.RegistrationDate)

	w = f.do(t, "PUT", "/api/users/"+itoa(created.ID), gin.H{"phone": "0722222222"})
	require.Equal(t, http.StatusNoContent, w.Code)
	updated := decode[UserDTO](t, f.do(t, "GET", "/api/users/"+itoa(created.ID), nil))
	assert.Equal(t, "0722222222", updated.Phone)
	assert.Equal(t, "jane@example.com", updated.Email)
	assert.Equal(t, created.RegistrationDate, updated.RegistrationDate)

	w = f.do(t, "POST", "/api/users", gin.H{"firstName": "No", "lastName": "Mail"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReviewsAPI(t *testing.T) {
	f := newAPIFixture(t)

	t.Run("user reviews carry the user's name", func(t *testing.T) {
		w := f.do(t, "POST", "/api/reviews", gin.H{
			"authorId":     3,
			"bookId":       3,
			"userId":       2,
			"reviewerName": "ignored",
			"rating":       5,
			"comment":      "Timeless.",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		review := decode[ReviewDTO](t, w)
		assert.Equal(t, "John Doe", review.UserName)
		assert.Equal(t, "Timeless.", review.Comment)
	})

	t.Run("no user and no name is anonymous", func(t *testing.T) {
		w := f.do(t, "POST", "/api/reviews", gin.H{"authorId": 3, "userId": 0, "rating": 3, "comment": "Fine."})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		review := decode[ReviewDTO](t, w)
		assert.Equal(t, "Anonymous", review.UserName)
		assert.Nil(t, review.UserID)
	})

	t.Run("rating out of range", func(t *testing.T) {
		w := f.do(t, "POST", "/api/reviews", gin.H{"authorId": 3, "rating": 6, "comment": "Too good."})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown author", func(t *testing.T) {
		w := f.do(t, "POST", "/api/reviews", gin.H{"authorId": 999, "rating": 4, "comment": "Who?"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("by author", func(t *testing.T) {
		reviews := decode[[]ReviewDTO](t, f.do(t, "GET", "/api/reviews/by-author/3", nil))
		assert.Len(t, reviews, 2)
	})
}

func TestStatsAPI(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, "GET", "/api/stats?date=2024-07-12", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	stats := decode[map[string]any](t, w)
	assert.Equal(t, float64(3), stats["books"])
	assert.Equal(t, float64(2), stats["open"])
	assert.Equal(t, float64(1), stats["overdue"])
	assert.Equal(t, "RON", stats["currency"])
	assert.Equal(t, "2024-07-12", stats["asOf"])

	w = f.do(t, "GET", "/api/stats/overdue?date=2024-07-12", nil)
	require.Equal(t, http.StatusOK, w.Code)
	overdue := decode[[]OverdueDTO](t, w)
	require.Len(t, overdue, 1)
	assert.Equal(t, "The Fellowship of the Ring", overdue[0].BookTitle)
	assert.Equal(t, "John Doe", overdue[0].UserName)
	assert.Equal(t, "2024-07-10", overdue[0].DueDate)
	assert.Equal(t, 2, overdue[0].DaysOverdue)
	assert.InDelta(t, 2.0, overdue[0].AccruedFine, 1e-9)

	assert.Equal(t, http.StatusBadRequest, f.do(t, "GET", "/api/stats?date=yesterday", nil).Code)
}

func TestAuditAPI_CorrelatesRequests(t *testing.T) {
	f := newAPIFixture(t)
	requestID := "3f2a7c1e-8d4b-4f6a-9c2e-1b5d7e9f0a3c"

	w := f.do(t, "PUT", "/api/book-reservations/2/return", nil, HeaderRequestID, requestID)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, requestID, w.Header().Get(HeaderRequestID))
	f.audit.Wait()

	w = f.do(t, "GET", "/api/audit?correlation_id="+requestID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Events      []entities.AuditEvent `json:"events"`
		Limit       int                   `json:"limit"`
		TotalEvents int64                 `json:"total_events"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 100, resp.Limit)
	assert.Equal(t, int64(1), resp.TotalEvents)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, library.ActionReservationReturn, resp.Events[0].Action)
	assert.Equal(t, "reservation", resp.Events[0].EntityType)

	t.Run("blocked deletes are not audited", func(t *testing.T) {
		f.do(t, "DELETE", "/api/books/3", nil)
		f.audit.Wait()

		w := f.do(t, "GET", "/api/audit?type=delete", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"total_events":0`)
	})

	t.Run("bad limit", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, f.do(t, "GET", "/api/audit?limit=x", nil).Code)
	})
}

func TestRouter_Middleware(t *testing.T) {
	f := newAPIFixture(t, func(cfg *RouterConfig) {
		cfg.AllowedOrigins = []string{"http://localhost:3000/"}
	})

	t.Run("preflight", func(t *testing.T) {
		w := f.do(t, "OPTIONS", "/api/books", nil, "Origin", "http://localhost:3000")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PUT")
	})

	t.Run("foreign origin gets no allow header", func(t *testing.T) {
		w := f.do(t, "GET", "/api/books", nil, "Origin", "http://evil.example")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("request id is generated", func(t *testing.T) {
		w := f.do(t, "GET", "/ping", nil, HeaderRequestID, "not-a-uuid")
		id := w.Header().Get(HeaderRequestID)
		assert.Len(t, id, 36)
		assert.NotEqual(t, "not-a-uuid", id)
	})

	t.Run("security headers", func(t *testing.T) {
		w := f.do(t, "GET", "/health", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	})

	t.Run("tasks are not routed without a queue", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, f.do(t, "GET", "/api/tasks/types", nil).Code)
	})
}

func TestRouter_DemoMode(t *testing.T) {
	f := newAPIFixture(t, func(cfg *RouterConfig) {
		cfg.DemoMiddleware = demo.NewMiddleware(true)
	})

	w := f.do(t, "POST", "/api/categories", gin.H{"name": "Horror"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "true", w.Header().Get("X-Demo-Mode"))

	assert.Equal(t, http.StatusForbidden, f.do(t, "PUT", "/api/book-reservations/2/return", nil).Code)
	assert.Equal(t, http.StatusOK, f.do(t, "GET", "/api/categories", nil).Code)
}

type fakeQueue struct {
	enqueued []backlite.Task
	status   backlite.TaskStatus
}

func (q *fakeQueue) Enqueue(_ context.Context, task backlite.Task) (string, error) {
	q.enqueued = append(q.enqueued, task)
	return "task-1", nil
}

func (q *fakeQueue) Status(context.Context, string) (backlite.TaskStatus, error) {
	return q.status, nil
}

func TestTasksAPI(t *testing.T) {
	queue := &fakeQueue{status: backlite.TaskStatusNotFound}
	f := newAPIFixture(t, func(cfg *RouterConfig) {
		cfg.Tasks = queue
	})

	w := f.do(t, "GET", "/api/tasks/types", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), tasks.QueueOverdueReport)
	assert.Contains(t, w.Body.String(), tasks.QueueCleanupAuditEvents)

	w = f.do(t, "POST", "/api/tasks/overdue_report/run", gin.H{"as_of": "2024-07-12"})
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"task_id":"task-1"`)
	require.Len(t, queue.enqueued, 1)
	assert.Equal(t, tasks.OverdueReportTask{AsOf: "2024-07-12"}, queue.enqueued[0])

	w = f.do(t, "POST", "/api/tasks/cleanup_audit_events/run", nil)
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, tasks.CleanupAuditEventsTask{}, queue.enqueued[1])

	assert.Equal(t, http.StatusBadRequest, f.do(t, "POST", "/api/tasks/reindex/run", nil).Code)
	assert.Equal(t, http.StatusBadRequest,
		f.do(t, "POST", "/api/tasks/overdue_report/run", gin.H{"as_of": "12.07.2024"}).Code)

	assert.Equal(t, http.StatusNotFound, f.do(t, "GET", "/api/tasks/unknown-id", nil).Code)

	queue.status = backlite.TaskStatusSuccess
	w = f.do(t, "GET", "/api/tasks/task-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"task-1","status":"success"}`, w.Body.String())
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
