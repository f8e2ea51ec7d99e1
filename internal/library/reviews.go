package library

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Tocea2003/Practica-BookSystem/internal/database/authors"
	"github.com/Tocea2003/Practica-BookSystem/internal/database/books"
	"github.com/Tocea2003/Practica-BookSystem/internal/database/reviews"
	"github.com/Tocea2003/Practica-BookSystem/internal/database/users"
	"github.com/Tocea2003/Practica-BookSystem/internal/entities"
)

const anonymousReviewer = "Anonymous"

type ReviewInput struct {
	AuthorID     uint
	BookID       *uint
	UserID       *uint
	ReviewerName string
	Rating       int
	Comment      string
}

func (in ReviewInput) validate() error {
	if in.Rating < entities.MinRating || in.Rating > entities.MaxRating {
		return ErrInvalidRating
	}
	if strings.TrimSpace(in.Comment) == "" {
		return fmt.Errorf("%w: comment is required", ErrInvalidInput)
	}
	return nil
}

// ReviewService manages reviews. Reviews are not audited.
type ReviewService struct {
	db  *gorm.DB
	now Clock
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db, now: utcNow}
}

func (s *ReviewService) List(ctx context.Context) ([]entities.Review, error) {
	return reviews.NewRepository(s.db.WithContext(ctx)).List()
}

func (s *ReviewService) Get(ctx context.Context, id uint) (*entities.Review, error) {
	review, err := reviews.NewRepository(s.db.WithContext(ctx)).GetByID(id)
	if err != nil {
		return nil, lookupErr(err, "review", id)
	}
	return review, nil
}

func (s *ReviewService) ListByAuthor(ctx context.Context, authorID uint) ([]entities.Review, error) {
	return reviews.NewRepository(s.db.WithContext(ctx)).ListByAuthor(authorID)
}

// resolve checks every reference and picks the reviewer name: the user's
// full name when a user is given, else the supplied name, else Anonymous.
func (in ReviewInput) resolve(tx *gorm.DB) (string, error) {
	if ok, err := authors.NewRepository(tx).Exists(in.AuthorID); err != nil {
		return "", err
	} else if !ok {
		return "", notFound("author", in.AuthorID)
	}
	if in.BookID != nil {
		if ok, err := books.NewRepository(tx).Exists(*in.BookID); err != nil {
			return "", err
		} else if !ok {
			return "", notFound("book", *in.BookID)
		}
	}

	if in.UserID != nil {
		user, err := users.NewRepository(tx).GetByID(*in.UserID)
		if err != nil {
			return "", lookupErr(err, "user", *in.UserID)
		}
		return user.FullName(), nil
	}
	if name := strings.TrimSpace(in.ReviewerName); name != "" {
		return name, nil
	}
	return anonymousReviewer, nil
}

func (s *ReviewService) Create(ctx context.Context, in ReviewInput) (*entities.Review, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var created *entities.Review
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		name, err := in.resolve(tx)
		if err != nil {
			return err
		}
		created = &entities.Review{
			ReviewerName: name,
			Content:      in.Comment,
			Rating:       in.Rating,
			ReviewDate:   s.now(),
			AuthorID:     in.AuthorID,
			BookID:       in.BookID,
			UserID:       in.UserID,
		}
		return reviews.NewRepository(tx).Create(created)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update rewrites the review's content and references. The review date is kept.
func (s *ReviewService) Update(ctx context.Context, id uint, in ReviewInput) error {
	if err := in.validate(); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := reviews.NewRepository(tx)
		review, err := repo.GetByID(id)
		if err != nil {
			return lookupErr(err, "review", id)
		}
		name, err := in.resolve(tx)
		if err != nil {
			return err
		}

		review.ReviewerName = name
		review.Content = in.Comment
		review.Rating = in.Rating
		review.AuthorID = in.AuthorID
		review.BookID = in.BookID
		review.UserID = in.UserID
		return repo.Update(review)
	})
}

func (s *ReviewService) Delete(ctx context.Context, id uint) error {
	deleted, err := reviews.NewRepository(s.db.WithContext(ctx)).Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return notFound("review", id)
	}
	return nil
}
