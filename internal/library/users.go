package library

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Tocea2003/Practica-BookSystem/internal/database/users"
	"github.com/Tocea2003/Practica-BookSystem/internal/entities"
	"github.com/Tocea2003/Practica-BookSystem/internal/integrity"
)

type UserInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

func (in UserInput) apply(u *entities.User) error {
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return fmt.Errorf("%w: first and last name are required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	u.FirstName = strings.TrimSpace(in.FirstName)
	u.LastName = strings.TrimSpace(in.LastName)
	u.Email = strings.TrimSpace(in.Email)
	u.Phone = in.Phone
	return nil
}

// UserService manages library members.
type UserService struct {
	db      *gorm.DB
	guard   *integrity.Guard
	auditor Auditor
	now     Clock
}

func NewUserService(db *gorm.DB, guard *integrity.Guard, auditor Auditor) *UserService {
	if guard == nil {
		guard = integrity.NewGuard(nil)
	}
	return &UserService{db: db, guard: guard, auditor: auditorOrNoop(auditor), now: utcNow}
}

func (s *UserService) List(ctx context.Context) ([]entities.User, error) {
	return users.NewRepository(s.db.WithContext(ctx)).List()
}

func (s *UserService) Get(ctx context.Context, id uint) (*entities.User, error) {
	user, err := users.NewRepository(s.db.WithContext(ctx)).GetByID(id)
	if err != nil {
		return nil, lookupErr(err, "user", id)
	}
	return user, nil
}

// Create stores a new member with today's join date.
func (s *UserService) Create(ctx context.Context, in UserInput) (*entities.User, error) {
	user := &entities.User{JoinDate: s.now()}
	if err := in.apply(user); err != nil {
		return nil, err
	}
	if err := users.NewRepository(s.db.WithContext(ctx)).Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update keeps the original join date.
func (s *UserService) Update(ctx context.Context, id uint, in UserInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := users.NewRepository(tx)
		user, err := repo.GetByID(id)
		if err != nil {
			return lookupErr(err, "user", id)
		}
		if err := in.apply(user); err != nil {
			return err
		}
		return repo.Update(user)
	})
}

// Delete fails with a conflict while the user has reservations.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	return guardedDelete(ctx, s.db, s.guard, s.auditor, integrity.EntityUser, id,
		func(tx *gorm.DB) (string, error) {
			user, err := users.NewRepository(tx).GetByID(id)
			if err != nil {
				return "", err
			}
			return user.FullName(), nil
		},
		func(tx *gorm.DB) (bool, error) {
			return users.NewRepository(tx).Delete(id)
		},
	)
}
