package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/Tocea2003/Practica-BookSystem/internal/entities"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}

// Seed inserts the reference catalog when the authors table is empty.
// Running it against a populated database is a no-op.
func (d *Database) Seed() error {
	var count int64
	if err := d.DB.Model(&entities.Author{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	err := d.DB.Transaction(func(tx *gorm.DB) error {
		return seedCatalog(tx)
	})
	if err != nil {
		return err
	}

	log.Println("Seeded reference data")
	return nil
}

func seedCatalog(tx *gorm.DB) error {
	rowling := entities.Author{
		Name:        "J.K. Rowling",
		Biography:   "British author, best known for the Harry Potter series.",
		BirthDate:   date(1965, time.July, 31),
		Nationality: "British",
	}
	martin := entities.Author{
		Name:        "George R.R. Martin",
		Biography:   "American novelist and short story writer, author of A Song of Ice and Fire.",
		BirthDate:   date(1948, time.September, 20),
		Nationality: "American",
	}
	tolkien := entities.Author{
		Name:        "J.R.R. Tolkien",
		Biography:   "English writer and philologist, author of The Lord of the Rings.",
		BirthDate:   date(1892, time.January, 3),
		Nationality: "British",
	}
	if err := tx.Create(&[]*entities.Author{&rowling, &martin, &tolkien}).Error; err != nil {
		return fmt.Errorf("authors: %w", err)
	}

	bloomsbury := entities.Publisher{
		Name:        "Bloomsbury Publishing",
		Address:     "50 Bedford Square, London",
		Country:     "United Kingdom",
		FoundedDate: date(1986, time.January, 1),
		Phone:       "+44 20 7631 5600",
		Email:       "contact@bloomsbury.com",
	}
	bantam := entities.Publisher{
		Name:        "Bantam Books",
		Address:     "1745 Broadway, New York",
		Country:     "United States",
		FoundedDate: date(1945, time.January, 1),
		Phone:       "+1 212 782 9000",
		Email:       "contact@bantam.com",
	}
	if err := tx.Create(&[]*entities.Publisher{&bloomsbury, &bantam}).Error; err != nil {
		return fmt.Errorf("publishers: %w", err)
	}

	fantasy := entities.Category{Name: "Fantasy", Description: "Fantasy and magical worlds"}
	adventure := entities.Category{Name: "Adventure", Description: "Adventure and action"}
	youngAdult := entities.Category{Name: "Young Adult", Description: "Books for teenagers and young adults"}
	epic := entities.Category{Name: "Epic Fantasy", Description: "Large-scale fantasy sagas"}
	classic := entities.Category{Name: "Classic Literature", Description: "Timeless literary works"}
	if err := tx.Create(&[]*entities.Category{&fantasy, &adventure, &youngAdult, &epic, &classic}).Error; err != nil {
		return fmt.Errorf("categories: %w", err)
	}

	admin := entities.User{
		FirstName: "Admin",
		LastName:  "User",
		Email:     "admin@library.com",
		Phone:     "0700000000",
		JoinDate:  date(2024, time.January, 1),
	}
	john := entities.User{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "user1@email.com",
		Phone:     "0711111111",
		JoinDate:  date(2024, time.February, 15),
	}
	if err := tx.Create(&[]*entities.User{&admin, &john}).Error; err != nil {
		return fmt.Errorf("users: %w", err)
	}

	philosopher := entities.Book{
		Title:         "Harry Potter and the Philosopher's Stone",
		AuthorID:      rowling.ID,
		ISBN:          "9780747532699",
		PublishedDate: date(1997, time.June, 26),
		Genre:         "Fantasy",
		Description:   "The first book in the Harry Potter series.",
		Pages:         223,
		Price:         45.99,
		PublisherID:   &bloomsbury.ID,
		Categories:    []entities.Category{fantasy, youngAdult},
	}
	thrones := entities.Book{
		Title:         "A Game of Thrones",
		AuthorID:      martin.ID,
		ISBN:          "9780553103540",
		PublishedDate: date(1996, time.August, 1),
		Genre:         "Fantasy",
		Description:   "The first book in A Song of Ice and Fire.",
		Pages:         694,
		Price:         67.5,
		PublisherID:   &bantam.ID,
		Categories:    []entities.Category{fantasy, epic},
	}
	fellowship := entities.Book{
		Title:         "The Fellowship of the Ring",
		AuthorID:      tolkien.ID,
		ISBN:          "9780547928210",
		PublishedDate: date(1954, time.July, 29),
		Genre:         "Fantasy",
		Description:   "The first volume of The Lord of the Rings.",
		Pages:         423,
		Price:         55.99,
		Categories:    []entities.Category{fantasy, adventure, classic},
	}
	if err := tx.Create(&[]*entities.Book{&philosopher, &thrones, &fellowship}).Error; err != nil {
		return fmt.Errorf("books: %w", err)
	}

	reviews := []entities.Review{
		{
			ReviewerName: john.FullName(),
			Content:      "A magical start to an unforgettable series.",
			Rating:       5,
			ReviewDate:   date(2024, time.March, 1),
			AuthorID:     rowling.ID,
			BookID:       &philosopher.ID,
			UserID:       &john.ID,
		},
		{
			ReviewerName: "Anonymous",
			Content:      "Dense and brutal, but impossible to put down.",
			Rating:       4,
			ReviewDate:   date(2024, time.March, 5),
			AuthorID:     martin.ID,
			BookID:       &thrones.ID,
		},
	}
	if err := tx.Create(&reviews).Error; err != nil {
		return fmt.Errorf("reviews: %w", err)
	}

	reservations := []entities.BookReservation{
		{
			BookID:          philosopher.ID,
			UserID:          john.ID,
			ReservationDate: date(2024, time.July, 1),
			DueDate:         datePtr(2024, time.July, 15),
			Status:          entities.ReservationStatusReserved,
		},
		{
			BookID:          fellowship.ID,
			UserID:          john.ID,
			ReservationDate: date(2024, time.June, 26),
			DueDate:         datePtr(2024, time.July, 10),
			Status:          entities.ReservationStatusBorrowed,
		},
	}
	if err := tx.Create(&reservations).Error; err != nil {
		return fmt.Errorf("reservations: %w", err)
	}

	return nil
}
