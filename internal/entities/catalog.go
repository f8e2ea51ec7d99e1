package entities

import (
	"time"
)

type Author struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Biography   string    `gorm:"size:2000" json:"biography"`
	BirthDate   time.Time `json:"birth_date"`
	Nationality string    `gorm:"size:100" json:"nationality"`
	Books       []Book    `gorm:"foreignKey:AuthorID" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Publisher struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Address     string    `gorm:"size:500" json:"address"`
	Country     string    `gorm:"size:100" json:"country"`
	FoundedDate time.Time `json:"founded_date"`
	Phone       string    `gorm:"size:50" json:"phone"`
	Email       string    `gorm:"size:100" json:"email"`
	Books       []Book    `gorm:"foreignKey:PublisherID" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"size:500" json:"description"`
	Books       []Book    `gorm:"many2many:book_categories;" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Book struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Title         string     `gorm:"index;size:300;not null" json:"title"`
	AuthorID      uint       `gorm:"index;not null" json:"author_id"`
	ISBN          string     `gorm:"index;size:20" json:"isbn"`
	PublishedDate time.Time  `json:"published_date"`
	Genre         string     `gorm:"size:100" json:"genre"`
	Description   string     `gorm:"size:2000" json:"description"`
	Pages         int        `json:"pages"`
	Price         float64    `gorm:"type:decimal(10,2)" json:"price"`
	PublisherID   *uint      `gorm:"index" json:"publisher_id,omitempty"`
	Author        Author     `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"author"`
	Publisher     *Publisher `gorm:"foreignKey:PublisherID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"publisher,omitempty"`
	Categories    []Category `gorm:"many2many:book_categories;" json:"categories"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"size:100;not null" json:"first_name"`
	LastName  string    `gorm:"size:100;not null" json:"last_name"`
	Email     string    `gorm:"size:150;not null" json:"email"`
	Phone     string    `gorm:"size:50" json:"phone"`
	JoinDate  time.Time `json:"join_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName is the display name used on reservations and reviews.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (Author) TableName() string {
	return "authors"
}

func (Publisher) TableName() string {
	return "publishers"
}

func (Category) TableName() string {
	return "categories"
}

func (Book) TableName() string {
	return "books"
}

func (User) TableName() string {
	return "users"
}

// BookCategoriesTable is the junction table between books and categories.
const BookCategoriesTable = "book_categories"
