package entities

import "time"

// Review is a reader's opinion about an author's work. Book and user
// references are optional; older reviews only carry the reviewer's name.
type Review struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ReviewerName string    `gorm:"size:100;not null" json:"reviewer_name"`
	Content      string    `gorm:"size:2000;not null" json:"content"`
	Rating       int       `gorm:"not null" json:"rating"`
	ReviewDate   time.Time `json:"review_date"`
	AuthorID     uint      `gorm:"index;not null" json:"author_id"`
	BookID       *uint     `gorm:"index" json:"book_id,omitempty"`
	UserID       *uint     `gorm:"index" json:"user_id,omitempty"`
	Author       Author    `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	Book         *Book     `gorm:"foreignKey:BookID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	User         *User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Review) TableName() string {
	return "reviews"
}

const (
	MinRating = 1
	MaxRating = 5
)
