package http

import (
	"time"

	"github.com/Tocea2003/Practica-BookSystem/internal/entities"
	"github.com/Tocea2003/Practica-BookSystem/internal/library"
)

// Wire types use camelCase field names and yyyy-MM-dd dates, the format the
// frontend consumes.

// dateOrEmpty formats t, or returns "" for the zero time.
func dateOrEmpty(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return library.FormatDate(t)
}

// parseDateField parses an optional request date; blank means unset.
func parseDateField(raw *string) (*time.Time, error) {
	return library.ParseOptionalDate(raw)
}

func mergeString(dst *string, src *string) {
	if src != nil && *src != "" {
		*dst = *src
	}
}

// --- Authors ---

type AuthorDTO struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Biography   string `json:"biography"`
	BirthDate   string `json:"birthDate"`
	Nationality string `json:"nationality"`
}

type CreateAuthorRequest struct {
	Name        string  `json:"name" binding:"required,max=200"`
	Biography   string  `json:"biography" binding:"max=2000"`
	BirthDate   *string `json:"birthDate" binding:"omitempty,date"`
	Nationality string  `json:"nationality" binding:"max=100"`
}

type UpdateAuthorRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=200"`
	Biography   *string `json:"biography" binding:"omitempty,max=2000"`
	BirthDate   *string `json:"birthDate" binding:"omitempty,date"`
	Nationality *string `json:"nationality" binding:"omitempty,max=100"`
}

func toAuthorDTO(a entities.Author) AuthorDTO {
	return AuthorDTO{
		ID:          a.ID,
		Name:        a.Name,
		Biography:   a.Biography,
		BirthDate:   dateOrEmpty(a.BirthDate),
		Nationality: a.Nationality,
	}
}

func (r CreateAuthorRequest) input() (library.AuthorInput, error) {
	birth, err := parseDateField(r.BirthDate)
	if err != nil {
		return library.AuthorInput{}, err
	}
	return library.AuthorInput{
		Name:        r.Name,
		Biography:   r.Biography,
		BirthDate:   birth,
		Nationality: r.Nationality,
	}, nil
}

// merge overlays the supplied fields on the stored author.
func (r UpdateAuthorRequest) merge(a *entities.Author) (library.AuthorInput, error) {
	in := library.AuthorInput{
		Name:        a.Name,
		Biography:   a.Biography,
		Nationality: a.Nationality,
	}
	mergeString(&in.Name, r.Name)
	mergeString(&in.Biography, r.Biography)
	mergeString(&in.Nationality, r.Nationality)
	birth, err := parseDateField(r.BirthDate)
	if err != nil {
		return library.AuthorInput{}, err
	}
	in.BirthDate = birth
	return in, nil
}

// --- Publishers ---

type PublisherDTO struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Country     string `json:"country"`
	FoundedDate string `json:"foundedDate"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
}

type CreatePublisherRequest struct {
	Name        string  `json:"name" binding:"required,max=200"`
	Address     string  `json:"address" binding:"max=500"`
	Country     string  `json:"country" binding:"max=100"`
	FoundedDate *string `json:"foundedDate" binding:"omitempty,date"`
	Phone       string  `json:"phone" binding:"max=50"`
	Email       string  `json:"email" binding:"omitempty,email,max=100"`
}

type UpdatePublisherRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=200"`
	Address     *string `json:"address" binding:"omitempty,max=500"`
	Country     *string `json:"country" binding:"omitempty,max=100"`
	FoundedDate *string `json:"foundedDate" binding:"omitempty,date"`
	Phone       *string `json:"phone" binding:"omitempty,max=50"`
	Email       *string `json:"email" binding:"omitempty,email,max=100"`
}

func toPublisherDTO(p entities.Publisher) PublisherDTO {
	return PublisherDTO{
		ID:          p.ID,
		Name:        p.Name,
		Address:     p.Address,
		Country:     p.Country,
		FoundedDate: dateOrEmpty(p.FoundedDate),
		Phone:       p.Phone,
		Email:       p.Email,
	}
}

func (r CreatePublisherRequest) input() (library.PublisherInput, error) {
	founded, err := parseDateField(r.FoundedDate)
	if err != nil {
		return library.PublisherInput{}, err
	}
	return library.PublisherInput{
		Name:        r.Name,
		Address:     r.Address,
		Country:     r.Country,
		FoundedDate: founded,
		Phone:       r.Phone,
		Email:       r.Email,
	}, nil
}

func (r UpdatePublisherRequest) merge(p *entities.Publisher) (library.PublisherInput, error) {
	in := library.PublisherInput{
		Name:    p.Name,
		Address: p.Address,
		Country: p.Country,
		Phone:   p.Phone,
		Email:   p.Email,
	}
	mergeString(&in.Name, r.Name)
	mergeString(&in.Address, r.Address)
	mergeString(&in.Country, r.Country)
	mergeString(&in.Phone, r.Phone)
	mergeString(&in.Email, r.Email)
	founded, err := parseDateField(r.FoundedDate)
	if err != nil {
		return library.PublisherInput{}, err
	}
	in.FoundedDate = founded
	return in, nil
}

// --- Categories ---

type CategoryDTO struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

func toCategoryDTO(c entities.Category) CategoryDTO {
	return CategoryDTO{ID: c.ID, Name: c.Name, Description: c.Description}
}

func (r CreateCategoryRequest) input() library.CategoryInput {
	return library.CategoryInput{Name: r.Name, Description: r.Description}
}

func (r UpdateCategoryRequest) merge(c *entities.Category) library.CategoryInput {
	in := library.CategoryInput{Name: c.Name, Description: c.Description}
	mergeString(&in.Name, r.Name)
	mergeString(&in.Description, r.Description)
	return in
}

// --- Books ---

type BookDTO struct {
	ID            uint          `json:"id"`
	Title         string        `json:"title"`
	AuthorID      uint          `json:"authorId"`
	AuthorName    string        `json:"authorName,omitempty"`
	ISBN          string        `json:"isbn"`
	PublishedDate string        `json:"publishedDate"`
	Genre         string        `json:"genre"`
	Description   string        `json:"description"`
	Pages         int           `json:"pages"`
	Price         float64       `json:"price"`
	PublisherID   *uint         `json:"publisherId"`
	PublisherName *string       `json:"publisherName"`
	Categories    []CategoryDTO `json:"categories"`
}

type CreateBookRequest struct {
	Title         string  `json:"title" binding:"required,max=300"`
	AuthorID      uint    `json:"authorId" binding:"required"`
	ISBN          string  `json:"isbn" binding:"max=20"`
	PublishedDate *string `json:"publishedDate" binding:"omitempty,date"`
	Genre         string  `json:"genre" binding:"max=100"`
	Description   string  `json:"description" binding:"max=2000"`
	Pages         int     `json:"pages" binding:"gte=0"`
	Price         float64 `json:"price" binding:"gte=0"`
	PublisherID   *uint   `json:"publisherId"`
	CategoryIDs   []uint  `json:"categoryIds"`
}

type UpdateBookRequest struct {
	Title         *string  `json:"title" binding:"omitempty,max=300"`
	AuthorID      *uint    `json:"authorId"`
	ISBN          *string  `json:"isbn" binding:"omitempty,max=20"`
	PublishedDate *string  `json:"publishedDate" binding:"omitempty,date"`
	Genre         *string  `json:"genre" binding:"omitempty,max=100"`
	Description   *string  `json:"description" binding:"omitempty,max=2000"`
	Pages         *int     `json:"pages" binding:"omitempty,gte=0"`
	Price         *float64 `json:"price" binding:"omitempty,gte=0"`
	PublisherID   *uint    `json:"publisherId"`
	CategoryIDs   []uint   `json:"categoryIds"`
}

func toBookDTO(b entities.Book) BookDTO {
	dto := BookDTO{
		ID:            b.ID,
		Title:         b.Title,
		AuthorID:      b.AuthorID,
		AuthorName:    b.Author.Name,
		ISBN:          b.ISBN,
		PublishedDate: dateOrEmpty(b.PublishedDate),
		Genre:         b.Genre,
		Description:   b.Description,
		Pages:         b.Pages,
		Price:         b.Price,
		PublisherID:   b.PublisherID,
		Categories:    make([]CategoryDTO, 0, len(b.Categories)),
	}
	if b.Publisher != nil {
		dto.PublisherName = &b.Publisher.Name
	}
	for _, c := range b.Categories {
		dto.Categories = append(dto.Categories, toCategoryDTO(c))
	}
	return dto
}

func (r CreateBookRequest) input() (library.BookInput, error) {
	published, err := parseDateField(r.PublishedDate)
	if err != nil {
		return library.BookInput{}, err
	}
	return library.BookInput{
		Title:         r.Title,
		AuthorID:      r.AuthorID,
		ISBN:          r.ISBN,
		PublishedDate: published,
		Genre:         r.Genre,
		Description:   r.Description,
		Pages:         r.Pages,
		Price:         r.Price,
		PublisherID:   r.PublisherID,
		CategoryIDs:   r.CategoryIDs,
	}, nil
}

// merge overlays the supplied fields on the stored book. Omitted category
// ids keep the current categories; an empty list clears them.
func (r UpdateBookRequest) merge(b *entities.Book) (library.BookInput, error) {
	in := library.BookInput{
		Title:       b.Title,
		AuthorID:    b.AuthorID,
		ISBN:        b.ISBN,
		Genre:       b.Genre,
		Description: b.Description,
		Pages:       b.Pages,
		Price:       b.Price,
		PublisherID: b.PublisherID,
	}
	mergeString(&in.Title, r.Title)
	mergeString(&in.ISBN, r.ISBN)
	mergeString(&in.Genre, r.Genre)
	mergeString(&in.Description, r.Description)
	if r.AuthorID != nil {
		in.AuthorID = *r.AuthorID
	}
	if r.Pages != nil {
		in.Pages = *r.Pages
	}
	if r.Price != nil {
		in.Price = *r.Price
	}
	if r.PublisherID != nil {
		in.PublisherID = r.PublisherID
	}

	if r.CategoryIDs != nil {
		in.CategoryIDs = r.CategoryIDs
	} else {
		in.CategoryIDs = make([]uint, 0, len(b.Categories))
		for _, c := range b.Categories {
			in.CategoryIDs = append(in.CategoryIDs, c.ID)
		}
	}

	published, err := parseDateField(r.PublishedDate)
	if err != nil {
		return library.BookInput{}, err
	}
	in.PublishedDate = published
	return in, nil
}

// --- Users ---

type UserDTO struct {
	ID               uint   `json:"id"`
	Username         string `json:"username"`
	Email            string `json:"email"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Phone            string `json:"phone"`
	RegistrationDate string `json:"registrationDate"`
}

type CreateUserRequest struct {
	FirstName string `json:"firstName" binding:"required,max=100"`
	LastName  string `json:"lastName" binding:"required,max=100"`
	Email     string `json:"email" binding:"required,email,max=150"`
	Phone     string `json:"phone" binding:"max=50"`
}

type UpdateUserRequest struct {
	FirstName *string `json:"firstName" binding:"omitempty,max=100"`
	LastName  *string `json:"lastName" binding:"omitempty,max=100"`
	Email     *string `json:"email" binding:"omitempty,email,max=150"`
	Phone     *string `json:"phone" binding:"omitempty,max=50"`
}

func toUserDTO(u entities.User) UserDTO {
	return UserDTO{
		ID:               u.ID,
		Username:         u.FullName(),
		Email:            u.Email,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Phone:            u.Phone,
		RegistrationDate: dateOrEmpty(u.JoinDate),
	}
}

func (r CreateUserRequest) input() library.UserInput {
	return library.UserInput{FirstName: r.FirstName, LastName: r.LastName, Email: r.Email, Phone: r.Phone}
}

func (r UpdateUserRequest) merge(u *entities.User) library.UserInput {
	in := library.UserInput{FirstName: u.FirstName, LastName: u.LastName, Email: u.Email, Phone: u.Phone}
	mergeString(&in.FirstName, r.FirstName)
	mergeString(&in.LastName, r.LastName)
	mergeString(&in.Email, r.Email)
	mergeString(&in.Phone, r.Phone)
	return in
}

// --- Reviews ---

type ReviewDTO struct {
	ID         uint   `json:"id"`
	BookID     *uint  `json:"bookId"`
	AuthorID   uint   `json:"authorId"`
	UserID     *uint  `json:"userId"`
	UserName   string `json:"userName"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
	ReviewDate string `json:"reviewDate"`
}

type CreateReviewRequest struct {
	AuthorID     uint   `json:"authorId" binding:"required"`
	BookID       *uint  `json:"bookId"`
	UserID       *uint  `json:"userId"`
	ReviewerName string `json:"reviewerName" binding:"max=100"`
	Rating       int    `json:"rating" binding:"required,min=1,max=5"`
	Comment      string `json:"comment" binding:"required,max=2000"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" binding:"omitempty,max=2000"`
}

func toReviewDTO(r entities.Review) ReviewDTO {
	return ReviewDTO{
		ID:         r.ID,
		BookID:     r.BookID,
		AuthorID:   r.AuthorID,
		UserID:     r.UserID,
		UserName:   r.ReviewerName,
		Rating:     r.Rating,
		Comment:    r.Content,
		ReviewDate: dateOrEmpty(r.ReviewDate),
	}
}

// input maps zero ids to "no reference"; the frontend sends 0 for an
// unselected book or user.
func (r CreateReviewRequest) input() library.ReviewInput {
	return library.ReviewInput{
		AuthorID:     r.AuthorID,
		BookID:       nonZero(r.BookID),
		UserID:       nonZero(r.UserID),
		ReviewerName: r.ReviewerName,
		Rating:       r.Rating,
		Comment:      r.Comment,
	}
}

func (r UpdateReviewRequest) merge(rv *entities.Review) library.ReviewInput {
	in := library.ReviewInput{
		AuthorID:     rv.AuthorID,
		BookID:       rv.BookID,
		UserID:       rv.UserID,
		ReviewerName: rv.ReviewerName,
		Rating:       rv.Rating,
		Comment:      rv.Content,
	}
	if r.Rating != nil {
		in.Rating = *r.Rating
	}
	mergeString(&in.Comment, r.Comment)
	return in
}

func nonZero(id *uint) *uint {
	if id == nil || *id == 0 {
		return nil
	}
	return id
}

// --- Reservations ---

type ReservationDTO struct {
	ID              uint     `json:"id"`
	BookID          uint     `json:"bookId"`
	BookTitle       string   `json:"bookTitle"`
	UserID          uint     `json:"userId"`
	UserName        string   `json:"userName"`
	ReservationDate string   `json:"reservationDate"`
	DueDate         *string  `json:"dueDate"`
	ReturnDate      *string  `json:"returnDate"`
	Status          string   `json:"status"`
	Fine            *float64 `json:"fine"`
}

type CreateReservationRequest struct {
	BookID  uint    `json:"bookId" binding:"required"`
	UserID  uint    `json:"userId" binding:"required"`
	DueDate *string `json:"dueDate" binding:"omitempty,date"`
	Status  string  `json:"status" binding:"omitempty,reservation_status"`
}

type UpdateReservationRequest struct {
	DueDate    *string  `json:"dueDate" binding:"omitempty,date"`
	ReturnDate *string  `json:"returnDate" binding:"omitempty,date"`
	Status     *string  `json:"status" binding:"omitempty,reservation_status"`
	Fine       *float64 `json:"fine" binding:"omitempty,gte=0"`
}

func toReservationDTO(r entities.BookReservation) ReservationDTO {
	return ReservationDTO{
		ID:              r.ID,
		BookID:          r.BookID,
		BookTitle:       r.Book.Title,
		UserID:          r.UserID,
		UserName:        r.User.FullName(),
		ReservationDate: library.FormatDate(r.ReservationDate),
		DueDate:         library.FormatOptionalDate(r.DueDate),
		ReturnDate:      library.FormatOptionalDate(r.ReturnDate),
		Status:          string(r.Status),
		Fine:            r.Fine,
	}
}

func (r CreateReservationRequest) input() (library.CreateReservationInput, error) {
	due, err := parseDateField(r.DueDate)
	if err != nil {
		return library.CreateReservationInput{}, err
	}
	return library.CreateReservationInput{
		BookID:  r.BookID,
		UserID:  r.UserID,
		DueDate: due,
		Status:  entities.ReservationStatus(r.Status),
	}, nil
}

func (r UpdateReservationRequest) input() (library.UpdateReservationInput, error) {
	due, err := parseDateField(r.DueDate)
	if err != nil {
		return library.UpdateReservationInput{}, err
	}
	returned, err := parseDateField(r.ReturnDate)
	if err != nil {
		return library.UpdateReservationInput{}, err
	}
	in := library.UpdateReservationInput{DueDate: due, ReturnDate: returned, Fine: r.Fine}
	if r.Status != nil {
		status := entities.ReservationStatus(*r.Status)
		in.Status = &status
	}
	return in, nil
}

// --- Lists ---

func mapSlice[T, D any](items []T, fn func(T) D) []D {
	out := make([]D, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}
