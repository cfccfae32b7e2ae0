package model

import (
	"time"

	"github.com/google/uuid"
)

type AuthorRequest struct {
	Name        string `json:"name" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	YearOfBirth int    `json:"yearOfBirth" validate:"min=1,max=2024"`
}

type BookRequest struct {
	AuthorIDs      []uuid.UUID `json:"authorIds" validate:"required"`
	Title          string      `json:"title" validate:"required"`
	ISBN           string      `json:"isbn" validate:"required,book_isbn"`
	Genre          string      `json:"genre" validate:"required,genre"`
	NumberOfPages  int         `json:"numberOfPages" validate:"min=1"`
	PublishingYear int         `json:"publishingYear" validate:"min=1,max=2024"`
	TotalCopies    int         `json:"totalCopies" validate:"min=0"`
}

type BookAuthor struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	LastName string    `json:"lastName"`
}

type BookResponse struct {
	ID             uuid.UUID    `json:"id"`
	Title          string       `json:"title"`
	ISBN           string       `json:"isbn"`
	Genre          Genre        `json:"genre"`
	NumberOfPages  int          `json:"numberOfPages"`
	PublishingYear int          `json:"publishingYear"`
	TotalCopies    int          `json:"totalCopies"`
	Authors        []BookAuthor `json:"authors"`
}

func NewBookResponse(b Book) BookResponse {
	return BookResponse{
		ID:             b.ID,
		Title:          b.Title,
		ISBN:           b.ISBN,
		Genre:          b.Genre,
		NumberOfPages:  b.NumberOfPages,
		PublishingYear: b.PublishingYear,
		TotalCopies:    b.TotalCopies,
		Authors:        bookAuthors(b.Authors),
	}
}

func bookAuthors(authors []Author) []BookAuthor {
	out := make([]BookAuthor, 0, len(authors))
	for _, a := range authors {
		out = append(out, BookAuthor{ID: a.ID, Name: a.Name, LastName: a.LastName})
	}
	return out
}

type RentRequest struct {
	BookID     uuid.UUID  `json:"bookId" validate:"required"`
	UserID     string     `json:"userId" validate:"required"`
	DateRented *time.Time `json:"dateRented"`
}

type ReturnRequest struct {
	BookID       uuid.UUID  `json:"bookId" validate:"required"`
	UserID       string     `json:"userId" validate:"required"`
	DateReturned *time.Time `json:"dateReturned"`
}

type RegisterRequest struct {
	UserName    string    `json:"userName" validate:"required"`
	Email       string    `json:"email" validate:"required,email"`
	Password    string    `json:"password" validate:"required"`
	Name        string    `json:"name" validate:"required"`
	LastName    string    `json:"lastName" validate:"required"`
	DateOfBirth time.Time `json:"dateOfBirth" validate:"required"`
}

type UpdateUserRequest struct {
	Name        string    `json:"name" validate:"required"`
	LastName    string    `json:"lastName" validate:"required"`
	DateOfBirth time.Time `json:"dateOfBirth" validate:"required"`
}

type PasswordUpdateRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	UserName    string    `json:"userName"`
	Email       string    `json:"email"`
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type UserProfile struct {
	ID          string    `json:"id"`
	UserName    string    `json:"userName"`
	Name        string    `json:"name"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	DateOfBirth time.Time `json:"dateOfBirth"`
}

// BookRentEntry is one line of a book's rent history.
type BookRentEntry struct {
	ID           uuid.UUID   `json:"id"`
	User         UserProfile `json:"user"`
	DateRented   time.Time   `json:"dateRented"`
	DateReturned *time.Time  `json:"dateReturned"`
}

// BookRentHistory is one line of a user's rent history.
type BookRentHistory struct {
	Title          string       `json:"title"`
	Genre          Genre        `json:"genre"`
	ISBN           string       `json:"isbn"`
	NumberOfPages  int          `json:"numberOfPages"`
	PublishingYear int          `json:"publishingYear"`
	Authors        []BookAuthor `json:"authors"`
	DateRented     time.Time    `json:"dateRented"`
	DateReturned   *time.Time   `json:"dateReturned"`
}

type Created struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type Message struct {
	Message string `json:"message"`
}
