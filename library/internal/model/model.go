package model

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusDeleted Status = "DELETED"
)

type Author struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	LastName    string    `json:"lastName" db:"last_name"`
	YearOfBirth int       `json:"yearOfBirth" db:"year_of_birth"`
	Status      Status    `json:"-" db:"status"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	ModifiedAt  time.Time `json:"modifiedAt" db:"modified_at"`
}

type Book struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Title          string    `json:"title" db:"title"`
	ISBN           string    `json:"isbn" db:"isbn"`
	Genre          Genre     `json:"genre" db:"genre"`
	NumberOfPages  int       `json:"numberOfPages" db:"number_of_pages"`
	PublishingYear int       `json:"publishingYear" db:"publishing_year"`
	TotalCopies    int       `json:"totalCopies" db:"total_copies"`
	Status         Status    `json:"-" db:"status"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	ModifiedAt     time.Time `json:"modifiedAt" db:"modified_at"`
	Authors        []Author  `json:"authors" db:"-"`
}

func (b Book) AuthorIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(b.Authors))
	for _, a := range b.Authors {
		ids = append(ids, a.ID)
	}
	return ids
}

// AuthorLinks returns the join rows of the book.
func (b Book) AuthorLinks() []BookAuthorLink {
	links := make([]BookAuthorLink, 0, len(b.Authors))
	for _, a := range b.Authors {
		links = append(links, BookAuthorLink{BookID: b.ID, AuthorID: a.ID})
	}
	return links
}

// BookAuthorLink is a row of the book/author join table.
type BookAuthorLink struct {
	BookID   uuid.UUID `db:"book_id"`
	AuthorID uuid.UUID `db:"author_id"`
}

type Rent struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	BookID       uuid.UUID  `json:"bookId" db:"book_id"`
	UserID       string     `json:"userId" db:"user_id"`
	DateRented   time.Time  `json:"dateRented" db:"date_rented"`
	DateReturned *time.Time `json:"dateReturned" db:"date_returned"`
	Book         *Book      `json:"-" db:"-"`
}

func (r Rent) IsOpen() bool {
	return r.DateReturned == nil
}

// User is the domain copy of an identity, kept for joins.
type User struct {
	ID       string `json:"id" db:"id"`
	UserName string `json:"userName" db:"user_name"`
	Email    string `json:"email" db:"email"`
}

type UserIdentity struct {
	ID           string    `db:"id"`
	UserName     string    `db:"user_name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Name         string    `db:"name"`
	LastName     string    `db:"last_name"`
	DateOfBirth  time.Time `db:"date_of_birth"`
	CreatedAt    time.Time `db:"created_at"`
}

func (u UserIdentity) Profile() UserProfile {
	return UserProfile{
		ID:          u.ID,
		UserName:    u.UserName,
		Name:        u.Name,
		LastName:    u.LastName,
		Email:       u.Email,
		DateOfBirth: u.DateOfBirth,
	}
}

type RentEventType string

const (
	RentEventRented   RentEventType = "RENTED"
	RentEventReturned RentEventType = "RETURNED"
)

type RentEvent struct {
	Type       RentEventType `json:"type"`
	RentID     uuid.UUID     `json:"rentId"`
	BookID     uuid.UUID     `json:"bookId"`
	UserID     string        `json:"userId"`
	OccurredAt time.Time     `json:"occurredAt"`
}
