package api

import (
	validation "github.com/go-ozzo/ozzo-validation"
	auth "github.com/goliatone/go-bookquotes-auth"
	"github.com/goliatone/go-bookquotes-auth/records"
)

type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type RegisterResponse struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Email    *string `json:"email"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

type BookRequest struct {
	Title     string  `json:"title"`
	Author    string  `json:"author"`
	Published *string `json:"published"`
}

func (r BookRequest) Record() *records.Book {
	book := &records.Book{Title: r.Title, Author: r.Author}
	if r.Published != nil {
		book.Published = *r.Published
	}
	return book
}

type BookDTO struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Author    string  `json:"author"`
	Published *string `json:"published"`
	Username  string  `json:"username"`
	UserID    int64   `json:"userId"`
}

func NewBookDTO(b *records.Book) BookDTO {
	return BookDTO{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Published: optional(b.Published),
		Username:  b.OwnerName(),
		UserID:    b.UserID,
	}
}

type QuoteRequest struct {
	Text   string  `json:"text"`
	Author *string `json:"author"`
	Source *string `json:"source"`
}

func (r QuoteRequest) Record() *records.Quote {
	quote := &records.Quote{Text: r.Text}
	if r.Author != nil {
		quote.Author = *r.Author
	}
	if r.Source != nil {
		quote.Source = *r.Source
	}
	return quote
}

type QuoteDTO struct {
	ID       int64   `json:"id"`
	Text     string  `json:"text"`
	Author   string  `json:"author"`
	Source   *string `json:"source"`
	Username string  `json:"username"`
	UserID   int64   `json:"userId"`
}

func NewQuoteDTO(q *records.Quote) QuoteDTO {
	return QuoteDTO{
		ID:       q.ID,
		Text:     q.Text,
		Author:   q.Author,
		Source:   optional(q.Source),
		Username: q.OwnerName(),
		UserID:   q.UserID,
	}
}

func newRegisterResponse(u *auth.User) RegisterResponse {
	return RegisterResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    optional(u.Email),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
