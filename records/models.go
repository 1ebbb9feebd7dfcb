package records

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	auth "github.com/goliatone/go-bookquotes-auth"
	"github.com/uptrace/bun"
)

// DateLayout is the calendar date format used for Book.Published
const DateLayout = "2006-01-02"

// Record is implemented by every owned record type
type Record interface {
	auth.HasOwner
	GetID() int64
	SetID(id int64)
	SetOwner(userID int64)
	OwnerName() string
	Validate() error
	Normalize()
}

// Book is a book a user added to the shared catalog
type Book struct {
	bun.BaseModel `bun:"table:books,alias:bk"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id"`
	Title         string     `bun:"title,notnull" json:"title"`
	Author        string     `bun:"author,notnull" json:"author"`
	Published     string     `bun:"published,nullzero" json:"published,omitempty"`
	UserID        int64      `bun:"user_id,notnull" json:"userId"`
	User          *auth.User `bun:"rel:belongs-to,join:user_id=id" json:"-"`
	CreatedAt     time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"-"`
}

var _ Record = (*Book)(nil)

func (b *Book) OwnerID() int64        { return b.UserID }
func (b *Book) GetID() int64          { return b.ID }
func (b *Book) SetID(id int64)        { b.ID = id }
func (b *Book) SetOwner(userID int64) { b.UserID = userID }

func (b *Book) OwnerName() string {
	if b.User == nil {
		return ""
	}
	return b.User.Username
}

// Normalize trims surrounding whitespace
func (b *Book) Normalize() {
	b.Title = strings.TrimSpace(b.Title)
	b.Author = strings.TrimSpace(b.Author)
	b.Published = strings.TrimSpace(b.Published)
}

func (b *Book) Validate() error {
	return validation.ValidateStruct(b,
		validation.Field(&b.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&b.Author, validation.Required, validation.Length(1, 200)),
		validation.Field(&b.Published, validation.Date(DateLayout)),
	)
}

// Quote is a quote a user added to the shared catalog
type Quote struct {
	bun.BaseModel `bun:"table:quotes,alias:qt"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id"`
	Text          string     `bun:"text,notnull" json:"text"`
	Author        string     `bun:"author,notnull" json:"author"`
	Source        string     `bun:"source,nullzero" json:"source,omitempty"`
	UserID        int64      `bun:"user_id,notnull" json:"userId"`
	User          *auth.User `bun:"rel:belongs-to,join:user_id=id" json:"-"`
	CreatedAt     time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"-"`
}

var _ Record = (*Quote)(nil)

func (q *Quote) OwnerID() int64        { return q.UserID }
func (q *Quote) GetID() int64          { return q.ID }
func (q *Quote) SetID(id int64)        { q.ID = id }
func (q *Quote) SetOwner(userID int64) { q.UserID = userID }

func (q *Quote) OwnerName() string {
	if q.User == nil {
		return ""
	}
	return q.User.Username
}

// Normalize trims surrounding whitespace, author falls back to empty
func (q *Quote) Normalize() {
	q.Text = strings.TrimSpace(q.Text)
	q.Author = strings.TrimSpace(q.Author)
	q.Source = strings.TrimSpace(q.Source)
}

func (q *Quote) Validate() error {
	return validation.ValidateStruct(q,
		validation.Field(&q.Text, validation.Required, validation.Length(1, 1000)),
		validation.Field(&q.Author, validation.Length(0, 200)),
		validation.Field(&q.Source, validation.Length(0, 200)),
	)
}
