package auth

import (
	"time"

	"github.com/uptrace/bun"
)

// User is the user model. Rows are created at registration and never
// updated afterwards.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	Username      string    `bun:"username,notnull,unique" json:"username"`
	Email         string    `bun:"email,nullzero,unique" json:"email,omitempty"`
	PasswordHash  []byte    `bun:"password_hash,notnull" json:"-"`
	PasswordSalt  []byte    `bun:"password_salt,notnull" json:"-"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
}

// Identity returns the read only view handed out after authentication
func (u *User) Identity() Identity {
	return authIdentity{
		id:       u.ID,
		username: u.Username,
		email:    u.Email,
	}
}

type authIdentity struct {
	id       int64
	username string
	email    string
}

func (a authIdentity) ID() int64 {
	return a.id
}

func (a authIdentity) Username() string {
	return a.username
}

func (a authIdentity) Email() string {
	return a.email
}

var _ Identity = authIdentity{}
