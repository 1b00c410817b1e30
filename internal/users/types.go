package users

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Account status values.
const (
	StatusBlocked = 0
	StatusActive  = 1
)

// Reserved user IDs.
const (
	AnonymousUID int64 = 0
	AdminUID     int64 = 1
)

// PlaceholderAdmin is the name, mail and init value of the administrator
// account until the site owner claims it.
const PlaceholderAdmin = "placeholder-for-uid-1"

// User is a site account.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID                uuid.UUID `bun:",pk,type:uuid" json:"id"`
	UID               int64     `bun:"uid,notnull,unique" json:"uid"`
	Name              string    `bun:"name,notnull" json:"name"`
	Mail              string    `bun:"mail,notnull" json:"mail"`
	Init              string    `bun:"init,notnull" json:"init"`
	Status            int       `bun:"status,notnull" json:"status"`
	Langcode          string    `bun:"langcode,notnull" json:"langcode"`
	PreferredLangcode string    `bun:"preferred_langcode,notnull" json:"preferred_langcode"`
	CreatedAt         time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// Active reports whether the account may sign in.
func (u *User) Active() bool {
	return u != nil && u.Status == StatusActive
}

// NotFoundError is returned when a user does not exist.
type NotFoundError struct {
	UID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("user not found: %d", e.UID)
}
