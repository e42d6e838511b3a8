package user

import (
	c "medremind/internal/core/domain/common"
	"time"
)

type ID int64

type SessionToken string

func (t SessionToken) String() string {
	return "***"
}

// User is the owner of schedule entries. Accounts are issued elsewhere;
// this service only reads them to resolve contacts and session tokens.
type User struct {
	ID        ID
	Email     c.Optional[c.Email]
	CreatedAt time.Time
}

// ContactAddress returns the address reminders are delivered to.
func (u *User) ContactAddress() (c.Email, bool) {
	if !u.Email.IsPresent || u.Email.Value == "" {
		return "", false
	}
	return u.Email.Value, true
}
