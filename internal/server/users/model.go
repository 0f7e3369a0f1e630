package users

import "time"

// User is the persisted account record. Password holds the bcrypt hash and
// is never serialized to API responses.
type User struct {
	ID        int64
	Name      string
	Email     string
	Password  string
	Age       int
	CreatedAt time.Time
	UpdatedAt time.Time
}
