package model

import "time"

// User is the account behind a console session, as returned by /auth/me/.
type User struct {
	ID             int       `db:"id"              json:"id"`
	Username       string    `db:"username"        json:"username"`
	Email          string    `db:"email"           json:"email"`
	FullName       string    `db:"full_name"       json:"full_name"`
	Role           string    `db:"role"            json:"role"`
	IsActive       bool      `db:"is_active"       json:"is_active"`
	HashedPassword string    `db:"hashed_password" json:"-"`
	CreatedAt      time.Time `db:"created_at"      json:"created_at"`
}

// DisplayName is what the account menu shows.
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

// Registration is the payload of /auth/register/.
type Registration struct {
	Username string `json:"username" form:"username"  binding:"required"`
	Email    string `json:"email"    form:"email"     binding:"required,email"`
	FullName string `json:"full_name" form:"full_name" binding:"required"`
	Password string `json:"password" form:"password"  binding:"required,min=8"`
}
