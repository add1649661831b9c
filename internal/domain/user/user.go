package user

import "time"

type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Phone        string
	IsAdmin      bool
	CreatedAt    time.Time
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
