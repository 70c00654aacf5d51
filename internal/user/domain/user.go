package domain

import "time"

type ID string

type User struct {
	ID           ID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Profile is the part of a user other users may see.
type Profile struct {
	Name  string
	Email string
}

func (u User) Profile() Profile {
	return Profile{Name: u.Name, Email: u.Email}
}
