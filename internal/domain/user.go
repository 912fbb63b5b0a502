package domain

import "time"

type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash []byte
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
