package domain

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID           int64
	Username     string
	PasswordHash string `json:"-"`
	Role         Role
	CreatedAt    time.Time
}
