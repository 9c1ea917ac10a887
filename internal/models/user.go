package models

import "time"

type Role string

const (
	RolePublic Role = "public"
	RoleAdmin  Role = "admin"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	LoginTime time.Time `json:"loginTime"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
