package domain

import "time"

type User struct {
	UID       int64
	Email     string
	Nickname  string
	Password  string
	Avatar    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
