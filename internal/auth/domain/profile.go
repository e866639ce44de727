package domain

import "time"

type UserProfile struct {
	UserID    string
	FullName  string
	Picture   string // URL
	Title     string
	Bio       string
	CreatedAt time.Time
	UpdatedAt time.Time
}
