package domain

import "time"

type Partner struct {
	ID          string // ULID
	Name        string // unique
	Description string
	Logo        string // URL
	Website     string // URL
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
