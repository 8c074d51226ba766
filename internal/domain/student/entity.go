package student

import (
	"time"

	"github.com/google/uuid"
)

type Student struct {
	ID                 uuid.UUID
	Name               string
	Email              string
	PasswordHash       string
	Skills             []string
	Interests          []string
	LocationPreference string
	InternshipType     string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type Summary struct {
	ID    uuid.UUID
	Name  string
	Email string
}
