package model

import (
	"fmt"
	"time"
)

const (
	RoleUser     = "user"
	RoleProvider = "provider"
)

type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Not exposed
	Role           string    `json:"role"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	Progress       Progress  `json:"progress"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Progress tracks completion in the four training categories. Updates
// replace the whole record; there is no per-field increment.
type Progress struct {
	CSS          int `json:"css"`
	HTML         int `json:"html"`
	JSChallenges int `json:"jsChallenges"`
	JSTheory     int `json:"jsTheory"`
}

// Validate checks each counter independently so a bad update names the
// offending field.
func (p Progress) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"css", p.CSS},
		{"html", p.HTML},
		{"jsChallenges", p.JSChallenges},
		{"jsTheory", p.JSTheory},
	}
	for _, f := range fields {
		if f.value < 0 {
			return fmt.Errorf("progress field %q must be non-negative", f.name)
		}
	}
	return nil
}
