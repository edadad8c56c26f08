package models

import (
	"time"

	"github.com/google/uuid"
)

// Role names accepted in sessions.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleAthlete = "athlete"
)

// User is a login account. Managers are bound to an organization,
// athletes to their athlete record.
type User struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string

	// Role is one of RoleAdmin, RoleManager, RoleAthlete.
	Role string

	// OrganizationID is set for managers and athletes.
	OrganizationID string

	// AthleteID is set for athlete accounts.
	AthleteID string

	// CategoryIDs optionally narrows a manager to some athlete categories.
	CategoryIDs []string

	CreatedAt int64
	UpdatedAt int64
}

// NewUser creates a user with a fresh ID and timestamps.
func NewUser(email, displayName, passwordHash, role string) *User {
	now := time.Now().Unix()
	return &User{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
