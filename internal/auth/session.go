package auth

import (
	"errors"
	"slices"

	"github.com/mmynk/clubledger/internal/models"
)

// ErrForbidden is returned when a session does not own the entity it acts on.
var ErrForbidden = errors.New("not allowed for this session")

// Session is the acting identity of a request. It is built once at the edge
// and passed explicitly into every service operation.
type Session struct {
	UserID         string
	Role           string
	AthleteID      string
	OrganizationID string

	// CategoryIDs narrows a manager to athletes of these categories. Empty means all.
	CategoryIDs []string
}

// IsStaff reports whether the session may record payments and read analytics.
func (s Session) IsStaff() bool {
	return s.Role == models.RoleAdmin || s.Role == models.RoleManager
}

// CanActForAthlete reports whether the session owns the athlete:
// admins own everyone, managers own athletes of their organization
// (and categories, when restricted), athletes own themselves.
func (s Session) CanActForAthlete(athlete *models.Athlete) bool {
	switch s.Role {
	case models.RoleAdmin:
		return true
	case models.RoleManager:
		if athlete.OrganizationID != s.OrganizationID {
			return false
		}
		return len(s.CategoryIDs) == 0 || slices.Contains(s.CategoryIDs, athlete.CategoryID)
	case models.RoleAthlete:
		return s.AthleteID != "" && athlete.ID == s.AthleteID
	default:
		return false
	}
}

// CanManageOrganization reports whether the session may read an organization's finances.
func (s Session) CanManageOrganization(orgID string) bool {
	switch s.Role {
	case models.RoleAdmin:
		return true
	case models.RoleManager:
		return orgID != "" && orgID == s.OrganizationID
	default:
		return false
	}
}

// SessionFromUser builds the session for a stored user.
func SessionFromUser(user *models.User) Session {
	return Session{
		UserID:         user.ID,
		Role:           user.Role,
		AthleteID:      user.AthleteID,
		OrganizationID: user.OrganizationID,
		CategoryIDs:    user.CategoryIDs,
	}
}
