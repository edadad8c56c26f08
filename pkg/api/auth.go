package api

import "google.golang.org/protobuf/types/known/timestamppb"

type User struct {
	ID             string                 `json:"id"`
	Email          string                 `json:"email"`
	DisplayName    string                 `json:"display_name"`
	Role           string                 `json:"role"`
	OrganizationID string                 `json:"organization_id,omitempty"`
	AthleteID      string                 `json:"athlete_id,omitempty"`
	CategoryIDs    []string               `json:"category_ids,omitempty"`
	CreatedAt      *timestamppb.Timestamp `json:"created_at,omitempty"`
}

// RegisterRequest creates an account. Admins create any account, managers
// create athlete accounts of their organization. The first admin is seeded.
type RegisterRequest struct {
	Email          string   `json:"email"`
	DisplayName    string   `json:"display_name"`
	Password       string   `json:"password"`
	Role           string   `json:"role"`
	OrganizationID string   `json:"organization_id,omitempty"`
	AthleteID      string   `json:"athlete_id,omitempty"`
	CategoryIDs    []string `json:"category_ids,omitempty"`
}

type RegisterResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}
