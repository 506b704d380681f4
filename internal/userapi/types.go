package userapi

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// User is one administrable record as exchanged with the user service.
type User struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar,omitempty"`
}

// FullName returns "first last".
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// UserInput is the request body for create and update calls.
type UserInput struct {
	FirstName string `json:"first_name" validate:"required,min=2"`
	LastName  string `json:"last_name" validate:"required,min=2"`
	Email     string `json:"email" validate:"required,email"`
	Avatar    string `json:"avatar,omitempty" validate:"omitempty,url"`
}

// ListUsersResponse is the page envelope returned by GET /users?page=N.
type ListUsersResponse struct {
	Page       int    `json:"page"`
	PerPage    int    `json:"per_page"`
	Total      int    `json:"total"`
	TotalPages int    `json:"total_pages"`
	Data       []User `json:"data"`
}

// GetUserResponse is the envelope returned by GET /users/{id}.
type GetUserResponse struct {
	Data User `json:"data"`
}

// CreatedUser is the representation returned by POST /users. The reference
// service echoes the submitted fields and allocates a throwaway id, so
// every field may be missing.
type CreatedUser struct {
	ID        FlexID `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// UpdatedUser is the acknowledgement returned by PUT /users/{id}.
type UpdatedUser struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// FlexID is an integer identifier that decodes from either a JSON number
// or a numeric JSON string. Zero means absent or unparseable.
type FlexID int

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == "" {
		*f = 0
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return fmt.Errorf("userapi: decode id: %w", err)
		}
		s = strings.TrimSpace(str)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		*f = 0
		return nil
	}
	*f = FlexID(n)
	return nil
}
