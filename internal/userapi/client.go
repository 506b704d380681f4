// Package userapi is a client for the remote user collection service
// (GET/POST /users, GET/PUT/DELETE /users/{id}).
package userapi

import "context"

// Client is the interface the user store talks to.
type Client interface {
	// ListUsers fetches one page of users. Pages are 1-based.
	ListUsers(ctx context.Context, page int) (*ListUsersResponse, error)

	// GetUser fetches a single user by id.
	GetUser(ctx context.Context, id int) (*User, error)

	// CreateUser submits a new user and returns the service's representation.
	CreateUser(ctx context.Context, in UserInput) (*CreatedUser, error)

	// UpdateUser replaces the fields of an existing user.
	UpdateUser(ctx context.Context, id int, in UserInput) (*UpdatedUser, error)

	// DeleteUser removes a user.
	DeleteUser(ctx context.Context, id int) error
}
