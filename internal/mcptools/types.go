package mcptools

import (
	"github.com/dusk-indust/useradmin/internal/userapi"
	"github.com/dusk-indust/useradmin/internal/userstore"
)

// --- MCP Tool Input Types ---
// The MCP Go SDK derives each tool's JSON schema from these struct tags.

// ListUsersInput is the input for the list_users MCP tool.
type ListUsersInput struct {
	Page int `json:"page,omitempty" jsonschema:"page to fetch (1-based); omit to return the current page without refetching"`
}

// ListUsersOutput is the result of the list_users MCP tool.
type ListUsersOutput struct {
	State   userstore.State `json:"state"`
	Visible []userapi.User  `json:"visible"`
}

// SetSearchInput is the input for the set_search MCP tool.
type SetSearchInput struct {
	Query string `json:"query" jsonschema:"case-insensitive substring matched against full name and email; empty clears the filter"`
}

// GetUserInput is the input for the get_user MCP tool.
type GetUserInput struct {
	ID int `json:"id" jsonschema:"user id"`
}

// UserOutput wraps a single user record.
type UserOutput struct {
	User userapi.User `json:"user"`
}

// AddUserInput is the input for the add_user MCP tool.
type AddUserInput struct {
	FirstName string `json:"firstName" jsonschema:"first name (at least 2 characters)"`
	LastName  string `json:"lastName" jsonschema:"last name (at least 2 characters)"`
	Email     string `json:"email" jsonschema:"email address"`
	Avatar    string `json:"avatar,omitempty" jsonschema:"avatar image URL (default: a placeholder face)"`
}

// UpdateUserInput is the input for the update_user MCP tool.
type UpdateUserInput struct {
	ID        int    `json:"id" jsonschema:"id of the user to update"`
	FirstName string `json:"firstName" jsonschema:"new first name"`
	LastName  string `json:"lastName" jsonschema:"new last name"`
	Email     string `json:"email" jsonschema:"new email address"`
	Avatar    string `json:"avatar,omitempty" jsonschema:"new avatar URL; omit to keep the current one"`
}

// DeleteUserInput is the input for the delete_user MCP tool.
type DeleteUserInput struct {
	ID int `json:"id" jsonschema:"id of the user to delete"`
}

// SearchRemoteInput is the input for the search_remote MCP tool.
type SearchRemoteInput struct {
	Query string `json:"query" jsonschema:"substring matched against full name and email across every remote page"`
}

// SearchRemoteOutput is the result of the search_remote MCP tool.
type SearchRemoteOutput struct {
	Users []userapi.User `json:"users"`
	Total int            `json:"total"`
}
