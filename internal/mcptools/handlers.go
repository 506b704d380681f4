package mcptools

import (
	"context"
	"fmt"

	"github.com/dusk-indust/useradmin/internal/userapi"
	"github.com/dusk-indust/useradmin/internal/userstore"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// UserService exposes a user store to MCP tool handlers.
type UserService struct {
	store  *userstore.Store
	logger *zap.Logger
}

// ServiceOption configures a UserService.
type ServiceOption func(*UserService)

// WithLogger sets the logger used by the HTTP transport.
func WithLogger(l *zap.Logger) ServiceOption {
	return func(s *UserService) {
		s.logger = l
	}
}

// NewUserService creates a UserService backed by store.
func NewUserService(store *userstore.Store, opts ...ServiceOption) *UserService {
	s := &UserService{store: store, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListUsers returns the store state. When a page is given it is fetched
// first.
func (s *UserService) ListUsers(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListUsersInput,
) (*mcp.CallToolResult, ListUsersOutput, error) {
	if input.Page < 0 {
		return nil, ListUsersOutput{}, fmt.Errorf("page must be positive, got %d", input.Page)
	}
	if input.Page > 0 {
		if err := s.store.SetCurrentPage(ctx, input.Page); err != nil {
			return nil, ListUsersOutput{}, err
		}
	}
	return nil, snapshotOutput(s.store.Snapshot()), nil
}

// SetSearch changes the search query and returns the filtered state.
func (s *UserService) SetSearch(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SetSearchInput,
) (*mcp.CallToolResult, ListUsersOutput, error) {
	s.store.SetSearchQuery(input.Query)
	return nil, snapshotOutput(s.store.Snapshot()), nil
}

// GetUser returns one user, from the loaded page when present.
func (s *UserService) GetUser(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetUserInput,
) (*mcp.CallToolResult, UserOutput, error) {
	if input.ID <= 0 {
		return nil, UserOutput{}, fmt.Errorf("id is required")
	}
	u, err := s.store.GetUser(ctx, input.ID)
	if err != nil {
		return nil, UserOutput{}, err
	}
	return nil, UserOutput{User: u}, nil
}

// AddUser creates a user and returns the record as stored locally.
func (s *UserService) AddUser(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddUserInput,
) (*mcp.CallToolResult, UserOutput, error) {
	u, err := s.store.AddUser(ctx, userapi.UserInput{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Avatar:    input.Avatar,
	})
	if err != nil {
		return nil, UserOutput{}, err
	}
	return nil, UserOutput{User: u}, nil
}

// UpdateUser replaces a user's fields and returns the resulting state.
func (s *UserService) UpdateUser(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UpdateUserInput,
) (*mcp.CallToolResult, ListUsersOutput, error) {
	if input.ID <= 0 {
		return nil, ListUsersOutput{}, fmt.Errorf("id is required")
	}
	err := s.store.UpdateUser(ctx, input.ID, userapi.UserInput{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Avatar:    input.Avatar,
	})
	if err != nil {
		return nil, ListUsersOutput{}, err
	}
	return nil, snapshotOutput(s.store.Snapshot()), nil
}

// DeleteUser removes a user and returns the resulting state.
func (s *UserService) DeleteUser(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DeleteUserInput,
) (*mcp.CallToolResult, ListUsersOutput, error) {
	if input.ID <= 0 {
		return nil, ListUsersOutput{}, fmt.Errorf("id is required")
	}
	if err := s.store.DeleteUser(ctx, input.ID); err != nil {
		return nil, ListUsersOutput{}, err
	}
	return nil, snapshotOutput(s.store.Snapshot()), nil
}

// SearchRemote matches query against every page of the service. The
// store state is not changed.
func (s *UserService) SearchRemote(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchRemoteInput,
) (*mcp.CallToolResult, SearchRemoteOutput, error) {
	users, err := s.store.SearchRemote(ctx, input.Query)
	if err != nil {
		return nil, SearchRemoteOutput{}, err
	}
	return nil, SearchRemoteOutput{Users: users, Total: len(users)}, nil
}

func snapshotOutput(st userstore.State) ListUsersOutput {
	return ListUsersOutput{State: st, Visible: st.Visible()}
}
