package userstore

import (
	"context"
	"errors"
	"sync"

	"github.com/dusk-indust/useradmin/internal/userapi"
)

// mockClient implements userapi.Client for store tests. Each method is
// wired to an optional function; unset methods fail.
type mockClient struct {
	listUsers  func(ctx context.Context, page int) (*userapi.ListUsersResponse, error)
	getUser    func(ctx context.Context, id int) (*userapi.User, error)
	createUser func(ctx context.Context, in userapi.UserInput) (*userapi.CreatedUser, error)
	updateUser func(ctx context.Context, id int, in userapi.UserInput) (*userapi.UpdatedUser, error)
	deleteUser func(ctx context.Context, id int) error

	mu    sync.Mutex
	calls []string
}

var errNotWired = errors.New("not implemented")

func (m *mockClient) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *mockClient) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *mockClient) ListUsers(ctx context.Context, page int) (*userapi.ListUsersResponse, error) {
	m.record("list")
	if m.listUsers == nil {
		return nil, errNotWired
	}
	return m.listUsers(ctx, page)
}

func (m *mockClient) GetUser(ctx context.Context, id int) (*userapi.User, error) {
	m.record("get")
	if m.getUser == nil {
		return nil, errNotWired
	}
	return m.getUser(ctx, id)
}

func (m *mockClient) CreateUser(ctx context.Context, in userapi.UserInput) (*userapi.CreatedUser, error) {
	m.record("create")
	if m.createUser == nil {
		return nil, errNotWired
	}
	return m.createUser(ctx, in)
}

func (m *mockClient) UpdateUser(ctx context.Context, id int, in userapi.UserInput) (*userapi.UpdatedUser, error) {
	m.record("update")
	if m.updateUser == nil {
		return nil, errNotWired
	}
	return m.updateUser(ctx, id, in)
}

func (m *mockClient) DeleteUser(ctx context.Context, id int) error {
	m.record("delete")
	if m.deleteUser == nil {
		return errNotWired
	}
	return m.deleteUser(ctx, id)
}

// pagedClient serves fixed pages and acknowledges every mutation.
func pagedClient(pages map[int][]userapi.User) *mockClient {
	return &mockClient{
		listUsers: func(_ context.Context, page int) (*userapi.ListUsersResponse, error) {
			data := pages[page]
			if data == nil {
				data = []userapi.User{}
			}
			return &userapi.ListUsersResponse{Page: page, TotalPages: len(pages), Data: data}, nil
		},
		createUser: func(_ context.Context, in userapi.UserInput) (*userapi.CreatedUser, error) {
			return &userapi.CreatedUser{ID: 999, FirstName: in.FirstName, LastName: in.LastName, Email: in.Email}, nil
		},
		updateUser: func(_ context.Context, _ int, in userapi.UserInput) (*userapi.UpdatedUser, error) {
			return &userapi.UpdatedUser{FirstName: "ignored"}, nil
		},
		deleteUser: func(context.Context, int) error { return nil },
	}
}

func jane() userapi.User {
	return userapi.User{ID: 1, FirstName: "Jane", LastName: "Doe", Email: "jane@x.com"}
}

func testPages() map[int][]userapi.User {
	return map[int][]userapi.User{
		1: {
			jane(),
			{ID: 2, FirstName: "Janet", LastName: "Weaver", Email: "janet.weaver@reqres.in"},
		},
		2: {
			{ID: 7, FirstName: "Michael", LastName: "Lawson", Email: "michael.lawson@reqres.in"},
		},
		3: {
			{ID: 12, FirstName: "Rachel", LastName: "Howell", Email: "rachel.howell@reqres.in"},
		},
	}
}
