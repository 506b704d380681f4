package fakeapi

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dusk-indust/useradmin/internal/userapi"
)

// PerPage is the page size of the emulated service.
const PerPage = 6

// UserTable is a concurrency-safe in-memory user collection. Users are
// stored in a map keyed by id with a separate slice keeping insertion
// order for deterministic pagination.
type UserTable struct {
	mu       sync.RWMutex
	users    map[int]userapi.User
	orderIDs []int
	nextID   int
}

// NewUserTable returns a table holding seed in order.
func NewUserTable(seed []userapi.User) *UserTable {
	t := &UserTable{
		users:    make(map[int]userapi.User, len(seed)),
		orderIDs: make([]int, 0, len(seed)),
	}
	for _, u := range seed {
		t.users[u.ID] = u
		t.orderIDs = append(t.orderIDs, u.ID)
		if u.ID >= t.nextID {
			t.nextID = u.ID + 1
		}
	}
	return t
}

// Page returns one 1-based page and the page count. Pages past the end
// are empty, never an error.
func (t *UserTable) Page(page, perPage int) ([]userapi.User, int, int) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	total := len(t.orderIDs)
	totalPages := (total + perPage - 1) / perPage

	start := (page - 1) * perPage
	if page < 1 || start >= total {
		return []userapi.User{}, total, totalPages
	}
	end := min(start+perPage, total)

	out := make([]userapi.User, 0, end-start)
	for _, id := range t.orderIDs[start:end] {
		out = append(out, t.users[id])
	}
	return out, total, totalPages
}

// Get returns the user with the given id.
func (t *UserTable) Get(id int) (userapi.User, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	u, ok := t.users[id]
	return u, ok
}

// NextID reserves an id for a new user without storing anything.
func (t *UserTable) NextID() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.nextID
	t.nextID++
	return id
}

// Insert stores u at the end of the collection.
func (t *UserTable) Insert(u userapi.User) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.users[u.ID]; exists {
		return fmt.Errorf("user %d already exists", u.ID)
	}
	t.users[u.ID] = u
	t.orderIDs = append(t.orderIDs, u.ID)
	if u.ID >= t.nextID {
		t.nextID = u.ID + 1
	}
	return nil
}

// Update applies fn to the stored user under a write lock. It reports
// whether the user exists.
func (t *UserTable) Update(id int, fn func(*userapi.User)) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	u, ok := t.users[id]
	if !ok {
		return false
	}
	fn(&u)
	u.ID = id
	t.users[id] = u
	return true
}

// Delete removes a user and reports whether it existed.
func (t *UserTable) Delete(id int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.users[id]; !ok {
		return false
	}
	delete(t.users, id)
	for i, oid := range t.orderIDs {
		if oid == id {
			t.orderIDs = append(t.orderIDs[:i], t.orderIDs[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of stored users.
func (t *UserTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.orderIDs)
}

// SeedUsers returns the twelve users the reference service ships with.
func SeedUsers() []userapi.User {
	seed := []struct{ first, last string }{
		{"George", "Bluth"},
		{"Janet", "Weaver"},
		{"Emma", "Wong"},
		{"Eve", "Holt"},
		{"Charles", "Morris"},
		{"Tracey", "Ramos"},
		{"Michael", "Lawson"},
		{"Lindsay", "Ferguson"},
		{"Tobias", "Funke"},
		{"Byron", "Fields"},
		{"George", "Edwards"},
		{"Rachel", "Howell"},
	}
	users := make([]userapi.User, len(seed))
	for i, s := range seed {
		id := i + 1
		users[i] = userapi.User{
			ID:        id,
			FirstName: s.first,
			LastName:  s.last,
			Email:     fmt.Sprintf("%s.%s@reqres.in", strings.ToLower(s.first), strings.ToLower(s.last)),
			Avatar:    fmt.Sprintf("https://reqres.in/img/faces/%d-image.jpg", id),
		}
	}
	return users
}
