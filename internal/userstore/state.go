package userstore

import "github.com/dusk-indust/useradmin/internal/userapi"

// State is the complete local snapshot of the user list, pagination,
// search and request status. Values handed out by the store are copies;
// mutating them does not affect the store.
type State struct {
	// Users holds the records of the current page in service order, plus
	// any records added locally since the page was fetched.
	Users []userapi.User `json:"users"`

	// Loading is true while the most recent page fetch is outstanding.
	Loading bool `json:"loading"`

	// Error is the message of the last failed page fetch. It blocks the
	// list view until the next fetch begins.
	Error string `json:"error,omitempty"`

	// MutationError is the message of the last failed add, update or
	// delete. It is transient: the list stays usable.
	MutationError string `json:"mutationError,omitempty"`

	CurrentPage int    `json:"currentPage"`
	TotalPages  int    `json:"totalPages"`
	SearchQuery string `json:"searchQuery"`
}

// InitialState is the state a store starts in: no users, page 1 of 1.
func InitialState() State {
	return State{
		Users:       []userapi.User{},
		CurrentPage: 1,
		TotalPages:  1,
	}
}

// Visible returns the users matching SearchQuery.
func (s State) Visible() []userapi.User {
	return Filter(s.Users, s.SearchQuery)
}

// Find returns the user with the given id from the loaded list.
func (s State) Find(id int) (userapi.User, bool) {
	for _, u := range s.Users {
		if u.ID == id {
			return u, true
		}
	}
	return userapi.User{}, false
}

// clone returns a copy of s whose Users slice is independent.
func (s State) clone() State {
	dst := s
	dst.Users = make([]userapi.User, len(s.Users))
	copy(dst.Users, s.Users)
	return dst
}

// maxID returns the largest id among the loaded users, or 0.
func (s State) maxID() int {
	max := 0
	for _, u := range s.Users {
		if u.ID > max {
			max = u.ID
		}
	}
	return max
}
