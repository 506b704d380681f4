package userstore

import "github.com/dusk-indust/useradmin/internal/userapi"

// Transition is a named, atomic state change. Every change to a store's
// State goes through one.
type Transition interface {
	// Name identifies the transition in logs.
	Name() string

	apply(s *State)
}

// Reduce returns the state that results from applying t to s. The input
// state is not modified.
func Reduce(s State, t Transition) State {
	next := s.clone()
	t.apply(&next)
	return next
}

// BeginFetch marks a page fetch as started.
type BeginFetch struct{}

func (BeginFetch) Name() string { return "begin_fetch" }

func (BeginFetch) apply(s *State) {
	s.Loading = true
	s.Error = ""
}

// FetchSucceeded replaces the user list with one page of records.
type FetchSucceeded struct {
	Users      []userapi.User
	TotalPages int
}

func (FetchSucceeded) Name() string { return "fetch_succeeded" }

func (t FetchSucceeded) apply(s *State) {
	s.Loading = false
	s.Users = make([]userapi.User, len(t.Users))
	copy(s.Users, t.Users)
	s.TotalPages = t.TotalPages
	if s.TotalPages < 1 {
		s.TotalPages = 1
	}
}

// FetchFailed records a failed page fetch. The user list is kept.
type FetchFailed struct {
	Message string
}

func (FetchFailed) Name() string { return "fetch_failed" }

func (t FetchFailed) apply(s *State) {
	s.Loading = false
	s.Error = t.Message
}

// UserAdded appends a record.
type UserAdded struct {
	User userapi.User
}

func (UserAdded) Name() string { return "user_added" }

func (t UserAdded) apply(s *State) {
	s.Users = append(s.Users, t.User)
}

// UserUpdated replaces the record whose id matches. Absent ids are a no-op.
type UserUpdated struct {
	User userapi.User
}

func (UserUpdated) Name() string { return "user_updated" }

func (t UserUpdated) apply(s *State) {
	for i := range s.Users {
		if s.Users[i].ID == t.User.ID {
			s.Users[i] = t.User
		}
	}
}

// UserDeleted removes the record whose id matches. Absent ids are a no-op.
type UserDeleted struct {
	ID int
}

func (UserDeleted) Name() string { return "user_deleted" }

func (t UserDeleted) apply(s *State) {
	kept := s.Users[:0]
	for _, u := range s.Users {
		if u.ID != t.ID {
			kept = append(kept, u)
		}
	}
	s.Users = kept
}

// PageChanged moves to another page. The caller runs the fetch cycle.
type PageChanged struct {
	Page int
}

func (PageChanged) Name() string { return "page_changed" }

func (t PageChanged) apply(s *State) {
	s.CurrentPage = t.Page
}

// SearchChanged sets the search query. Users are not touched; filtering
// happens when the state is read.
type SearchChanged struct {
	Query string
}

func (SearchChanged) Name() string { return "search_changed" }

func (t SearchChanged) apply(s *State) {
	s.SearchQuery = t.Query
}

// MutationStarted clears a previous transient mutation error.
type MutationStarted struct{}

func (MutationStarted) Name() string { return "mutation_started" }

func (MutationStarted) apply(s *State) {
	s.MutationError = ""
}

// MutationFailed records a failed add, update or delete.
type MutationFailed struct {
	Message string
}

func (MutationFailed) Name() string { return "mutation_failed" }

func (t MutationFailed) apply(s *State) {
	s.MutationError = t.Message
}
