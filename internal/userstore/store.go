// Package userstore keeps the local view of a remote user collection: one
// page of records, pagination and search status, and optimistic local
// echoes of add, update and delete requests.
//
// A Store is an explicit handle. Create one with New and pass it to the
// code that renders or drives it; there is no package-level instance.
// All methods are safe for concurrent use, and any number of requests may
// be in flight at once.
package userstore

import (
	"context"
	"strings"
	"sync"

	"github.com/dusk-indust/useradmin/internal/userapi"
	"go.uber.org/zap"
)

// DefaultAvatar is sent for new users submitted without an avatar.
const DefaultAvatar = "https://reqres.in/img/faces/7-image.jpg"

// Store owns a State and applies transitions to it in response to
// operations.
type Store struct {
	client            userapi.Client
	logger            *zap.Logger
	ids               *IDGenerator
	defaultAvatar     string
	trustServerIDs    bool
	searchConcurrency int

	mu          sync.Mutex
	state       State
	fetchSeq    uint64
	cancelFetch context.CancelFunc
	subs        map[int]chan State
	nextSubID   int
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for transitions and request failures.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// WithIDGenerator replaces the clock-seeded surrogate id generator.
func WithIDGenerator(g *IDGenerator) Option {
	return func(s *Store) {
		s.ids = g
	}
}

// WithDefaultAvatar sets the avatar used for new users without one.
func WithDefaultAvatar(url string) Option {
	return func(s *Store) {
		s.defaultAvatar = url
	}
}

// WithServerIDs makes AddUser keep the id returned by the service when it
// is a positive integer not already present in the list. The reference
// service hands out throwaway ids, so this is off by default.
func WithServerIDs(trust bool) Option {
	return func(s *Store) {
		s.trustServerIDs = trust
	}
}

// WithSearchConcurrency bounds the number of page requests SearchRemote
// keeps in flight.
func WithSearchConcurrency(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.searchConcurrency = n
		}
	}
}

// New creates a store in the initial state. No request is made until
// Start or SetCurrentPage is called.
func New(client userapi.Client, opts ...Option) *Store {
	s := &Store{
		client:            client,
		logger:            zap.NewNop(),
		defaultAvatar:     DefaultAvatar,
		searchConcurrency: 4,
		state:             InitialState(),
		subs:              make(map[int]chan State),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ids == nil {
		s.ids = NewClockIDGenerator()
	}
	return s
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// dispatchLocked applies t and notifies subscribers. Callers must hold s.mu.
func (s *Store) dispatchLocked(t Transition) {
	s.state = Reduce(s.state, t)
	s.logger.Debug("transition",
		zap.String("name", t.Name()),
		zap.Int("users", len(s.state.Users)),
		zap.Int("page", s.state.CurrentPage),
		zap.Bool("loading", s.state.Loading),
	)
	s.publishLocked()
}

func (s *Store) dispatch(t Transition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dispatchLocked(t)
}

// Start runs the first-load fetch of the current page (page 1 for a new
// store).
func (s *Store) Start(ctx context.Context) error {
	return s.Refresh(ctx)
}

// Refresh re-runs the fetch cycle for the current page. It is the way to
// retry after a failed fetch.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	page := s.state.CurrentPage
	s.mu.Unlock()
	return s.FetchPage(ctx, page)
}

// SetCurrentPage navigates to page and runs the fetch cycle for it.
func (s *Store) SetCurrentPage(ctx context.Context, page int) error {
	return s.FetchPage(ctx, page)
}

// FetchPage makes page current and replaces the user list with that page's
// records. Previous pages are never merged in.
//
// On failure the error message is recorded in State.Error, the previous
// users are kept, and a *FetchError is returned. When another fetch starts
// before this one resolves, this one's context is cancelled, its result is
// dropped, and ErrSuperseded is returned.
func (s *Store) FetchPage(ctx context.Context, page int) error {
	if page < 1 {
		return ErrInvalidPage
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	if s.cancelFetch != nil {
		s.cancelFetch()
	}
	s.fetchSeq++
	seq := s.fetchSeq
	s.cancelFetch = cancel
	if s.state.CurrentPage != page {
		s.dispatchLocked(PageChanged{Page: page})
	}
	s.dispatchLocked(BeginFetch{})
	s.mu.Unlock()

	resp, err := s.client.ListUsers(ctx, page)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.fetchSeq {
		s.logger.Debug("dropping superseded fetch", zap.Int("page", page))
		return ErrSuperseded
	}
	s.cancelFetch = nil

	if err != nil {
		fetchErr := &FetchError{Page: page, Err: err}
		s.logger.Warn("fetch users failed", zap.Int("page", page), zap.Error(err))
		s.dispatchLocked(FetchFailed{Message: fetchErr.Error()})
		return fetchErr
	}

	s.dispatchLocked(FetchSucceeded{Users: resp.Data, TotalPages: resp.TotalPages})
	return nil
}

// SetSearchQuery stores the search query. It never touches the service or
// the user list; read the filtered list with State.Visible.
func (s *Store) SetSearchQuery(query string) {
	s.dispatch(SearchChanged{Query: query})
}

// AddUser creates a user and appends it to the local list without
// refetching. The new record carries the submitted fields (overlaid with
// any the service echoed back) and a surrogate id unique in the list.
func (s *Store) AddUser(ctx context.Context, in userapi.UserInput) (userapi.User, error) {
	in = normalizeInput(in)
	if in.Avatar == "" {
		in.Avatar = s.defaultAvatar
	}
	if err := s.beginMutation(in, true); err != nil {
		return userapi.User{}, err
	}

	created, err := s.client.CreateUser(ctx, in)
	if err != nil {
		return userapi.User{}, s.failMutation(&MutationError{Op: "add", Err: err})
	}

	user := userapi.User{
		FirstName: firstNonEmpty(created.FirstName, in.FirstName),
		LastName:  firstNonEmpty(created.LastName, in.LastName),
		Email:     firstNonEmpty(created.Email, in.Email),
		Avatar:    firstNonEmpty(created.Avatar, in.Avatar),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	serverID := int(created.ID)
	if _, taken := s.state.Find(serverID); s.trustServerIDs && serverID > 0 && !taken {
		user.ID = serverID
	} else {
		user.ID = s.ids.Next(s.state.maxID())
	}
	s.dispatchLocked(UserAdded{User: user})
	return user, nil
}

// UpdateUser sends new field values for id and, once acknowledged,
// replaces the local record with the submitted values. The service's
// answer is not used for field values. An empty avatar keeps the current
// one. A successful update of an id not in the list changes no state.
func (s *Store) UpdateUser(ctx context.Context, id int, in userapi.UserInput) error {
	in = normalizeInput(in)
	if err := s.beginMutation(in, s.has(id)); err != nil {
		return err
	}

	if _, err := s.client.UpdateUser(ctx, id, in); err != nil {
		return s.failMutation(&MutationError{Op: "update", ID: id, Err: err})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.state.Find(id)
	if !ok {
		s.logger.Debug("update acknowledged for user not in list", zap.Int("id", id))
		return nil
	}
	s.dispatchLocked(UserUpdated{User: userapi.User{
		ID:        id,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Avatar:    firstNonEmpty(in.Avatar, existing.Avatar),
	}})
	return nil
}

// DeleteUser deletes id remotely and, once acknowledged, removes it from
// the local list. On failure the record stays. Deleting an id that is not
// in the list still sends the request, but a success leaves the state
// untouched, including any earlier MutationError.
func (s *Store) DeleteUser(ctx context.Context, id int) error {
	if s.has(id) {
		s.dispatch(MutationStarted{})
	}

	if err := s.client.DeleteUser(ctx, id); err != nil {
		return s.failMutation(&MutationError{Op: "delete", ID: id, Err: err})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.state.Find(id); !ok {
		s.logger.Debug("delete acknowledged for user not in list", zap.Int("id", id))
		return nil
	}
	s.dispatchLocked(UserDeleted{ID: id})
	return nil
}

// GetUser returns the record for id, preferring the loaded list and
// falling back to the service. The state is not changed.
func (s *Store) GetUser(ctx context.Context, id int) (userapi.User, error) {
	s.mu.Lock()
	u, ok := s.state.Find(id)
	s.mu.Unlock()
	if ok {
		return u, nil
	}

	remote, err := s.client.GetUser(ctx, id)
	if err != nil {
		return userapi.User{}, err
	}
	return *remote, nil
}

// beginMutation validates in and, when the mutation targets a listed
// record, clears the previous mutation error. Validation failures are
// recorded like request failures.
func (s *Store) beginMutation(in userapi.UserInput, listed bool) error {
	if err := ValidateInput(in); err != nil {
		s.dispatch(MutationFailed{Message: err.Error()})
		return err
	}
	if listed {
		s.dispatch(MutationStarted{})
	}
	return nil
}

func (s *Store) has(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.state.Find(id)
	return ok
}

func (s *Store) failMutation(err *MutationError) error {
	s.logger.Warn("user mutation failed",
		zap.String("op", err.Op),
		zap.Int("id", err.ID),
		zap.Error(err.Err),
	)
	s.dispatch(MutationFailed{Message: err.Error()})
	return err
}

func normalizeInput(in userapi.UserInput) userapi.UserInput {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	in.Avatar = strings.TrimSpace(in.Avatar)
	return in
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
