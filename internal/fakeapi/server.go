// Package fakeapi emulates the remote user service in memory. It speaks
// the same JSON as the public reference deployment, so the CLI and tests
// can run against it without network access.
package fakeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dusk-indust/useradmin/internal/userapi"
	"go.uber.org/zap"
)

// DefaultBasePath is the prefix the reference service serves under.
const DefaultBasePath = "/api"

// Server serves the user collection over HTTP.
type Server struct {
	table    *UserTable
	basePath string
	persist  bool
	logger   *zap.Logger
	now      func() time.Time

	http     *http.Server
	listener net.Listener
}

// Option configures a Server.
type Option func(*Server)

// WithPersistence makes create, update and delete change the collection.
// Without it writes are acknowledged and discarded, like the reference
// service.
func WithPersistence() Option {
	return func(s *Server) {
		s.persist = true
	}
}

// WithBasePath changes the route prefix (default "/api").
func WithBasePath(p string) Option {
	return func(s *Server) {
		s.basePath = "/" + strings.Trim(p, "/")
		if s.basePath == "/" {
			s.basePath = ""
		}
	}
}

// WithSeed replaces the default twelve users.
func WithSeed(users []userapi.User) Option {
	return func(s *Server) {
		s.table = NewUserTable(users)
	}
}

// WithLogger sets the request logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// NewServer creates a server seeded with SeedUsers.
func NewServer(opts ...Option) *Server {
	s := &Server{
		basePath: DefaultBasePath,
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.table == nil {
		s.table = NewUserTable(SeedUsers())
	}
	return s
}

// Table exposes the backing collection.
func (s *Server) Table() *UserTable {
	return s.table
}

// Handler returns the routes as an http.Handler, for use with httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+s.basePath+"/users", s.handleList)
	mux.HandleFunc("POST "+s.basePath+"/users", s.handleCreate)
	mux.HandleFunc("GET "+s.basePath+"/users/{id}", s.handleGet)
	mux.HandleFunc("PUT "+s.basePath+"/users/{id}", s.handleUpdate)
	mux.HandleFunc("DELETE "+s.basePath+"/users/{id}", s.handleDelete)
	return mux
}

// Start listens on addr and serves in a background goroutine. It returns
// once the listener is bound, so Addr is valid afterwards.
func (s *Server) Start(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("fakeapi: listen %s: %w", addr, err)
	}
	s.listener = ln
	s.http = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Warn("fake user service stopped", zap.Error(err))
		}
	}()
	s.logger.Info("fake user service listening",
		zap.String("addr", ln.Addr().String()),
		zap.String("basePath", s.basePath),
		zap.Bool("persist", s.persist),
	)
	return nil
}

// Addr returns the bound address after Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// BaseURL returns the URL clients should use after Start.
func (s *Server) BaseURL() string {
	return "http://" + s.Addr() + s.basePath
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("page must be an integer"))
			return
		}
		page = n
	}

	data, total, totalPages := s.table.Page(page, PerPage)
	writeJSON(w, http.StatusOK, userapi.ListUsersResponse{
		Page:       page,
		PerPage:    PerPage,
		Total:      total,
		TotalPages: totalPages,
		Data:       data,
	})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, struct{}{})
		return
	}
	u, found := s.table.Get(id)
	if !found {
		writeJSON(w, http.StatusNotFound, struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, userapi.GetUserResponse{Data: u})
}

// createdBody mirrors the reference service: the submitted fields, a
// string id and a creation timestamp.
type createdBody struct {
	userapi.UserInput
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"`
}

type updatedBody struct {
	userapi.UserInput
	UpdatedAt string `json:"updatedAt"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in userapi.UserInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON: "+err.Error()))
		return
	}

	id := s.table.NextID()
	if s.persist {
		if err := s.table.Insert(userFromInput(id, in)); err != nil {
			writeJSON(w, http.StatusConflict, errorBody(err.Error()))
			return
		}
	}
	s.logger.Debug("create user", zap.Int("id", id), zap.Bool("persisted", s.persist))

	writeJSON(w, http.StatusCreated, createdBody{
		UserInput: in,
		ID:        strconv.Itoa(id),
		CreatedAt: s.timestamp(),
	})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, struct{}{})
		return
	}
	var in userapi.UserInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON: "+err.Error()))
		return
	}

	if s.persist {
		s.table.Update(id, func(u *userapi.User) {
			*u = userFromInput(id, in)
		})
	}
	s.logger.Debug("update user", zap.Int("id", id), zap.Bool("persisted", s.persist))

	writeJSON(w, http.StatusOK, updatedBody{UserInput: in, UpdatedAt: s.timestamp()})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if ok && s.persist {
		s.table.Delete(id)
	}
	s.logger.Debug("delete user", zap.Int("id", id), zap.Bool("persisted", s.persist))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) timestamp() string {
	return s.now().UTC().Format("2006-01-02T15:04:05.000Z")
}

func userFromInput(id int, in userapi.UserInput) userapi.User {
	return userapi.User{
		ID:        id,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Avatar:    in.Avatar,
	}
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return 0, false
	}
	return id, true
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
