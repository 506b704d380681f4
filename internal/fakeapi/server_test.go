package fakeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dusk-indust/useradmin/internal/userapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func do(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestServer_ListPages(t *testing.T) {
	ts := httptest.NewServer(NewServer().Handler())
	defer ts.Close()

	resp := do(t, http.MethodGet, ts.URL+"/api/users?page=2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var list userapi.ListUsersResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Equal(t, 2, list.Page)
	assert.Equal(t, 6, list.PerPage)
	assert.Equal(t, 12, list.Total)
	assert.Equal(t, 2, list.TotalPages)
	require.Len(t, list.Data, 6)
	assert.Equal(t, "Michael", list.Data[0].FirstName)
}

func TestServer_ListDefaultsToPageOne(t *testing.T) {
	ts := httptest.NewServer(NewServer().Handler())
	defer ts.Close()

	var list userapi.ListUsersResponse
	require.NoError(t, json.NewDecoder(do(t, http.MethodGet, ts.URL+"/api/users", nil).Body).Decode(&list))
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 1, list.Data[0].ID)
}

func TestServer_ListBadPage(t *testing.T) {
	ts := httptest.NewServer(NewServer().Handler())
	defer ts.Close()

	resp := do(t, http.MethodGet, ts.URL+"/api/users?page=two", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_GetUser(t *testing.T) {
	ts := httptest.NewServer(NewServer().Handler())
	defer ts.Close()

	resp := do(t, http.MethodGet, ts.URL+"/api/users/3", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got userapi.GetUserResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "Emma", got.Data.FirstName)

	assert.Equal(t, http.StatusNotFound, do(t, http.MethodGet, ts.URL+"/api/users/23", nil).StatusCode)
	assert.Equal(t, http.StatusNotFound, do(t, http.MethodGet, ts.URL+"/api/users/abc", nil).StatusCode)
}

func TestServer_CreateEchoesWithoutPersisting(t *testing.T) {
	srv := NewServer()
	srv.now = func() time.Time { return time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC) }
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp := do(t, http.MethodPost, ts.URL+"/api/users", userapi.UserInput{FirstName: "Tom", LastName: "Lee", Email: "tom@x.com"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var raw map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	assert.Equal(t, "Tom", raw["first_name"])
	assert.Equal(t, "13", raw["id"], "ids are strings like the reference service")
	assert.Equal(t, "2026-10-17T09:00:00.000Z", raw["createdAt"])

	assert.Equal(t, 12, srv.Table().Len())
}

func TestServer_PersistentWrites(t *testing.T) {
	srv := NewServer(WithPersistence())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp := do(t, http.MethodPost, ts.URL+"/api/users", userapi.UserInput{FirstName: "Tom", LastName: "Lee", Email: "tom@x.com"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 13, srv.Table().Len())

	resp = do(t, http.MethodPut, ts.URL+"/api/users/13", userapi.UserInput{FirstName: "Thomas", LastName: "Lee", Email: "tom@x.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	u, ok := srv.Table().Get(13)
	require.True(t, ok)
	assert.Equal(t, "Thomas", u.FirstName)

	resp = do(t, http.MethodDelete, ts.URL+"/api/users/13", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	_, ok = srv.Table().Get(13)
	assert.False(t, ok)
}

func TestServer_BadJSON(t *testing.T) {
	ts := httptest.NewServer(NewServer().Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/users", "application/json", bytes.NewBufferString("{"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_BasePath(t *testing.T) {
	ts := httptest.NewServer(NewServer(WithBasePath("/")).Handler())
	defer ts.Close()

	assert.Equal(t, http.StatusOK, do(t, http.MethodGet, ts.URL+"/users?page=1", nil).StatusCode)
}

func TestServer_StartStop(t *testing.T) {
	srv := NewServer()
	ctx := context.Background()
	require.NoError(t, srv.Start(ctx, "127.0.0.1:0"))
	defer srv.Stop(ctx)

	client := userapi.NewHTTPClient(srv.BaseURL())
	resp, err := client.ListUsers(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, resp.Data, 6)

	require.NoError(t, srv.Stop(ctx))
	_, err = client.ListUsers(ctx, 1)
	assert.Error(t, err)
}
