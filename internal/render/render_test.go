package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/dusk-indust/useradmin/internal/userapi"
	"github.com/dusk-indust/useradmin/internal/userstore"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState() userstore.State {
	st := userstore.InitialState()
	st.Users = []userapi.User{
		{ID: 1, FirstName: "Jane", LastName: "Doe", Email: "jane@x.com", Avatar: "https://reqres.in/img/faces/1-image.jpg"},
		{ID: 2, FirstName: "Zoë", LastName: "Löwe", Email: "zoe@x.com"},
	}
	st.TotalPages = 2
	return st
}

func TestUsers_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Users(&buf, sampleState(), Options{Theme: NewTheme("light", false)}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "ID  Full Name"))
	assert.Contains(t, lines[1], "Jane Doe")
	assert.Contains(t, lines[2], "Zoë Löwe")
	assert.Equal(t, "  Page 1 of 2 >", lines[3])

	// Email column starts at the same display offset on every row.
	col := strings.Index(lines[0], "Email")
	assert.Equal(t, col, runewidth.StringWidth(lines[1][:strings.Index(lines[1], "jane@x.com")]))
	assert.Equal(t, col, runewidth.StringWidth(lines[2][:strings.Index(lines[2], "zoe@x.com")]))
}

func TestUsers_SearchFilters(t *testing.T) {
	st := sampleState()
	st.SearchQuery = "doe"

	var buf bytes.Buffer
	require.NoError(t, Users(&buf, st, Options{Theme: NewTheme("light", false)}))
	assert.Contains(t, buf.String(), "Jane Doe")
	assert.NotContains(t, buf.String(), "Zoë")
	assert.Contains(t, buf.String(), `Search: "doe"`)
}

func TestUsers_States(t *testing.T) {
	theme := NewTheme("dark", false)

	loading := sampleState()
	loading.Loading = true
	var buf bytes.Buffer
	require.NoError(t, Users(&buf, loading, Options{Theme: theme}))
	assert.Equal(t, "Loading...\n", buf.String())

	failed := sampleState()
	failed.Error = "fetch page 2: Network Error"
	buf.Reset()
	require.NoError(t, Users(&buf, failed, Options{Theme: theme}))
	assert.Equal(t, "Error: fetch page 2: Network Error\n", buf.String())

	empty := userstore.InitialState()
	buf.Reset()
	require.NoError(t, Users(&buf, empty, Options{Theme: theme}))
	assert.Contains(t, buf.String(), "No users found.")
	assert.Contains(t, buf.String(), "Page 1 of 1")

	mutation := sampleState()
	mutation.MutationError = "delete user 1: boom"
	buf.Reset()
	require.NoError(t, Users(&buf, mutation, Options{Theme: theme}))
	assert.True(t, strings.HasPrefix(buf.String(), "delete user 1: boom\n"))
	assert.Contains(t, buf.String(), "Jane Doe", "the list stays visible")
}

func TestUsers_NarrowWidthTruncates(t *testing.T) {
	st := userstore.InitialState()
	st.Users = []userapi.User{{
		ID:        1,
		FirstName: "Bartholomew",
		LastName:  "Featherstonehaugh",
		Email:     "bartholomew.featherstonehaugh@example.com",
		Avatar:    "https://reqres.in/img/faces/1-image.jpg",
	}}

	var buf bytes.Buffer
	require.NoError(t, Users(&buf, st, Options{Theme: NewTheme("light", false), Width: 40, ShowAvatar: true}))

	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		assert.LessOrEqual(t, runewidth.StringWidth(line), 40, line)
	}
	assert.Contains(t, buf.String(), "…")
	assert.NotContains(t, buf.String(), "Avatar", "avatar column is dropped first")
}

func TestUsers_AvatarColumnWhenWide(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Users(&buf, sampleState(), Options{Theme: NewTheme("light", false), Width: 200, ShowAvatar: true}))
	assert.Contains(t, buf.String(), "Avatar")
	assert.Contains(t, buf.String(), "1-image.jpg")
}

func TestUser(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, User(&buf, sampleState().Users[0], NewTheme("light", false)))
	assert.Contains(t, buf.String(), "Name    Jane Doe\n")
	assert.Contains(t, buf.String(), "Email   jane@x.com\n")
}

func TestPager(t *testing.T) {
	st := sampleState()
	theme := NewTheme("light", false)

	st.CurrentPage = 2
	assert.Equal(t, "< Page 2 of 2  ", Pager(st, theme))

	st.TotalPages = 3
	assert.Equal(t, "< Page 2 of 3 >", Pager(st, theme))
}

func TestTheme(t *testing.T) {
	light := NewTheme("LIGHT", true)
	assert.Equal(t, ModeLight, light.Mode)
	assert.Equal(t, "\x1b[38;2;25;118;210mhi\x1b[0m", light.Primary("hi"))

	dark := light.Toggle()
	assert.Equal(t, ModeDark, dark.Mode)
	assert.Equal(t, "\x1b[38;2;144;202;249mhi\x1b[0m", dark.Primary("hi"))
	assert.Equal(t, ModeLight, dark.Toggle().Mode)

	assert.Equal(t, ModeLight, NewTheme("sepia", false).Mode)
	assert.Equal(t, "plain", NewTheme("dark", false).Secondary("plain"))
	assert.Equal(t, "", light.Muted(""))
}

func TestTerminalHelpers_NonFile(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, IsTerminal(&buf))
	assert.Equal(t, 80, TerminalWidth(&buf))
}

func TestJSON(t *testing.T) {
	st := sampleState()
	st.SearchQuery = "zoe"

	var buf bytes.Buffer
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	require.NoError(t, JSON(&buf, st, now))

	var out SnapshotExport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "2026-10-17T12:00:00Z", out.ExportedAt)
	assert.Len(t, out.State.Users, 2)
	assert.Equal(t, "zoe", out.State.SearchQuery)
	require.Len(t, out.Visible, 1)
	assert.Equal(t, 2, out.Visible[0].ID)
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Table(&buf, sampleState().Users[:1], Options{Theme: NewTheme("light", false)}))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "jane@x.com")
	assert.NotContains(t, buf.String(), "Page")

	buf.Reset()
	require.NoError(t, Table(&buf, nil, Options{}))
	assert.Equal(t, "No users found.\n", buf.String())
}
