// Package render draws user store state for terminals and exports it as
// JSON.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dusk-indust/useradmin/internal/userapi"
	"github.com/dusk-indust/useradmin/internal/userstore"
	"github.com/mattn/go-runewidth"
)

// Options controls terminal output.
type Options struct {
	Theme Theme
	// Width is the maximum line width; zero means 80.
	Width int
	// ShowAvatar adds the avatar URL column when it fits.
	ShowAvatar bool
}

const (
	colGap   = "  "
	minName  = 8
	minEmail = 10
)

// Users writes the visible users of st as a table followed by a pager
// line. Loading, error and empty states are written instead of the table,
// mirroring what a list view shows.
func Users(w io.Writer, st userstore.State, opts Options) error {
	t := opts.Theme
	switch {
	case st.Loading:
		_, err := fmt.Fprintln(w, t.Muted("Loading..."))
		return err
	case st.Error != "":
		_, err := fmt.Fprintln(w, t.Secondary("Error: "+st.Error))
		return err
	}

	var b strings.Builder
	if st.MutationError != "" {
		b.WriteString(t.Secondary(st.MutationError))
		b.WriteByte('\n')
	}
	if st.SearchQuery != "" {
		b.WriteString(t.Muted(fmt.Sprintf("Search: %q", st.SearchQuery)))
		b.WriteByte('\n')
	}

	visible := st.Visible()
	if len(visible) == 0 {
		b.WriteString(t.Muted("No users found."))
		b.WriteByte('\n')
	} else {
		writeTable(&b, visible, opts)
	}
	b.WriteString(Pager(st, t))
	b.WriteByte('\n')

	_, err := io.WriteString(w, b.String())
	return err
}

// Table writes users as a bare table, without state lines or pager. An
// empty slice writes "No users found.".
func Table(w io.Writer, users []userapi.User, opts Options) error {
	var b strings.Builder
	if len(users) == 0 {
		b.WriteString(opts.Theme.Muted("No users found."))
		b.WriteByte('\n')
	} else {
		writeTable(&b, users, opts)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// User writes a single record as aligned key/value lines.
func User(w io.Writer, u userapi.User, t Theme) error {
	rows := [][2]string{
		{"ID", strconv.Itoa(u.ID)},
		{"Name", u.FullName()},
		{"Email", u.Email},
		{"Avatar", u.Avatar},
	}
	var b strings.Builder
	for _, r := range rows {
		b.WriteString(t.Primary(runewidth.FillRight(r[0], 8)))
		b.WriteString(r[1])
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Pager formats "Page N of M" with markers for available neighbours.
func Pager(st userstore.State, t Theme) string {
	prev, next := "  ", "  "
	if st.CurrentPage > 1 {
		prev = "< "
	}
	if st.CurrentPage < st.TotalPages {
		next = " >"
	}
	return t.Primary(fmt.Sprintf("%sPage %d of %d%s", prev, st.CurrentPage, st.TotalPages, next))
}

func writeTable(b *strings.Builder, users []userapi.User, opts Options) {
	width := opts.Width
	if width <= 0 {
		width = 80
	}

	headers := []string{"ID", "Full Name", "Email"}
	if opts.ShowAvatar {
		headers = append(headers, "Avatar")
	}
	rows := make([][]string, len(users))
	for i, u := range users {
		row := []string{strconv.Itoa(u.ID), u.FullName(), u.Email}
		if opts.ShowAvatar {
			row = append(row, u.Avatar)
		}
		rows[i] = row
	}

	widths := columnWidths(headers, rows)
	fitWidths(widths, width, opts.ShowAvatar)

	writeRow(b, headers, widths, opts.Theme.Primary)
	for _, row := range rows {
		writeRow(b, row, widths, nil)
	}
}

func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// fitWidths shrinks columns until the row fits in max columns: the avatar
// column goes first, then email and name are narrowed down to their
// minimums. The id column is never narrowed.
func fitWidths(widths []int, max int, avatar bool) {
	total := func() int {
		sum, cols := 0, 0
		for _, w := range widths {
			if w > 0 {
				sum += w
				cols++
			}
		}
		return sum + len(colGap)*(cols-1)
	}

	if avatar && total() > max {
		widths[3] = 0
	}
	for total() > max && widths[2] > minEmail {
		widths[2]--
	}
	for total() > max && widths[1] > minName {
		widths[1]--
	}
}

func writeRow(b *strings.Builder, cells []string, widths []int, paint func(string) string) {
	var line strings.Builder
	first := true
	for i, cell := range cells {
		if widths[i] == 0 {
			continue
		}
		if !first {
			line.WriteString(colGap)
		}
		first = false
		cell = runewidth.Truncate(cell, widths[i], "…")
		if i == len(cells)-1 || (i+1 < len(widths) && allZero(widths[i+1:])) {
			line.WriteString(cell)
		} else {
			line.WriteString(runewidth.FillRight(cell, widths[i]))
		}
	}
	s := line.String()
	if paint != nil {
		s = paint(s)
	}
	b.WriteString(s)
	b.WriteByte('\n')
}

func allZero(ws []int) bool {
	for _, w := range ws {
		if w != 0 {
			return false
		}
	}
	return true
}
