package userstore

import (
	"strings"

	"github.com/dusk-indust/useradmin/internal/userapi"
)

// Matches reports whether u matches query: a case-insensitive substring of
// "first last" or of the email. The empty query matches everything.
func Matches(u userapi.User, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(u.FullName()), q) ||
		strings.Contains(strings.ToLower(u.Email), q)
}

// Filter returns the users matching query, in order. The result never
// aliases users.
func Filter(users []userapi.User, query string) []userapi.User {
	out := make([]userapi.User, 0, len(users))
	for _, u := range users {
		if Matches(u, query) {
			out = append(out, u)
		}
	}
	return out
}
