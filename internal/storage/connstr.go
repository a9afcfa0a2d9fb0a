package storage

import (
	"net/url"
	"strings"
)

// IsPostgresConnString reports whether s looks like a PostgreSQL URL rather
// than a SQLite file path.
func IsPostgresConnString(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection string
// (URL or key=value DSN) carries a password.
func HasEmbeddedCredentials(connStr string) bool {
	if IsPostgresConnString(connStr) {
		u, err := url.Parse(connStr)
		if err != nil {
			return false
		}
		_, isSet := u.User.Password()
		return isSet
	}
	for _, pair := range strings.Fields(connStr) {
		key, _, ok := strings.Cut(pair, "=")
		if ok && strings.EqualFold(strings.TrimSpace(key), "password") {
			return true
		}
	}
	return false
}
