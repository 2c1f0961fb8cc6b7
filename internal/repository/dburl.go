package repository

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Supported database dialects.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

var (
	// ErrUnknownDialect is returned for URL schemes the store cannot handle.
	ErrUnknownDialect = errors.New("unknown database dialect")
	// ErrInvalidURL is returned when the database URL cannot be parsed.
	ErrInvalidURL = errors.New("invalid database URL")
)

// ParseDatabaseURL infers the dialect from the URL scheme and returns the
// DSN to hand to the matching driver.
//
// Postgres URLs pass through unchanged (pgx parses the full URL itself).
// SQLite URLs are reduced to the file path: both "sqlite:./app.db" and
// "sqlite://./app.db" resolve to "./app.db".
func ParseDatabaseURL(databaseURL string) (dialect, dsn string, err error) {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	switch strings.ToLower(u.Scheme) {
	case "postgres", "postgresql":
		return DialectPostgres, databaseURL, nil
	case "sqlite", "sqlite3":
		return DialectSQLite, sqlitePath(u), nil
	case "":
		return "", "", fmt.Errorf("%w: missing scheme in %q", ErrInvalidURL, databaseURL)
	default:
		return "", "", fmt.Errorf("%w: %s", ErrUnknownDialect, u.Scheme)
	}
}

// sqlitePath extracts the file path from a sqlite URL.
// "sqlite:./app.db" parses as opaque, "sqlite:///tmp/app.db" as host+path,
// and "sqlite::memory:" keeps the in-memory marker.
func sqlitePath(u *url.URL) string {
	if u.Opaque != "" {
		return u.Opaque
	}

	path := u.Path
	if u.Host != "" {
		// "sqlite://app.db" puts the relative name in Host.
		path = u.Host + path
	}

	if path == "" {
		return ":memory:"
	}
	return path
}
