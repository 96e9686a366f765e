package testdb

import (
	"net/url"
	"os"
	"testing"
)

// Environment variables that enable the integration suites.
const (
	PostgresURLEnv = "CARECAMP_TEST_DATABASE_URL"
	MongoURLEnv    = "CARECAMP_TEST_MONGO_URL"
)

// PostgresURL returns the PostgreSQL test database URL, or "" when unset.
func PostgresURL() string {
	return os.Getenv(PostgresURLEnv)
}

// MongoURL returns the MongoDB test deployment URL, or "" when unset.
func MongoURL() string {
	return os.Getenv(MongoURLEnv)
}

// SkipUnlessPostgres skips t when no PostgreSQL test database is configured.
func SkipUnlessPostgres(t *testing.T) {
	t.Helper()
	if PostgresURL() == "" {
		t.Skipf("%s not set; skipping PostgreSQL integration tests", PostgresURLEnv)
	}
}

// SkipUnlessMongo skips t when no MongoDB test deployment is configured.
func SkipUnlessMongo(t *testing.T) {
	t.Helper()
	if MongoURL() == "" {
		t.Skipf("%s not set; skipping MongoDB integration tests", MongoURLEnv)
	}
}

// MaskURL hides the password of a connection URL so it can be logged.
func MaskURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "invalid-url"
	}
	if u.User != nil {
		if _, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), "redacted")
		}
	}
	return u.String()
}
