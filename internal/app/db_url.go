package app

import (
	"net/url"
	"strings"

	"github.com/riskibarqy/hoops-scout/internal/config"
)

const binaryResultParam = "disable_prepared_binary_result"

// postgresTarget is DB_URL resolved once: the DSN handed to lib/pq and
// migrate, and the database name put on query spans.
type postgresTarget struct {
	dsn      string
	database string
}

// PostgresDSN returns the connection string used for both the pool and
// migrations.
func PostgresDSN(cfg config.Config) string {
	return resolvePostgres(cfg.DBURL, cfg.DBDisablePreparedBinary).dsn
}

// resolvePostgres accepts both URL (postgres://...) and keyword
// (host=... dbname=...) forms. With disableBinary set it adds
// disable_prepared_binary_result=yes unless DB_URL already chooses a value.
func resolvePostgres(raw string, disableBinary bool) postgresTarget {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return postgresTarget{}
	}

	if u, err := url.Parse(raw); err == nil && (u.Scheme == "postgres" || u.Scheme == "postgresql") {
		target := postgresTarget{dsn: raw, database: strings.TrimPrefix(u.Path, "/")}
		if q := u.Query(); disableBinary && q.Get(binaryResultParam) == "" {
			q.Set(binaryResultParam, "yes")
			u.RawQuery = q.Encode()
			target.dsn = u.String()
		}
		return target
	}

	target := postgresTarget{dsn: raw, database: keywordValue(raw, "dbname")}
	if disableBinary && keywordValue(raw, binaryResultParam) == "" {
		target.dsn = raw + " " + binaryResultParam + "=yes"
	}
	return target
}

// keywordValue reads key from a keyword DSN. Quoted values are unwrapped
// but may not contain spaces.
func keywordValue(dsn, key string) string {
	for _, field := range strings.Fields(dsn) {
		if value, ok := strings.CutPrefix(field, key+"="); ok {
			return strings.Trim(value, `"'`)
		}
	}
	return ""
}
