package postgres

import (
	"testing"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/maxviazov/railway-blog-service/internal/config"
)

func TestDSN_EscapesCredentials(t *testing.T) {
	dsn := DSN(config.PostgresConfig{Host: "db", Port: 5433, User: "blog", Password: "p@ss/word", DBName: "railway", SSLMode: "disable"})
	assert.Equal(t, "postgres://blog:p%40ss%2Fword@db:5433/railway?sslmode=disable", dsn)
}

func TestTraceLevel(t *testing.T) {
	assert.Equal(t, tracelog.LogLevelTrace, traceLevel(zerolog.TraceLevel))
	assert.Equal(t, tracelog.LogLevelDebug, traceLevel(zerolog.DebugLevel))
	assert.Equal(t, tracelog.LogLevelInfo, traceLevel(zerolog.InfoLevel))
	assert.Equal(t, tracelog.LogLevelWarn, traceLevel(zerolog.WarnLevel))
	assert.Equal(t, tracelog.LogLevelError, traceLevel(zerolog.ErrorLevel))
}

func TestConds_NumbersPlaceholders(t *testing.T) {
	var c conds
	c.parts = append(c.parts, "is_published")
	c.add("category_id = $%d", int64(3))
	c.add("(title ILIKE $%[1]d OR content ILIKE $%[1]d)", "%x%")
	assert.Equal(t, " WHERE is_published AND category_id = $1 AND (title ILIKE $2 OR content ILIKE $2)", c.where())
	assert.Len(t, c.args, 2)
}
