package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"blog/config"
	"blog/internal/domain/entity"
	"blog/internal/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestConstraintViolations(t *testing.T) {
	unique := errors.Wrap(&pgconn.PgError{Code: "23505"}, "insert")
	fk := &pgconn.PgError{Code: "23503"}
	check := &pgconn.PgError{Code: "23514"}

	assert.True(t, isUniqueConstraintViolation(unique))
	assert.True(t, isUniqueConstraintViolation(gorm.ErrDuplicatedKey))
	assert.False(t, isUniqueConstraintViolation(fk))

	assert.True(t, isForeignKeyConstraintViolation(fk))
	assert.True(t, isForeignKeyConstraintViolation(gorm.ErrForeignKeyViolated))
	assert.False(t, isForeignKeyConstraintViolation(check))

	assert.True(t, isCheckConstraintViolation(check))
	assert.False(t, isCheckConstraintViolation(errors.New("boom")))
}

func TestUserMappers_NullableColumns(t *testing.T) {
	local := &entity.User{Name: "Jane Doe1", Username: "janedoe1", PasswordHash: "hash"}
	m := fromUserDomain(local)
	require.NotNil(t, m.Username)
	assert.Equal(t, "janedoe1", *m.Username)
	assert.Nil(t, m.GoogleID)

	federated := &entity.User{Name: "Google User", OAuthID: "g-1"}
	m = fromUserDomain(federated)
	assert.Nil(t, m.Username)
	assert.Nil(t, m.PasswordHash)
	require.NotNil(t, m.GoogleID)

	m.ID = uuid.New()
	back := toUserDomain(m)
	assert.Equal(t, m.ID, back.ID)
	assert.Equal(t, "g-1", back.OAuthID)
	assert.Empty(t, back.Username)
	assert.True(t, back.IsFederated())
	assert.False(t, back.IsLocal())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off`, escapeLike("50% off"))
	assert.Equal(t, `snake\_case`, escapeLike("snake_case"))
	assert.Equal(t, `a\\b`, escapeLike(`a\b`))
}

func TestMigrate_UsesEmbeddedDir(t *testing.T) {
	original := gooseUp
	t.Cleanup(func() { gooseUp = original })

	var gotDir string
	gooseUp = func(_ context.Context, _ *sql.DB, dir string) error {
		gotDir = dir

		return nil
	}
	require.NoError(t, Migrate(context.Background(), nil))
	assert.Equal(t, ".", gotDir)

	gooseUp = func(context.Context, *sql.DB, string) error { return errors.New("boom") }
	assert.Error(t, Migrate(context.Background(), nil))
}

func TestGormSlogLogger_Trace(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	l := newGormSlogLogger(base, &config.Config{})
	sqlFn := func() (string, int64) { return "SELECT 1", 1 }

	l.Trace(context.Background(), time.Now(), sqlFn, gorm.ErrRecordNotFound)
	assert.Zero(t, buf.Len())

	l.Trace(context.Background(), time.Now(), sqlFn, errors.New("connection refused"))
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "GORM query failed", entry["msg"])
	assert.Equal(t, "SELECT 1", entry["sql"])

	buf.Reset()
	l.Trace(context.Background(), time.Now().Add(-time.Second), sqlFn, nil)
	entry = map[string]any{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "GORM slow query", entry["msg"])

	buf.Reset()
	l.LogMode(logger.Silent).Trace(context.Background(), time.Now(), sqlFn, errors.New("x"))
	assert.Zero(t, buf.Len())
}
