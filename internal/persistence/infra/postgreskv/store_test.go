package postgreskv

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	s := New(db)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS kv_store \(\s+key\s+TEXT PRIMARY KEY,\s+value\s+JSONB NOT NULL`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, s.EnsureSchema(ctx))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value::text FROM kv_store WHERE key = $1")).
		WithArgs("products").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))
	_, found, err := s.Get(ctx, "products")
	require.NoError(t, err)
	assert.False(t, found)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2::jsonb, now())")).
		WithArgs("products", `[{"id":"1"}]`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, s.Put(ctx, "products", []byte(`[{"id":"1"}]`)))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value::text FROM kv_store WHERE key = $1")).
		WithArgs("products").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`[{"id":"1"}]`))
	v, found, err := s.Get(ctx, "products")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":"1"}]`, string(v))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPutRejectsInvalidJSON(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = New(db).Put(context.Background(), "orders", []byte("not json"))
	assert.ErrorIs(t, err, ErrInvalidJSON)
	require.NoError(t, mock.ExpectationsWereMet())
}
