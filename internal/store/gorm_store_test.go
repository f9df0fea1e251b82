package store_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"go-fieldtrack/internal/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newGormMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

var selectSnapshot = regexp.QuoteMeta(`SELECT * FROM "app_snapshots" WHERE snapshot_key = $1`)

func TestGormStore_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("stored snapshot", func(t *testing.T) {
		db, mock := newGormMock(t)
		want := sampleSnapshot()
		payload, err := store.Encode(want)
		require.NoError(t, err)

		mock.ExpectQuery(selectSnapshot).
			WillReturnRows(sqlmock.NewRows([]string{"snapshot_key", "payload", "updated_at"}).
				AddRow(store.DefaultKey, string(payload), time.Now()))

		got, err := store.NewGormStore(db, "").Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no row", func(t *testing.T) {
		db, mock := newGormMock(t)
		mock.ExpectQuery(selectSnapshot).
			WillReturnRows(sqlmock.NewRows([]string{"snapshot_key", "payload", "updated_at"}))

		_, err := store.NewGormStore(db, "").Load(ctx)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("query error", func(t *testing.T) {
		db, mock := newGormMock(t)
		mock.ExpectQuery(selectSnapshot).WillReturnError(errors.New("connection reset"))

		_, err := store.NewGormStore(db, "").Load(ctx)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, store.ErrNotFound)
	})
}

func TestGormStore_Save(t *testing.T) {
	ctx := context.Background()
	insert := regexp.QuoteMeta(`INSERT INTO "app_snapshots"`)

	t.Run("upserts the snapshot row", func(t *testing.T) {
		db, mock := newGormMock(t)
		mock.ExpectExec(insert + `.*ON CONFLICT`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, store.NewGormStore(db, "").Save(ctx, sampleSnapshot()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("write failure", func(t *testing.T) {
		db, mock := newGormMock(t)
		mock.ExpectExec(insert).WillReturnError(errors.New("disk full"))

		assert.Error(t, store.NewGormStore(db, "").Save(ctx, sampleSnapshot()))
	})
}
