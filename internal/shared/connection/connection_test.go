package connection

import (
	"path/filepath"
	"testing"

	"go-fieldtrack/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDialector(t *testing.T) {
	pg, err := Dialector(config.Config{StoreDriver: config.DriverPostgres, DB: config.DBConfig{Host: "db", Name: "fieldtrack"}})
	require.NoError(t, err)
	assert.Equal(t, "postgres", pg.Name())

	lite, err := Dialector(config.Config{StoreDriver: config.DriverSQLite, SQLitePath: "x.db"})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", lite.Name())

	_, err = Dialector(config.Config{StoreDriver: config.DriverRedis})
	assert.Error(t, err)
}

func TestConnectGORMWithRetry_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fieldtrack.db")
	dialector, err := Dialector(config.Config{StoreDriver: config.DriverSQLite, SQLitePath: path})
	require.NoError(t, err)

	db, err := ConnectGORMWithRetry(dialector, 1, zap.NewNop())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
	require.NoError(t, sqlDB.Close())
}

func TestNewKafkaWriter(t *testing.T) {
	w := NewKafkaWriter("localhost:9092", zap.NewNop())
	assert.Equal(t, "localhost:9092", w.Addr.String())
	assert.True(t, w.AllowAutoTopicCreation)
	assert.True(t, w.Async)
}
