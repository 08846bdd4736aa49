package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID   int64
	Name string
}

func TestConnect_InMemorySQLite(t *testing.T) {
	db, err := Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, Migrate(db, &widget{}))

	require.NoError(t, db.Create(&widget{Name: "court"}).Error)

	var count int64
	require.NoError(t, db.Model(&widget{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestIsPostgres(t *testing.T) {
	assert.True(t, IsPostgres("postgres://u:p@localhost/db"))
	assert.True(t, IsPostgres("postgresql://localhost/db"))
	assert.False(t, IsPostgres("bookinghub.db"))
	assert.False(t, IsPostgres(":memory:"))
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, ":memory:", sqliteDSN(":memory:"))
	assert.Equal(t, "app.db?_txlock=immediate&_pragma=busy_timeout(5000)", sqliteDSN("app.db"))
	assert.Equal(t, "file:app.db?mode=rwc&_txlock=immediate&_pragma=busy_timeout(5000)", sqliteDSN("file:app.db?mode=rwc"))
	assert.Equal(t, "app.db?_txlock=exclusive", sqliteDSN("app.db?_txlock=exclusive"))
}
