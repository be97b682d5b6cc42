package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRebind(t *testing.T) {
	assert.Equal(t, "SELECT 1", Rebind("SELECT 1"))
	assert.Equal(t,
		"UPDATE t SET a = $1, b = $2 WHERE id = $3",
		Rebind("UPDATE t SET a = ?, b = ? WHERE id = ?"))
	assert.Equal(t,
		"SELECT * FROM t WHERE note = 'why?' AND id = $1",
		Rebind("SELECT * FROM t WHERE note = 'why?' AND id = ?"))
}

func TestBind_SQLiteIsPassthrough(t *testing.T) {
	db := openTestDB(t)
	assert.Same(t, db, Bind(db, DriverSQLite))

	wrapped := Bind(db, DriverPostgres)
	assert.IsType(t, &rebindDBTX{}, wrapped)
	assert.Same(t, wrapped, Bind(wrapped, DriverPostgres), "binding twice does not double-wrap")
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open("mysql", "whatever")
	assert.Error(t, err)
}
