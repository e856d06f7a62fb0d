package configlibsql

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	db, err := Struct{File: path}.OpenDB()
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec("create table Example (id integer)")
	require.NoError(t, err)
	require.FileExists(t, path)
}

func TestOpenRequiresLocation(t *testing.T) {
	_, err := Struct{}.OpenDB()
	require.Error(t, err)
}
