package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Username string `json:"username"`
	Currency string `json:"currency"`
	Timeout  int    `json:"timeout"`
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "htassist.json5")

	_, err := ReadConfig[testConfig](name)
	require.ErrorIs(t, err, os.ErrNotExist)

	err = os.WriteFile(name, []byte(`{
		// comments are allowed
		username: "stevensson",
		currency: "eFt",
		timeout: 30,
	}`), 0600)
	require.NoError(t, err)

	cfg, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, testConfig{Username: "stevensson", Currency: "eFt", Timeout: 30}, cfg)

	err = os.WriteFile(filepath.Join(dir, "htassist.local.json5"), []byte(`{currency: "EUR"}`), 0600)
	require.NoError(t, err)

	cfg, err = ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, testConfig{Username: "stevensson", Currency: "EUR", Timeout: 30}, cfg)
}

func TestLocalName(t *testing.T) {
	require.Equal(t, filepath.Join("a", "b.local.json5"), LocalName(filepath.Join("a", "b.json5")))
	require.Equal(t, "telemetry.local.json5", LocalName("telemetry.json5"))
}
