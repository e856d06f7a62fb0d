package cmd

import (
	"errors"
	"os"

	"htassist/lib/configutil"
	configlibsql "htassist/lib/configutil/libsql"
	"htassist/services/monitor"

	"github.com/spf13/cobra"
)

const (
	configName    = "htassist.json5"
	defaultDbFile = "htassist.db"
)

type Config struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Currency string `json:"currency"`
	// IANA name, the ledger's days start at midnight there
	Timezone string              `json:"timezone"`
	DumpDir  string              `json:"dump_dir"`
	Database configlibsql.Struct `json:"database"`
	// receives the HTTP messages in verbose mode
	HttpDumpDir string             `json:"http_dump_dir"`
	Smtp        monitor.SmtpConfig `json:"smtp"`
}

// loadConfig reads `path` (and its local override), without a path the
// default configuration is searched upwards. A missing default configuration
// is not an error.
func loadConfig(path string) (Config, error) {
	if path != "" {
		return configutil.ReadConfig[Config](path)
	}
	config, err := configutil.ReadRecursively[Config](configName)
	if errors.Is(err, os.ErrNotExist) {
		return Config{}, nil
	}
	return config, err
}

// withFlags overrides the configuration with the flags that were given.
func (c Config) withFlags(cmd *cobra.Command, f globalFlags) Config {
	changed := func(name string) bool {
		flag := cmd.Flags().Lookup(name)
		return flag != nil && flag.Changed
	}
	if changed("user") {
		c.Username = f.user
	}
	if changed("password") {
		c.Password = f.password
	}
	if changed("currency") {
		c.Currency = f.currency
	}
	if changed("dump-dir") {
		c.DumpDir = f.dumpDir
	}
	if changed("db") {
		c.Database = configlibsql.Struct{File: f.db}
	}
	if c.Database.File == "" && c.Database.Url == "" {
		c.Database.File = defaultDbFile
	}
	return c
}
