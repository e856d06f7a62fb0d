package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	devenv "htassist/dev/env"
	configlibsql "htassist/lib/configutil/libsql"
	"htassist/lib/telemetry"
	"htassist/services/ledger"
)

const (
	ledgerPath         = "<dev_state>/htassist.db"
	hattrickConfigPath = "<dev_state>/hattrick_config.json5"
)

// CreateLedger creates the ledger the htassist binary uses when it is
// pointed at the dev state with --db.
func CreateLedger() error {
	path, err := devenv.ResolvePath(ledgerPath)
	if err != nil {
		return err
	}
	_, err = os.Stat(path)
	if err == nil {
		fmt.Println("ledger already created at", path)
		return nil
	}

	fmt.Println("creating ledger at", path)
	db, err := configlibsql.Struct{File: path}.OpenDB()
	if err != nil {
		return err
	}
	defer db.Close()
	return ledger.NewStore(db, telemetry.SlogAPI{}).Migrate(context.Background())
}

const hattrickConfigTemplate = `{
    // the account the live tests log in with
    username: "",
    password: "",
    // a name from the team's player list
    player: "",
    currency: "eFt",
}
`

// CreateHattrickConfig writes an empty configuration for the tests that
// talk to the live site, they are skipped until it is filled in.
func CreateHattrickConfig() error {
	path, err := devenv.ResolvePath(hattrickConfigPath)
	if err != nil {
		return err
	}
	_, err = os.Stat(path)
	if err == nil {
		return nil
	}
	return os.WriteFile(path, []byte(hattrickConfigTemplate), 0600)
}

func PrintConfigLocations() {
	slog.Info("the live site tests read dev/.state/hattrick_config.json5, they are skipped while its username is empty.")
}
