package cmd

import (
	"context"
	"database/sql"
	"log/slog"

	"htassist/lib/crashdump"
	"htassist/lib/prompt"
	"htassist/lib/restyutil"
	"htassist/lib/scrapers/hattrick/core"
	"htassist/lib/telemetry"
	"htassist/services/ledger"
)

// promptCredentials asks for whatever the configuration left out, at the
// moment the login needs it.
type promptCredentials struct {
	prompter *prompt.Prompter
	username string
	password string
}

func (p promptCredentials) Credentials(ctx context.Context) (core.Credentials, error) {
	creds := core.Credentials{Username: p.username, Password: p.password}
	var err error
	for creds.Username == "" {
		creds.Username, err = p.prompter.Line(ctx, "Hattrick login name: ")
		if err != nil {
			return core.Credentials{}, err
		}
	}
	for creds.Password == "" {
		creds.Password, err = p.prompter.Password(ctx, "Password: ")
		if err != nil {
			return core.Credentials{}, err
		}
	}
	return creds, nil
}

func clientOptions(c Config, verbose bool) core.ClientOptions {
	opts := core.ClientOptions{
		Currency: c.Currency,
		Credentials: promptCredentials{
			prompter: prompter,
			username: c.Username,
			password: c.Password,
		},
		Dumper:    crashdump.Dumper{Dir: c.DumpDir},
		Telemetry: telemetry.SlogAPI{},
	}
	if verbose && c.HttpDumpDir != "" {
		output, err := restyutil.NewFilesystemOutput(c.HttpDumpDir)
		if err != nil {
			slog.Warn("http messages will not be written", "dir", c.HttpDumpDir, "err", err)
		} else {
			opts.MessageOutput = output
		}
	}
	return opts
}

// openLedger opens and migrates the ledger, --read-only wraps it so that
// nothing is written.
func openLedger(ctx context.Context, c Config, readOnly bool) (ledger.Ledger, *sql.DB, error) {
	database, err := c.Database.OpenDB()
	if err != nil {
		return nil, nil, err
	}
	store := ledger.NewStore(database, telemetry.SlogAPI{})
	err = store.Migrate(ctx)
	if err != nil {
		database.Close()
		return nil, nil, err
	}
	if readOnly {
		return ledger.NewReadOnly(store, telemetry.SlogAPI{}), database, nil
	}
	return store, database, nil
}
