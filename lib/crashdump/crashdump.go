// Package crashdump writes pages that could not be parsed to disk so they
// can be inspected later.
package crashdump

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	devenv "htassist/dev/env"
)

const DefaultPrefix = "crashdump"

// Dumper writes <Prefix>.<suffix>.html files into Dir. The zero value writes
// crashdump.<suffix>.html into the working directory.
type Dumper struct {
	Dir    string
	Prefix string
}

// Dump writes body and returns the path it was written to. A failed write is
// only logged and yields an empty path.
func (d Dumper) Dump(suffix, body string) string {
	prefix := d.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	dir := d.Dir
	if dir == "" {
		dir = "."
	}

	dir, err := devenv.ResolvePath(dir)
	if err != nil {
		slog.Warn("failed to resolve dump directory", "dir", d.Dir, "err", err)
		return ""
	}
	err = os.MkdirAll(dir, 0777)
	if err != nil {
		slog.Warn("failed to create dump directory", "dir", dir, "err", err)
		return ""
	}

	path := filepath.Join(dir, fmt.Sprintf("%s.%s.html", prefix, suffix))
	err = os.WriteFile(path, []byte(body), 0600)
	if err != nil {
		slog.Warn("failed to write page dump", "path", path, "err", err)
		return ""
	}
	return path
}
