package restyutil

import (
	"log/slog"
	"os"
	"path/filepath"

	devenv "htassist/dev/env"
)

// FilesystemOutput writes every message into its own file in a directory.
type FilesystemOutput struct {
	directory string
}

// NewFilesystemOutput empties and recreates `dir`, a leading "<dev_state>"
// element is resolved to the workspace's dev/.state directory.
func NewFilesystemOutput(dir string) (FilesystemOutput, error) {
	dir, err := devenv.ResolvePath(dir)
	if err != nil {
		return FilesystemOutput{}, err
	}
	err = os.RemoveAll(dir)
	if err != nil {
		return FilesystemOutput{}, err
	}
	err = os.MkdirAll(dir, 0777)
	if err != nil {
		return FilesystemOutput{}, err
	}
	return FilesystemOutput{directory: dir}, nil
}

func (o FilesystemOutput) Write(id string, contents string) {
	err := os.WriteFile(filepath.Join(o.directory, id+".http"), []byte(contents), 0600)
	if err != nil {
		slog.Warn("failed to write message info file", "id", id, "err", err)
	}
}
