package devenv

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"htassist/lib/configutil"
)

const (
	moduleName  = "htassist"
	statePrefix = "<dev_state>"
)

func declaresModule(dir string) bool {
	f, err := os.Open(filepath.Join(dir, "go.mod"))
	if err != nil {
		return false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name, ok := strings.CutPrefix(strings.TrimSpace(scanner.Text()), "module ")
		if ok {
			return strings.TrimSpace(name) == moduleName
		}
	}
	return false
}

// GetWorkspaceRoot walks up from the working directory to the directory of
// the module's go.mod. Tests run in their package directory, so this is how
// they find the dev state.
func GetWorkspaceRoot() (string, error) {
	current, err := filepath.Abs(".")
	if err != nil {
		return "", err
	}
	for {
		if declaresModule(current) {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("no '%s' go.mod above the working directory: %w", moduleName, os.ErrNotExist)
		}
		current = parent
	}
}

// StateDir returns dev/.state of the workspace, creating it when needed.
func StateDir() (string, error) {
	root, err := GetWorkspaceRoot()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(root, "dev", ".state")
	err = os.MkdirAll(dir, 0777)
	if err != nil {
		return "", err
	}
	return dir, nil
}

// GetStateConfig reads a configuration file kept in the dev state.
func GetStateConfig[T any](name string) (T, error) {
	var out T
	dir, err := StateDir()
	if err != nil {
		return out, err
	}
	path := filepath.Join(dir, name)
	out, err = configutil.ReadConfig[T](path)
	if os.IsNotExist(err) {
		return out, fmt.Errorf("no file at %s: %w", path, err)
	}
	return out, err
}

// ResolvePath expands a leading "<dev_state>" path element to the dev/.state
// directory of the workspace, other paths are returned as-is.
func ResolvePath(path string) (string, error) {
	rest, ok := strings.CutPrefix(filepath.ToSlash(path), statePrefix)
	if !ok {
		return path, nil
	}
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(rest, "/"))), nil
}
