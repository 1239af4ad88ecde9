package testsupport

import (
	"os"
	"path/filepath"
)

// WriteFile writes body to path, creating parent directories.
func WriteFile(path, body string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(body), 0o644)
}

// WriteTree writes files, keyed by slash separated paths relative to root.
func WriteTree(root string, files map[string]string) error {
	for rel, body := range files {
		if err := WriteFile(filepath.Join(root, filepath.FromSlash(rel)), body); err != nil {
			return err
		}
	}
	return nil
}

func LoadFixture(path string) ([]byte, error) {
	return os.ReadFile(path)
}
