package islazy

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/uuid"
	resolver "github.com/helviojunior/gopathresolver"
)

// CreateDir creates a directory if it does not exist, returning the final
// directory path.
func CreateDir(dir string) (string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}
	return dir, nil
}

// CreateFileWithDir creates (or truncates) a file, making any missing
// parent directories.
func CreateFileWithDir(destination string) (string, error) {
	if _, err := CreateDir(filepath.Dir(destination)); err != nil {
		return "", err
	}
	f, err := os.Create(destination)
	if err != nil {
		return "", err
	}
	defer f.Close()

	return destination, nil
}

// TempFileName generates a unique file name inside dir (or the system temp
// directory when dir is empty).
func TempFileName(dir string, prefix string, suffix string) string {
	if dir == "" {
		dir = os.TempDir()
	}
	u := uuid.Must(uuid.NewV4())
	return filepath.Join(dir, prefix+strings.Replace(u.String(), "-", "", -1)+suffix)
}

// FileExists reports whether path exists (file or directory).
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ResolveFullPath expands ~ and relative segments to an absolute path.
func ResolveFullPath(path string) (string, error) {
	return resolver.ResolveFullPath(path)
}
