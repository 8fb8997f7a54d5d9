package tools

import (
	"io"
	"os"

	"github.com/h2non/filetype"
)

// GetMimeType detects the mime type of a file from its magic bytes.
// Files filetype cannot classify are reported as text/plain.
func GetMimeType(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	// filetype needs at most the first 262 bytes
	head := make([]byte, 262)
	n, err := f.Read(head)
	if err != nil && err != io.EOF {
		return "", err
	}

	kind, err := filetype.Match(head[:n])
	if err != nil {
		return "", err
	}
	if kind == filetype.Unknown {
		return "text/plain", nil
	}

	return kind.MIME.Value, nil
}

// IsBinary reports whether the given head bytes look like a binary
// (application/*) payload.
func IsBinary(head []byte) (bool, string) {
	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return false, ""
	}
	return kind.MIME.Type == "application", kind.MIME.Value
}

// FileType returns "file" or "dir" for path.
func FileType(path string) (string, error) {
	st, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if st.IsDir() {
		return "dir", nil
	}
	return "file", nil
}
