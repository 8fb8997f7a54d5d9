package tools

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"
)

// GetHashFromFile streams the file through sha1.
func GetHashFromFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha1.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

func GetHashFromValues(values ...interface{}) string {
	data := ""
	for _, v := range values {
		if _, ok := v.(int); ok {
			data += fmt.Sprintf("%d,", v)
		} else if dt, ok := v.(time.Time); ok {
			data += dt.Format(time.RFC3339)
		} else {
			data += fmt.Sprintf("%s,", v)
		}
	}

	h := sha1.New()
	h.Write([]byte(data))

	return hex.EncodeToString(h.Sum(nil))
}
