package readers

import (
	"bufio"
	"os"
	"strings"
)

// FileReaderOptions are options for the file reader
type FileReaderOptions struct {
	Path string
}

// ReadFileList reads candidate lines from a file into outList.
func ReadFileList(fileName string, outList *[]string) error {
	file, err := os.Open(fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		candidate := strings.TrimSpace(scanner.Text())
		if candidate == "" {
			continue
		}

		*outList = append(*outList, candidate)
	}

	return scanner.Err()
}
