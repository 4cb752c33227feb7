package fileutil

import (
	"bufio"
	"io"
	"os"

	"github.com/thoreinstein/quail/internal/errors"
)

// MaxLineSize caps ReadFirstLine so a corrupt marker file cannot exhaust memory.
const MaxLineSize = 64 * 1024

// ReadFirstLine returns the first line of path without its line terminator.
// Missing files are reported with an error satisfying os.IsNotExist.
func ReadFirstLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	r := bufio.NewReader(io.LimitReader(f, MaxLineSize))
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errors.Wrapf(err, "reading %s", path)
	}
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line, nil
}
