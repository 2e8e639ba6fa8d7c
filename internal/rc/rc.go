// Package rc implements the rc-file loader (spec §6): "invoke
// run_line(shell, line) for each line before entering the read loop".
package rc

import (
	"bufio"
	"os"
	"strings"
)

// Load reads path line by line, calling runLine for each non-blank,
// non-comment line, in order. A missing rc file is not an error — it
// simply means there is nothing to load.
func Load(path string, runLine func(line string)) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		runLine(line)
	}
	return scanner.Err()
}
