// ABOUTME: Reads M3U8-style lists of analysis files or audio files for batch runs
// ABOUTME: Relative entries resolve against the list's own directory

package analysis

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReadList reads a list file and returns the entries it names.
// Empty lines and '#' comments are skipped.
func ReadList(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open list: %w", err)
	}

	defer func() {
		_ = file.Close() // Explicitly ignore error for read-only file
	}()

	baseDir := filepath.Dir(path)

	var entries []string

	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !filepath.IsAbs(line) {
			line = filepath.Join(baseDir, line)
		}

		entries = append(entries, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading list: %w", err)
	}

	return entries, nil
}
