// Package output writes rendered documents to disk.
package output

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/chainguard-dev/clog"
)

// headerLines is the number of lines of a generated header: title, underline, blank line.
const headerLines = 3

// Writer splices rendered content into output files.
type Writer struct {
	logger *clog.Logger
}

// NewWriter creates a new Writer.
func NewWriter(logger *clog.Logger) *Writer {
	return &Writer{logger: logger}
}

// Header returns the title, an '=' underline of the same length and a blank line.
func Header(title string) []string {
	return []string{
		title + "\n",
		strings.Repeat("=", len(title)) + "\n",
		"\n",
	}
}

// WriteChangelog splices a changelog block into path.
func (w *Writer) WriteChangelog(path, repo string, content []string) (string, error) {
	return w.Splice(path, Header(repo+" Changelog"), content)
}

// WriteReleaseNotes splices a release notes document into path.
func (w *Writer) WriteReleaseNotes(path, platformTag string, content []string) (string, error) {
	return w.Splice(path, Header(fmt.Sprintf("Oasis Release Notes v%s ", platformTag)), content)
}

// Splice inserts content after the first 3 lines of the file at path when it
// has more than 3 lines. Otherwise the file is written as header followed by content.
// It returns the absolute path written.
func (w *Writer) Splice(path string, header, content []string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve output path: %w", err)
	}

	existing, err := os.ReadFile(absPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("failed to read %s: %w", absPath, err)
	}
	lines := splitLines(string(existing))

	var out []string
	appending := len(lines) > headerLines
	if appending {
		out = append(out, lines[:headerLines]...)
		out = append(out, content...)
		out = append(out, lines[headerLines:]...)
	} else {
		out = append(out, header...)
		out = append(out, content...)
	}

	if err := os.WriteFile(absPath, []byte(strings.Join(out, "")), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", absPath, err)
	}
	if appending {
		w.logger.Infof("Appended data to: %q", absPath)
	} else {
		w.logger.Infof("Written to new file: %q", absPath)
	}
	return absPath, nil
}

// splitLines splits s after every "\n", keeping the terminators.
func splitLines(s string) []string {
	var lines []string
	for s != "" {
		i := strings.IndexByte(s, '\n')
		if i == -1 {
			lines = append(lines, s)
			break
		}
		lines = append(lines, s[:i+1])
		s = s[i+1:]
	}
	return lines
}
