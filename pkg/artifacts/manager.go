// Package artifacts manages output naming and persistence for pipeline runs.
package artifacts

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

const (
	DefaultBaseDir = "outputs"

	// runDirTimeFormat stamps one run's output directory.
	runDirTimeFormat = "2006-01-02_15-04-05"
)

// invalidFilenameChar matches every rune that may not appear in an
// output filename. Replacement with "_" is idempotent.
var invalidFilenameChar = regexp.MustCompile(`[^\w\-]`)

// SanitizeFilename replaces all characters outside [A-Za-z0-9_-] with
// underscores.
func SanitizeFilename(name string) string {
	return invalidFilenameChar.ReplaceAllString(name, "_")
}

// UniqueName appends a short random suffix to a base name, guaranteeing
// uniqueness across sections that share similar titles.
func UniqueName(base string) string {
	buf := make([]byte, 2)
	if _, err := rand.Read(buf); err != nil {
		// math-free fallback: nanosecond tail is unique enough per run
		return fmt.Sprintf("%s_%04d", base, time.Now().Nanosecond()%10000)
	}
	return fmt.Sprintf("%s_%s", base, hex.EncodeToString(buf))
}

// Manager writes run artifacts under a base directory.
type Manager struct {
	baseDir string
}

// NewManager creates a Manager and ensures the base directory exists.
// Directory creation happens here, not at package init.
func NewManager(baseDir string) (*Manager, error) {
	if baseDir == "" {
		baseDir = DefaultBaseDir
	}
	if err := os.MkdirAll(baseDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Manager{baseDir: baseDir}, nil
}

func (m *Manager) BaseDir() string {
	return m.baseDir
}

// RunDir creates and returns a per-run directory named from the
// sanitized article title and a timestamp.
func (m *Manager) RunDir(title string, now time.Time) (string, error) {
	name := fmt.Sprintf("%s_%s", SanitizeFilename(title), now.Format(runDirTimeFormat))
	dir := filepath.Join(m.baseDir, name)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create run directory: %w", err)
	}
	return dir, nil
}

// WriteAudio persists synthesized audio bytes verbatim and returns the
// written path.
func (m *Manager) WriteAudio(dir, name string, data []byte) (string, error) {
	path := filepath.Join(dir, name+".mp3")
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}
	return path, nil
}

// WriteText persists a text artifact and returns the written path.
func (m *Manager) WriteText(dir, name, content string) (string, error) {
	path := filepath.Join(dir, name+".txt")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}
	return path, nil
}
