package artifacts

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"spaces and punctuation", "My Title: Part 2/3!", "My_Title__Part_2_3_"},
		{"already safe", "already_safe-name", "already_safe-name"},
		{"unicode dash", "a–b", "a_b"},
		{"empty", "", ""},
	}

	safe := regexp.MustCompile(`^[A-Za-z0-9_-]*$`)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeFilename(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if !safe.MatchString(got) {
				t.Errorf("result %q contains invalid characters", got)
			}
			// Sanitization is idempotent.
			if again := SanitizeFilename(got); again != got {
				t.Errorf("not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestUniqueName(t *testing.T) {
	a := UniqueName("section")
	b := UniqueName("section")

	for _, name := range []string{a, b} {
		if !strings.HasPrefix(name, "section_") {
			t.Errorf("UniqueName = %q, want section_ prefix", name)
		}
		if len(name) != len("section_")+4 {
			t.Errorf("UniqueName = %q, want 4-char suffix", name)
		}
	}
	if a == b {
		t.Errorf("two unique names collided: %q", a)
	}
}

func TestRunDir(t *testing.T) {
	manager, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	now := time.Date(2024, 6, 1, 13, 45, 9, 0, time.UTC)
	dir, err := manager.RunDir("My Article!", now)
	if err != nil {
		t.Fatalf("RunDir: %v", err)
	}

	if got, want := filepath.Base(dir), "My_Article__2024-06-01_13-45-09"; got != want {
		t.Errorf("run dir = %q, want %q", got, want)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("run dir not created: %v", err)
	}
}

func TestWriteArtifacts(t *testing.T) {
	manager, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	dir, err := manager.RunDir("title", time.Now())
	if err != nil {
		t.Fatalf("RunDir: %v", err)
	}

	audioPath, err := manager.WriteAudio(dir, "final", []byte{0xff, 0xf3})
	if err != nil {
		t.Fatalf("WriteAudio: %v", err)
	}
	if !strings.HasSuffix(audioPath, "final.mp3") {
		t.Errorf("audio path = %q", audioPath)
	}
	data, err := os.ReadFile(audioPath)
	if err != nil || len(data) != 2 {
		t.Errorf("audio bytes not written verbatim: %v", err)
	}

	textPath, err := manager.WriteText(dir, "raw", "article text")
	if err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if !strings.HasSuffix(textPath, "raw.txt") {
		t.Errorf("text path = %q", textPath)
	}
}

func TestNewManagerCreatesBaseDir(t *testing.T) {
	base := filepath.Join(t.TempDir(), "nested", "outputs")
	if _, err := NewManager(base); err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if info, err := os.Stat(base); err != nil || !info.IsDir() {
		t.Errorf("base dir not created: %v", err)
	}
}
