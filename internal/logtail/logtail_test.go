package logtail

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestOpenTail_Window(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	// Ten lines of exactly 8 bytes each ("Line 01\n").
	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %02d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}
	writeFile(t, logPath, content.String())

	tests := []struct {
		name     string
		window   int64
		expected []string
	}{
		{
			name:     "default window (0)",
			window:   0,
			expected: expectedAll,
		},
		{
			name:     "default window (negative)",
			window:   -1,
			expected: expectedAll,
		},
		{
			name:     "window on line boundary",
			window:   40,
			expected: expectedAll[5:],
		},
		{
			name:     "window mid-line yields fragment first",
			window:   37,
			expected: append([]string{"e 06"}, expectedAll[6:]...),
		},
		{
			name:     "window exactly file size",
			window:   80,
			expected: expectedAll,
		},
		{
			name:     "window larger than file",
			window:   1000,
			expected: expectedAll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readLines(logPath, tt.window)
			if err != nil {
				t.Fatalf("readLines() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("readLines() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestOpenTail_OffsetAndSize(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "big.log")
	writeFile(t, logPath, strings.Repeat("x", 100)+"\n")

	tail, err := OpenTail(logPath, 10)
	if err != nil {
		t.Fatalf("OpenTail returned error: %v", err)
	}
	defer func() { _ = tail.Close() }()

	if tail.Size != 101 {
		t.Fatalf("Size = %d, want 101", tail.Size)
	}
	if tail.Offset != 91 {
		t.Fatalf("Offset = %d, want 91", tail.Offset)
	}
	if !tail.Scan() {
		t.Fatalf("Scan returned false, want one line")
	}
	if tail.Text() != strings.Repeat("x", 9) {
		t.Fatalf("Text = %q, want 9 x", tail.Text())
	}
	if tail.Scan() {
		t.Fatalf("Scan returned true after the last line")
	}
	if tail.Err() != nil {
		t.Fatalf("Err = %v, want nil", tail.Err())
	}
}

func TestOpenTail_StopsAtSizeSeenAtOpen(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "grow.log")
	writeFile(t, logPath, "first\n")

	tail, err := OpenTail(logPath, 1024)
	if err != nil {
		t.Fatalf("OpenTail returned error: %v", err)
	}
	defer func() { _ = tail.Close() }()

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	_, _ = f.WriteString("second\n")
	_ = f.Close()

	var got []string
	for tail.Scan() {
		got = append(got, tail.Text())
	}
	if !reflect.DeepEqual(got, []string{"first"}) {
		t.Fatalf("lines = %v, want [first]", got)
	}
}

func TestScan_SkipsInvalidUTF8AndStripsCR(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "mixed.log")
	writeFile(t, logPath, "ok one\r\nbad \xff\xfe line\n\nok two")

	got, err := readLines(logPath, 0)
	if err != nil {
		t.Fatalf("readLines returned error: %v", err)
	}
	want := []string{"ok one", "", "ok two"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("readLines = %q, want %q", got, want)
	}
}

func TestOpenTail_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := OpenTail(filepath.Join(dir, "missing.log"), 0); err == nil {
		t.Fatalf("OpenTail on missing file returned nil error")
	} else if !errors.Is(err, os.ErrNotExist) || !strings.Contains(err.Error(), "open log file") {
		t.Fatalf("OpenTail error = %v, want wrapped ErrNotExist", err)
	}

	if _, err := OpenTail(dir, 0); err == nil {
		t.Fatalf("OpenTail on a directory returned nil error")
	}
}

func TestEmptyFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "empty.log")
	writeFile(t, logPath, "")

	got, err := readLines(logPath, 0)
	if err != nil {
		t.Fatalf("readLines returned error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("readLines = %v, want no lines", got)
	}
}

func TestSelectLatest(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	files := []struct {
		name string
		age  time.Duration
	}{
		{name: "old.log", age: 3 * time.Hour},
		{name: "newer.txt", age: time.Hour},
		{name: "newest.cfg", age: 0},
		{name: "mid.log", age: 2 * time.Hour},
	}
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		writeFile(t, path, "x\n")
		mod := base.Add(-f.age)
		if err := os.Chtimes(path, mod, mod); err != nil {
			t.Fatalf("Chtimes(%s): %v", f.name, err)
		}
	}
	sub := filepath.Join(dir, "nested.log")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	future := base.Add(time.Hour)
	if err := os.Chtimes(sub, future, future); err != nil {
		t.Fatalf("Chtimes(dir): %v", err)
	}

	got, err := SelectLatest(dir)
	if err != nil {
		t.Fatalf("SelectLatest returned error: %v", err)
	}
	if want := filepath.Join(dir, "newer.txt"); got != want {
		t.Fatalf("SelectLatest = %q, want %q", got, want)
	}
}

func TestSelectLatest_TieKeepsFirstListed(t *testing.T) {
	dir := t.TempDir()
	mod := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for _, name := range []string{"b.log", "a.log"} {
		path := filepath.Join(dir, name)
		writeFile(t, path, "x\n")
		if err := os.Chtimes(path, mod, mod); err != nil {
			t.Fatalf("Chtimes: %v", err)
		}
	}

	got, err := SelectLatest(dir)
	if err != nil {
		t.Fatalf("SelectLatest returned error: %v", err)
	}
	// os.ReadDir lists entries sorted by name.
	if want := filepath.Join(dir, "a.log"); got != want {
		t.Fatalf("SelectLatest = %q, want %q", got, want)
	}
}

func TestSelectLatest_ExtensionIsCaseSensitive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "upper.LOG"), "x\n")
	writeFile(t, filepath.Join(dir, "notes.md"), "x\n")

	_, err := SelectLatest(dir)
	if !errors.Is(err, ErrNoLogFiles) {
		t.Fatalf("SelectLatest error = %v, want ErrNoLogFiles", err)
	}
}

func TestSelectLatest_MissingDir(t *testing.T) {
	_, err := SelectLatest(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatalf("SelectLatest returned nil error for a missing directory")
	}
	if errors.Is(err, ErrNoLogFiles) {
		t.Fatalf("SelectLatest error = %v, want an I/O error, not ErrNoLogFiles", err)
	}
	if !strings.Contains(err.Error(), "read log dir") {
		t.Fatalf("SelectLatest error = %q, want it to mention read log dir", err.Error())
	}
}

func readLines(path string, window int64) ([]string, error) {
	tail, err := OpenTail(path, window)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tail.Close() }()

	var lines []string
	for tail.Scan() {
		lines = append(lines, tail.Text())
	}
	return lines, tail.Err()
}
