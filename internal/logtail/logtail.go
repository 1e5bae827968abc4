package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// DefaultWindow is the number of trailing bytes read from a log file.
const DefaultWindow int64 = 1 << 20

// Tail is a forward-only line stream over the final window of a file.
// It is not safe for concurrent use and cannot be restarted.
type Tail struct {
	file   *os.File
	reader *bufio.Reader
	line   string
	err    error
	done   bool

	// Offset is where reading started. Size is the file length at open time.
	Offset int64
	Size   int64
}

// OpenTail opens path and positions the stream window bytes before the end
// of the file, or at the start when the file is smaller than the window.
// The first line may be a fragment when the offset lands mid-line.
func OpenTail(path string, window int64) (*Tail, error) {
	if window <= 0 {
		window = DefaultWindow
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("stat log file: %w", err)
	}
	if info.IsDir() {
		_ = file.Close()
		return nil, fmt.Errorf("open log file: %s is a directory", path)
	}

	size := info.Size()
	var offset int64
	if size > window {
		offset = size - window
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("seek log file: %w", err)
	}

	return &Tail{
		file:   file,
		reader: bufio.NewReaderSize(io.LimitReader(file, size-offset), 64*1024),
		Offset: offset,
		Size:   size,
	}, nil
}

// Scan advances to the next line. Lines that are not valid UTF-8 are skipped.
// It returns false at the end of the window or on a read error; see Err.
func (t *Tail) Scan() bool {
	for !t.done {
		raw, err := t.reader.ReadString('\n')
		if err != nil {
			t.done = true
			if !errors.Is(err, io.EOF) {
				t.err = fmt.Errorf("read log file: %w", err)
				return false
			}
			if raw == "" {
				return false
			}
		}
		line := strings.TrimSuffix(raw, "\n")
		line = strings.TrimSuffix(line, "\r")
		if !utf8.ValidString(line) {
			continue
		}
		t.line = line
		return true
	}
	return false
}

// Text returns the line produced by the last successful Scan.
func (t *Tail) Text() string {
	return t.line
}

// Err returns the first read error encountered by Scan.
func (t *Tail) Err() error {
	return t.err
}

// Close releases the underlying file.
func (t *Tail) Close() error {
	if t == nil || t.file == nil {
		return nil
	}
	err := t.file.Close()
	t.file = nil
	return err
}
