package logtail

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const chunkSize = 8 * 1024

// Read returns at most maxLines from the end of the file at path. The file is
// read backwards in chunks, so only the tail is loaded.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat log: %w", err)
	}

	var buf []byte
	offset := info.Size()
	for offset > 0 && bytes.Count(buf, []byte{'\n'}) <= maxLines {
		n := min(int64(chunkSize), offset)
		offset -= n
		part := make([]byte, n)
		if _, err := file.ReadAt(part, offset); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		buf = append(part, buf...)
	}

	text := strings.TrimSuffix(string(buf), "\n")
	if text == "" {
		return nil, nil
	}
	lines := strings.Split(text, "\n")
	// When the scan stopped early the first segment is a partial line; it is
	// always beyond the last maxLines.
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines, nil
}

// Level is the severity inferred from a log line.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Entry is one parsed line of the application log.
type Entry struct {
	Time    time.Time // zero when the line carries no timestamp
	Message string
	Level   Level
}

const stampLayout = "2006/01/02 15:04:05"

// Parse splits a line written by the standard logger into its timestamp and
// message. An optional prefix before the timestamp is dropped. Lines that do
// not carry a timestamp are returned whole as the message.
func Parse(line string) Entry {
	fields := strings.Fields(line)
	for i := 0; i+1 < len(fields) && i < 2; i++ {
		ts, err := time.ParseInLocation(stampLayout, fields[i]+" "+fields[i+1], time.Local)
		if err != nil {
			continue
		}
		msg := strings.Join(fields[i+2:], " ")
		return Entry{Time: ts, Message: msg, Level: levelOf(msg)}
	}
	msg := strings.TrimSpace(line)
	return Entry{Message: msg, Level: levelOf(msg)}
}

// ParseAll parses every line.
func ParseAll(lines []string) []Entry {
	out := make([]Entry, 0, len(lines))
	for _, line := range lines {
		out = append(out, Parse(line))
	}
	return out
}

func levelOf(msg string) Level {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "error"), strings.Contains(lower, "fail"):
		return LevelError
	case strings.Contains(lower, "stale"), strings.Contains(lower, "dropped"), strings.Contains(lower, "warn"):
		return LevelWarn
	default:
		return LevelInfo
	}
}
