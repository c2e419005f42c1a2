package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
)

// Buffer keeps the most recent lines up to a fixed capacity. The oldest line
// is evicted first. It is not safe for concurrent use; callers guard it.
type Buffer struct {
	ring  []string
	next  int
	count int
}

// NewBuffer returns a Buffer holding at most limit lines. A non-positive
// limit is treated as 1.
func NewBuffer(limit int) *Buffer {
	if limit <= 0 {
		limit = 1
	}
	return &Buffer{ring: make([]string, limit)}
}

// Append adds line as the newest entry.
func (b *Buffer) Append(line string) {
	b.ring[b.next] = line
	b.next = (b.next + 1) % len(b.ring)
	if b.count < len(b.ring) {
		b.count++
	}
}

// Len reports how many lines are held.
func (b *Buffer) Len() int {
	return b.count
}

// Cap reports the capacity.
func (b *Buffer) Cap() int {
	return len(b.ring)
}

// Lines returns a copy of the held lines, oldest first.
func (b *Buffer) Lines() []string {
	if b.count == 0 {
		return nil
	}
	lines := make([]string, b.count)
	if b.count == len(b.ring) {
		for i := 0; i < b.count; i++ {
			lines[i] = b.ring[(b.next+i)%len(b.ring)]
		}
	} else {
		copy(lines, b.ring[:b.count])
	}
	return lines
}

// Read returns at most maxLines from the end of the file at path. A missing
// file yields no lines and no error.
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

	buf := NewBuffer(maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		buf.Append(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	return buf.Lines(), nil
}
