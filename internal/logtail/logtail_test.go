package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestBuffer_EvictsOldestFirst(t *testing.T) {
	buf := NewBuffer(3)
	if got := buf.Lines(); got != nil {
		t.Fatalf("Lines() on empty buffer = %v, want nil", got)
	}

	for i := 1; i <= 5; i++ {
		buf.Append(fmt.Sprintf("line %d", i))
	}
	want := []string{"line 3", "line 4", "line 5"}
	if got := buf.Lines(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Lines() = %v, want %v", got, want)
	}
	if buf.Len() != 3 || buf.Cap() != 3 {
		t.Fatalf("Len/Cap = %d/%d, want 3/3", buf.Len(), buf.Cap())
	}
}

func TestBuffer_PartialFillPreservesOrder(t *testing.T) {
	buf := NewBuffer(5)
	buf.Append("a")
	buf.Append("b")
	want := []string{"a", "b"}
	if got := buf.Lines(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Lines() = %v, want %v", got, want)
	}
}

func TestBuffer_LinesIsACopy(t *testing.T) {
	buf := NewBuffer(2)
	buf.Append("a")
	lines := buf.Lines()
	lines[0] = "mutated"
	if got := buf.Lines()[0]; got != "a" {
		t.Fatalf("Lines()[0] = %q after caller mutation, want a", got)
	}
}

func TestBuffer_NonPositiveLimit(t *testing.T) {
	buf := NewBuffer(0)
	buf.Append("a")
	buf.Append("b")
	if got := buf.Lines(); !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("Lines() = %v, want [b]", got)
	}
}

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}
	if err := os.WriteFile(logPath, []byte(content.String()), 0o644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{"zero", 0, nil},
		{"negative", -1, nil},
		{"partial", 5, expectedAll[5:]},
		{"exactly all", 10, expectedAll},
		{"more than exists", 20, expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "absent.log"), 10)
	if err != nil {
		t.Fatalf("Read() error = %v, want nil", err)
	}
	if got != nil {
		t.Fatalf("Read() = %v, want nil", got)
	}
}
