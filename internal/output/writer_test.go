// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package output

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWriter(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(&buf)

	if writer == nil {
		t.Fatal("NewWriter returned nil")
	}
	if writer.output != &buf {
		t.Error("Writer output doesn't match provided buffer")
	}
	if writer.count != 0 {
		t.Errorf("Initial count should be 0, got %d", writer.count)
	}
}

func TestWriter_Write(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{
			name:  "single name",
			lines: []string{"Alice"},
			want:  "Alice\n",
		},
		{
			name:  "multiple names",
			lines: []string{"Alice", "Bob", "Carol"},
			want:  "Alice\nBob\nCarol\n",
		},
		{
			name:  "no names",
			lines: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			writer := NewWriter(&buf)

			for _, line := range tt.lines {
				if err := writer.Write(line); err != nil {
					t.Fatalf("Write failed: %v", err)
				}
			}
			if err := writer.Close(); err != nil {
				t.Fatalf("Close failed: %v", err)
			}

			if writer.Count() != len(tt.lines) {
				t.Errorf("Count mismatch: got %d, want %d", writer.Count(), len(tt.lines))
			}
			if buf.String() != tt.want {
				t.Errorf("output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestWriter_BuffersUntilClose(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(&buf)

	if err := writer.Write("Alice"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected nothing written before Close, got %q", buf.String())
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if buf.String() != "Alice\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestWriter_RejectsLineBreaks(t *testing.T) {
	writer := NewWriter(&bytes.Buffer{})

	for _, name := range []string{"a\nb", "a\r", "\n"} {
		if err := writer.Write(name); err == nil {
			t.Errorf("Write(%q) expected error", name)
		}
	}
	if writer.Count() != 0 {
		t.Errorf("Count = %d, want 0", writer.Count())
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"Alice", false},
		{"Ünal", false},
		{"", false},
		{"a\nb", true},
		{"a\rb", true},
		{"trailing\n", true},
	}

	for _, tt := range tests {
		err := ValidateName(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestWriter_Concurrent(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(&buf)

	numGoroutines := 10
	namesPerGoroutine := 100
	totalNames := numGoroutines * namesPerGoroutine

	errCh := make(chan error, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(goroutineID int) {
			for j := 0; j < namesPerGoroutine; j++ {
				if err := writer.Write(fmt.Sprintf("User%d-%d", goroutineID, j)); err != nil {
					errCh <- err
					return
				}
			}
			errCh <- nil
		}(i)
	}

	for i := 0; i < numGoroutines; i++ {
		if err := <-errCh; err != nil {
			t.Fatalf("Concurrent write failed: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if writer.Count() != totalNames {
		t.Errorf("Count mismatch: got %d, want %d", writer.Count(), totalNames)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != totalNames {
		t.Errorf("Line count mismatch: got %d, want %d", len(lines), totalNames)
	}
	for i, line := range lines {
		if !strings.HasPrefix(line, "User") {
			t.Errorf("interleaved output at line %d: %q", i, line)
		}
	}
}

func TestNewFileWriter(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "CONTRIBUTORS")

	writer, err := NewFileWriter(filename)
	if err != nil {
		t.Fatalf("NewFileWriter failed: %v", err)
	}

	for _, name := range []string{"Alice", "Bob"} {
		if err := writer.Write(name); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	// A second Close must not fail on the already closed file.
	if err := writer.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}
	if string(data) != "Alice\nBob\n" {
		t.Errorf("file contents = %q", string(data))
	}
}

func TestNewFileWriter_Error(t *testing.T) {
	_, err := NewFileWriter("/non/existent/path/CONTRIBUTORS")
	if err == nil {
		t.Error("Expected error for non-existent directory, got nil")
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriter_FlushError(t *testing.T) {
	writer := NewWriter(failingWriter{})

	if err := writer.Write("Alice"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := writer.Close(); err == nil {
		t.Error("expected flush error from Close")
	}
}
