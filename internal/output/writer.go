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
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Writer writes one name per line. It is safe for concurrent use.
type Writer struct {
	mu        sync.Mutex
	output    io.Writer
	buf       *bufio.Writer
	count     int
	closeFunc func() error
}

// NewWriter creates a Writer on w. Closing the Writer flushes it but does
// not close w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		output: w,
		buf:    bufio.NewWriter(w),
	}
}

// NewFileWriter creates (or truncates) filename and returns a Writer that
// closes the file on Close.
func NewFileWriter(filename string) (*Writer, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &Writer{
		output:    file,
		buf:       bufio.NewWriter(file),
		closeFunc: file.Close,
	}, nil
}

// ValidateName reports whether name can be written as exactly one line.
func ValidateName(name string) error {
	if strings.ContainsAny(name, "\r\n") {
		return fmt.Errorf("name %q contains a line break", name)
	}
	return nil
}

// Write writes name and a newline. Names containing a line break are
// rejected so that every line is exactly one name.
func (w *Writer) Write(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.buf.WriteString(name + "\n"); err != nil {
		return fmt.Errorf("failed to write name: %w", err)
	}

	w.count++
	return nil
}

// Count returns the number of lines written.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Close flushes buffered output and closes the file, if any.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	flushErr := w.buf.Flush()
	if w.closeFunc != nil {
		closeFunc := w.closeFunc
		w.closeFunc = nil
		if err := closeFunc(); err != nil && flushErr == nil {
			return fmt.Errorf("failed to close output: %w", err)
		}
	}
	if flushErr != nil {
		return fmt.Errorf("failed to flush output: %w", flushErr)
	}
	return nil
}
