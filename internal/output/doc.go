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

// Package output writes the roster as plain text, one name per line.
//
// The primary type is Writer, which provides thread-safe, buffered writing of
// lines to an io.Writer or file. Output is flushed on Close.
//
// Example usage:
//
//	w, err := output.NewFileWriter("CONTRIBUTORS")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Close()
//
//	for _, name := range roster {
//	    if err := w.Write(name); err != nil {
//	        log.Printf("Failed to write name: %v", err)
//	    }
//	}
//
//	fmt.Printf("Wrote %d names\n", w.Count())
package output
