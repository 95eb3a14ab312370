// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLineOf(t *testing.T) {
	srcfile := NewSourceFile("test", []byte("one\ntwo\nthree"))
	// Offsets 0..3 sit on line 1 (including the newline itself).
	checkLineOf(t, srcfile, 0, 1)
	checkLineOf(t, srcfile, 3, 1)
	checkLineOf(t, srcfile, 4, 2)
	checkLineOf(t, srcfile, 8, 3)
	// Offsets beyond the end report the last physical line.
	checkLineOf(t, srcfile, 100, 3)
}

func TestFirstEnclosingLine(t *testing.T) {
	srcfile := NewSourceFile("test", []byte("one\ntwo\nthree"))
	//
	line := srcfile.FindFirstEnclosingLine(NewSpan(5, 6))
	//
	if line.Number() != 2 || line.String() != "two" {
		t.Errorf("expected line 2 %q, got line %d %q", "two", line.Number(), line.String())
	}
	//
	if line.Start() != 4 || line.Length() != 3 {
		t.Errorf("unexpected line extent %d+%d", line.Start(), line.Length())
	}
}

func TestReadFiles(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "test.pil")
	//
	if err := os.WriteFile(filename, []byte("pol x;\n"), 0600); err != nil {
		t.Fatal(err)
	}
	//
	files, err := ReadFiles(filename)
	if err != nil {
		t.Fatal(err)
	}
	//
	if len(files) != 1 || files[0].Filename() != filename {
		t.Errorf("unexpected files read: %v", files)
	}
	//
	if string(files[0].Contents()) != "pol x;\n" {
		t.Errorf("unexpected contents %q", string(files[0].Contents()))
	}
}

func TestReadFilesMissing(t *testing.T) {
	_, err := ReadFiles(filepath.Join(t.TempDir(), "nonexistent.pil"))
	//
	if err == nil {
		t.Error("expected an error reading a nonexistent file")
	}
}

func checkLineOf(t *testing.T, srcfile *File, offset int, expected int) {
	t.Helper()
	//
	if actual := srcfile.LineOf(offset); actual != expected {
		t.Errorf("LineOf(%d): expected line %d, got %d", offset, expected, actual)
	}
}
