// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package storage

import (
	"bytes"
	"os"
	"testing"
)

func TestMemoryWriteReadAt(t *testing.T) {
	m := NewMemory()
	if err := m.Write([]byte("hello")); err != nil {
		t.Fatal(err)
	}
	if err := m.Write([]byte(" world")); err != nil {
		t.Fatal(err)
	}
	if got, want := m.Len(), int64(len("hello world")); got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}

	scratch := make([]byte, 5)
	if err := m.ReadAt(6, scratch); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(scratch, []byte("world")) {
		t.Fatalf("ReadAt(6, 5) = %q, want %q", scratch, "world")
	}

	if err := m.ReadAt(7, make([]byte, 10)); err == nil {
		t.Fatal("ReadAt: expected out-of-range error, got nil")
	}
}

func TestFileWriteReadAt(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "logream-storage-*")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	sf, err := NewFile(f)
	if err != nil {
		t.Fatal(err)
	}
	if err := sf.Write([]byte("abcdef")); err != nil {
		t.Fatal(err)
	}
	if err := sf.Write([]byte("ghijkl")); err != nil {
		t.Fatal(err)
	}

	scratch := make([]byte, 6)
	if err := sf.ReadAt(6, scratch); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(scratch, []byte("ghijkl")) {
		t.Fatalf("ReadAt(6, 6) = %q, want %q", scratch, "ghijkl")
	}
}

func TestNewFileResumesFromExistingSize(t *testing.T) {
	path := t.TempDir() + "/log"
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte("preexisting")); err != nil {
		t.Fatal(err)
	}
	f.Close()

	f, err = os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	sf, err := NewFile(f)
	if err != nil {
		t.Fatal(err)
	}
	if err := sf.Write([]byte("-more")); err != nil {
		t.Fatal(err)
	}

	scratch := make([]byte, 5)
	if err := sf.ReadAt(11, scratch); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(scratch, []byte("-more")) {
		t.Fatalf("ReadAt(11, 5) = %q, want %q", scratch, "-more")
	}
}
