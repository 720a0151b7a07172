package fsio

import "testing"

func TestMemFSRoundTrip(t *testing.T) {
	fs := NewMemFS()
	if fs.Exists("a.txt") {
		t.Fatal("fresh MemFS should not report any existing files")
	}
	if err := fs.WriteFile("a.txt", []byte("hello")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if !fs.Exists("a.txt") {
		t.Fatal("written file should exist")
	}
	got, err := fs.ReadFile("a.txt")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "hello" {
		t.Fatalf("ReadFile = %q, want hello", got)
	}
}

func TestMemFSReadMissing(t *testing.T) {
	fs := NewMemFS()
	if _, err := fs.ReadFile("missing.txt"); err == nil {
		t.Fatal("expected error reading missing file")
	}
}

func TestMemFSTempFileCleanup(t *testing.T) {
	fs := NewMemFS()
	path, err := fs.TempFile("obj")
	if err != nil {
		t.Fatalf("TempFile: %v", err)
	}
	if !fs.Exists(path) {
		t.Fatal("temp file should exist immediately after creation")
	}
	if err := fs.Remove(path); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if fs.Exists(path) {
		t.Fatal("temp file should not exist after Remove")
	}
}

func TestReplaceExt(t *testing.T) {
	if got := ReplaceExt("model.rjm", "obj"); got != "model.obj" {
		t.Fatalf("ReplaceExt = %q, want model.obj", got)
	}
}

func TestSiblingPath(t *testing.T) {
	if got := SiblingPath("model.rjm", ".transform"); got != "model.rjm.transform" {
		t.Fatalf("SiblingPath = %q, want model.rjm.transform", got)
	}
}
