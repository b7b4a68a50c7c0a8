package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kvmet/tanukioke/internal/lrx"
)

func TestFormat_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.lrx")
	src := "[00:02.00]second\r\n[ti:Song]\r\n[00:01.00]first\r\n"
	if err := os.WriteFile(path, []byte(src), 0600); err != nil {
		t.Fatal(err)
	}

	if err := format(path, true, false); err != nil {
		t.Fatalf("format() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if strings.Index(out, "first") > strings.Index(out, "second") {
		t.Errorf("lines not sorted:\n%s", out)
	}

	want, _ := lrx.Parse(src)
	got, err := lrx.Parse(out)
	if err != nil {
		t.Fatalf("formatted output does not parse: %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("formatted document differs:\n%s", out)
	}

	info, _ := os.Stat(path)
	if info.Mode().Perm() != 0600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}

	// Formatting is idempotent.
	if err := format(path, true, false); err != nil {
		t.Fatal(err)
	}
	again, _ := os.ReadFile(path)
	if string(again) != out {
		t.Errorf("second format changed output")
	}
}

func TestFormat_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.lrx")
	if err := os.WriteFile(path, []byte("[ti:x]\n[track.a:speed=2]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	err := format(path, false, true)
	if err == nil || !strings.Contains(err.Error(), path+":2:") {
		t.Errorf("format() error = %v, want %s:2: prefix", err, path)
	}
}
