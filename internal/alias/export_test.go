package alias

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestExportAliasesProbe(t *testing.T) {
	r := NewRegistry()
	_ = r.Define("sh", "a", "1")
	_ = r.Define("sh", "bb", "22")

	need, err := r.ExportAliases("sh", nil)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if need != len("bb=22\x00a=1\x00") {
		t.Fatalf("probe size = %d, want %d", need, len("bb=22\x00a=1\x00"))
	}

	short := make([]byte, need-1)
	if n, err := r.ExportAliases("sh", short); !errors.Is(err, ErrBufferTooSmall) || n != need {
		t.Errorf("short export = %d, %v, want %d, ErrBufferTooSmall", n, err, need)
	}
	for _, b := range short {
		if b != 0 {
			t.Fatal("short export wrote into dst")
		}
	}

	buf := make([]byte, need)
	n, err := r.ExportAliases("sh", buf)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if got := string(buf[:n]); got != "bb=22\x00a=1\x00" {
		t.Errorf("export = %q", got)
	}
}

func TestExportOwners(t *testing.T) {
	r := NewRegistry()
	_ = r.Define("one", "a", "1")
	_ = r.Define("two", "a", "1")

	need, _ := r.ExportOwners(nil)
	buf := make([]byte, need)
	n, err := r.ExportOwners(buf)
	if err != nil {
		t.Fatalf("ExportOwners: %v", err)
	}
	if got := string(buf[:n]); got != "one\x00two\x00" {
		t.Errorf("ExportOwners = %q", got)
	}

	if n, err := NewRegistry().ExportOwners(nil); n != 0 || err != nil {
		t.Errorf("empty probe = %d, %v, want 0, nil", n, err)
	}
}

func TestSaveLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.yaml")

	r := NewRegistry()
	_ = r.Define("keyline", "ll", "ls -l $*")
	_ = r.Define("cmd.exe", "up", "cd ..")
	if err := r.SaveFile(path); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}

	loaded := NewRegistry()
	n, err := loaded.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if n != 2 {
		t.Errorf("loaded %d aliases, want 2", n)
	}
	if got, _ := loaded.Lookup("keyline", "ll"); got != "ls -l $*" {
		t.Errorf("Lookup ll = %q", got)
	}
	if got, _ := loaded.Lookup("cmd.exe", "up"); got != "cd .." {
		t.Errorf("Lookup up = %q", got)
	}
}

func TestLoadErrors(t *testing.T) {
	r := NewRegistry()
	if _, err := r.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadFile on a missing file should fail")
	}
	if _, err := r.Load([]byte("keyline: [1, 2")); err == nil {
		t.Error("Load on malformed YAML should fail")
	}
	if _, err := r.Load([]byte("keyline:\n  \"\": x\n")); !errors.Is(err, ErrInvalidSource) {
		t.Errorf("Load with empty source error = %v, want ErrInvalidSource", err)
	}
}
