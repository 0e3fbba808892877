package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "ledger.db")
	s, err := Open(path, LedgerKey, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestLoadAbsent(t *testing.T) {
	s, _ := openTemp(t)
	data, ok, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok || data != nil {
		t.Fatalf("Load on empty store = %q, %v, want nothing", data, ok)
	}
}

func TestSaveLoad(t *testing.T) {
	s, _ := openTemp(t)

	if err := s.Save([]byte(`{"v":1}`)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save([]byte(`{"v":2}`)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, ok, err := s.Load()
	if err != nil || !ok {
		t.Fatalf("Load = %v, %v", ok, err)
	}
	if string(data) != `{"v":2}` {
		t.Fatalf("Load = %s, want the last write", data)
	}

	if _, ok, _ := s.Get("otherKey"); ok {
		t.Fatal("Get(otherKey) found a value")
	}
}

func TestReopenKeepsData(t *testing.T) {
	s, path := openTemp(t)
	if err := s.Save([]byte("persisted")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	_ = s.Close()

	again, err := Open(path, LedgerKey, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer again.Close()

	data, ok, err := again.Load()
	if err != nil || !ok || string(data) != "persisted" {
		t.Fatalf("Load after reopen = %q, %v, %v", data, ok, err)
	}
}

func TestUpdatedAt(t *testing.T) {
	s, _ := openTemp(t)

	if _, ok, err := s.UpdatedAt(LedgerKey); ok || err != nil {
		t.Fatalf("UpdatedAt before write = %v, %v", ok, err)
	}

	before := time.Now().Add(-time.Second)
	if err := s.Save([]byte("x")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	ts, ok, err := s.UpdatedAt(LedgerKey)
	if err != nil || !ok {
		t.Fatalf("UpdatedAt = %v, %v", ok, err)
	}
	if ts.Before(before.Truncate(time.Second)) {
		t.Fatalf("UpdatedAt = %v, want after %v", ts, before)
	}
}

func TestMemory(t *testing.T) {
	m := &Memory{}
	if _, ok, _ := m.Load(); ok {
		t.Fatal("empty Memory reported data")
	}

	buf := []byte("abc")
	if err := m.Save(buf); err != nil {
		t.Fatalf("Save: %v", err)
	}
	buf[0] = 'z'
	data, ok, _ := m.Load()
	if !ok || string(data) != "abc" {
		t.Fatalf("Load = %q, want abc (copy)", data)
	}

	m.SaveErr = errors.New("disk full")
	if err := m.Save([]byte("def")); err == nil {
		t.Fatal("Save ignored SaveErr")
	}
	if data, _, _ := m.Load(); string(data) != "abc" || m.Saves != 1 {
		t.Fatalf("failed Save stored data: %q, saves=%d", data, m.Saves)
	}
}

func TestOpenReportsPathAndVersion(t *testing.T) {
	s, path := openTemp(t)
	if s.Path() != path || s.Key() != LedgerKey {
		t.Fatalf("Path/Key = %q/%q, want %q/%q", s.Path(), s.Key(), path, LedgerKey)
	}
	if s.Version() != 1 {
		t.Fatalf("Version = %d, want 1", s.Version())
	}
}
