package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLocalStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "store")
	s, err := NewLocal(dir)
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}

	if _, ok := s.Get("missing"); ok {
		t.Error("Get on empty store should miss")
	}

	if err := s.Set("k", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, ok := s.Get("k")
	if !ok || string(data) != `{"a":1}` {
		t.Errorf("Get = %q, %v", data, ok)
	}

	var v struct{ A int }
	if !s.GetJSON("k", &v) || v.A != 1 {
		t.Errorf("GetJSON = %+v", v)
	}

	if err := s.Set("broken", []byte("not json")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if s.GetJSON("broken", &v) {
		t.Error("GetJSON should fail on invalid JSON")
	}
}

func TestLocalStoreSanitizesKeys(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocal(dir)
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}

	if err := s.SetWithExtension("../escape", ".txt", []byte("x")); err != nil {
		t.Fatalf("SetWithExtension: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "___escape.txt")); err != nil {
		t.Errorf("expected sanitized file inside store: %v", err)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocal(dir)
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}

	snap := &Snapshot{
		URL:       "https://example.com/Schedule?stopCode=1235",
		StopID:    "1235",
		Route:     "18",
		Direction: "EAST",
		FetchedAt: time.Date(2025, 10, 21, 22, 0, 0, 0, time.UTC),
		Text:      "5:45 PM\n6:15 PM\n",
	}
	if err := SaveSnapshot(s, snap); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if snap.Key != Checksum(snap.Text) {
		t.Errorf("Key = %q, want checksum of text", snap.Key)
	}

	text, err := os.ReadFile(filepath.Join(dir, snap.Key+".txt"))
	if err != nil || string(text) != snap.Text {
		t.Errorf("text copy = %q, %v", text, err)
	}

	loaded, err := LoadSnapshot(s, snap.Key)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if loaded.Text != snap.Text || loaded.StopID != "1235" || !loaded.FetchedAt.Equal(snap.FetchedAt) {
		t.Errorf("loaded = %+v", loaded)
	}

	if _, err := LoadSnapshot(s, "nope"); err == nil {
		t.Error("LoadSnapshot should fail for unknown key")
	}
}

func TestChecksumStable(t *testing.T) {
	if Checksum("a") != Checksum("a") {
		t.Error("checksum not deterministic")
	}
	if Checksum("a") == Checksum("b") {
		t.Error("checksum collision on different input")
	}
	if len(Checksum("")) != 64 {
		t.Errorf("checksum length = %d, want 64", len(Checksum("")))
	}
}

func TestGCSContentType(t *testing.T) {
	if contentType(".txt") != "text/plain; charset=utf-8" {
		t.Errorf("unexpected .txt content type %q", contentType(".txt"))
	}
	if objectName("a/b", ".json") != "snapshots/a_b.json" {
		t.Errorf("unexpected object name %q", objectName("a/b", ".json"))
	}
}

func TestOpenLocal(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snapshots")
	s, closeStore, err := Open(context.Background(), "", "", dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer closeStore()

	if _, ok := s.(*LocalStore); !ok {
		t.Errorf("Open without bucket returned %T, want *LocalStore", s)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("store directory not created: %v", err)
	}
}
