package store

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Snapshot is the visible text of one schedule page fetch.
type Snapshot struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	StopID    string    `json:"stop_id"`
	Route     string    `json:"route"`
	Direction string    `json:"direction"`
	FetchedAt time.Time `json:"fetched_at"`
	Text      string    `json:"text"`
}

// Checksum returns the key a page text is stored under.
func Checksum(text string) string {
	hash := sha256.Sum256([]byte(text))
	return hex.EncodeToString(hash[:])
}

// SaveSnapshot writes the snapshot as JSON plus a plain .txt copy of the
// page text. The key is filled in from the text when empty.
func SaveSnapshot(s Store, snap *Snapshot) error {
	if snap.Key == "" {
		snap.Key = Checksum(snap.Text)
	}
	if err := s.SetJSON(snap.Key, snap); err != nil {
		return fmt.Errorf("storing snapshot %s: %w", snap.Key, err)
	}
	if err := s.SetWithExtension(snap.Key, ".txt", []byte(snap.Text)); err != nil {
		return fmt.Errorf("storing snapshot text %s: %w", snap.Key, err)
	}
	return nil
}

// LoadSnapshot reads a snapshot saved by SaveSnapshot.
func LoadSnapshot(s Store, key string) (*Snapshot, error) {
	var snap Snapshot
	if !s.GetJSON(key, &snap) {
		return nil, fmt.Errorf("snapshot %s not found", key)
	}
	return &snap, nil
}
