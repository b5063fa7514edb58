// Package history keeps an append-only journal of past run reports. It is
// an audit log only: reconciliation never reads it, the server stays the
// single source of truth.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/mmcdole/jellyctl/internal/domain"
)

var bucketRuns = []byte("runs")

// Entry is one journaled run
type Entry struct {
	Started time.Time                `json:"started"`
	DryRun  bool                     `json:"dry_run"`
	Failed  bool                     `json:"failed"`
	Results []domain.OperationResult `json:"results"`
}

// Journal persists run reports in a BoltDB file under the user data dir
type Journal struct {
	db *bolt.DB
}

// DefaultPath returns the journal location for the current OS
func DefaultPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "jellyctl", "history.db")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "jellyctl", "history.db")
	}
}

// Open opens (creating if needed) the journal at path
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRuns)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Journal{db: db}, nil
}

func (j *Journal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}

// Append records a completed run. Keys are RFC3339Nano timestamps, so
// bolt's key order is chronological.
func (j *Journal) Append(report *domain.RunReport) error {
	entry := Entry{
		Started: report.Started,
		DryRun:  report.DryRun,
		Failed:  report.Failed(),
		Results: report.Results,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal run entry: %w", err)
	}

	return j.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketRuns).Put([]byte(entry.Started.Format(time.RFC3339Nano)), data)
	})
}

// Recent returns up to n journaled runs, newest first
func (j *Journal) Recent(n int) ([]Entry, error) {
	var entries []Entry

	err := j.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketRuns).Cursor()
		for k, v := c.Last(); k != nil && len(entries) < n; k, v = c.Prev() {
			var entry Entry
			if err := json.Unmarshal(v, &entry); err != nil {
				continue // skip unreadable entries
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}
