// Package store persists analysis reports on disk, one directory per
// run with a small metadata file next to the full report payload.
package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/vivekjain488/Butterfly/internal/chaos"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// ReportMetadata is the listing-level view of a saved run. The seed is
// recorded only as a digest so report directories can be shared without
// leaking key material.
type ReportMetadata struct {
	ID         string             `json:"id"`
	Kind       string             `json:"kind"`
	Timestamp  time.Time          `json:"timestamp"`
	SeedDigest string             `json:"seed_digest"`
	Params     chaos.Params       `json:"params"`
	Summary    map[string]float64 `json:"summary"`
}

// Save writes metadata.json and report.json under a fresh run directory
// and returns the run id.
func (s *Store) Save(kind, seed string, params chaos.Params, summary map[string]float64, report any) (string, error) {
	runID := fmt.Sprintf("%s_%d", kind, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := ReportMetadata{
		ID:         runID,
		Kind:       kind,
		Timestamp:  time.Now(),
		SeedDigest: seedDigest(seed),
		Params:     params,
		Summary:    summary,
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, "report.json"), report); err != nil {
		return "", err
	}
	return runID, nil
}

// List scans the base directory, skipping anything that is not a
// readable run. A missing base directory is an empty listing, not an
// error.
func (s *Store) List() ([]ReportMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []ReportMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]ReportMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta ReportMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*ReportMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta ReportMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadReport unmarshals the full report payload into v.
func (s *Store) LoadReport(runID string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "report.json"))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func seedDigest(seed string) string {
	sum := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:8])
}

func writeJSON(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
