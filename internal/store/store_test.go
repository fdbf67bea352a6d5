package store

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/vivekjain488/Butterfly/internal/chaos"
	"github.com/vivekjain488/Butterfly/internal/metrics"
)

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	report := metrics.EntropyReport{
		Entropy:    7.995,
		Target:     8.0,
		Quality:    "Excellent",
		SampleSize: 5000,
	}
	summary := map[string]float64{"entropy": report.Entropy}

	runID, err := st.Save("entropy", "test-seed", chaos.DefaultParams(), summary, report)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Kind != "entropy" {
		t.Errorf("expected kind entropy, got %q", meta.Kind)
	}
	if meta.Summary["entropy"] != 7.995 {
		t.Errorf("expected summary entropy 7.995, got %f", meta.Summary["entropy"])
	}
	if meta.SeedDigest == "" || meta.SeedDigest == "test-seed" {
		t.Errorf("seed must be stored as a digest, got %q", meta.SeedDigest)
	}
	if meta.Params.LogisticR != 3.99 {
		t.Errorf("expected stored params, got r=%f", meta.Params.LogisticR)
	}

	var loaded metrics.EntropyReport
	if err := st.LoadReport(runID, &loaded); err != nil {
		t.Fatalf("load report failed: %v", err)
	}
	if loaded.Entropy != report.Entropy || loaded.Quality != report.Quality {
		t.Errorf("report round-trip mismatch: %+v", loaded)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected empty listing, got %d", len(runs))
	}

	if _, err := st.Save("entropy", "s1", chaos.DefaultParams(), nil, metrics.EntropyReport{}); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Save("avalanche", "s2", chaos.DefaultParams(), nil, metrics.AvalancheReport{}); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if !runs[0].Timestamp.Before(runs[1].Timestamp) && !runs[0].Timestamp.Equal(runs[1].Timestamp) {
		t.Error("listing should be ordered oldest first")
	}
}

func TestStoreListSkipsJunk(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	// A stray file and a directory without metadata must not break List.
	if err := os.WriteFile(filepath.Join(dir, "stray.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "broken_run"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "bad_meta"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bad_meta", "metadata.json"), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := st.Save("statistical", "s", chaos.DefaultParams(), nil, struct{}{}); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 valid run, got %d", len(runs))
	}
}

func TestStoreListMissingBaseDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "never-created"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected empty listing, got %d", len(runs))
	}
}

func TestWriteAttractorCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attractor.csv")
	points := [][3]float64{{1, 2, 3}, {4.5, -6.25, 7}}

	if err := WriteAttractorCSV(path, points); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}
	if records[0][0] != "x" || records[0][2] != "z" {
		t.Errorf("unexpected header %v", records[0])
	}
	if records[2][1] != "-6.250000" {
		t.Errorf("unexpected value %q", records[2][1])
	}
}
