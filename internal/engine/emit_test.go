package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lepinkainen/config-forge/internal/proxy"
	"github.com/lepinkainen/config-forge/pkg/testutil"
)

func TestEmit_GoldenOutput(t *testing.T) {
	outputDir := t.TempDir()
	eng := New(Options{OutputDir: outputDir})

	// Deliberately out of order: emit must sort by server address.
	groups := map[string][]groupedRecord{
		"Canada": {
			{
				Record:      proxy.Record{"host": "5.6.7.8", "port": int64(80)},
				Fingerprint: "bbbb",
			},
			{
				Record:      proxy.Record{"host": "1.2.3.4", "port": int64(443)},
				Fingerprint: "aaaa",
			},
		},
	}

	summary := &Summary{}
	if err := eng.emit(groups, summary); err != nil {
		t.Fatalf("emit() error = %v", err)
	}
	if summary.Groups != 1 {
		t.Errorf("summary.Groups = %d, want 1", summary.Groups)
	}

	data, err := os.ReadFile(filepath.Join(outputDir, "Canada.json"))
	if err != nil {
		t.Fatal(err)
	}

	testutil.CompareGoldenBytes(t, filepath.Join("testdata", "canada.golden.json"), data)
}

func TestEmit_SortsByServerPortFingerprint(t *testing.T) {
	records := []groupedRecord{
		{Record: proxy.Record{"server": "2.2.2.2", "server_port": int64(80)}, Fingerprint: "x"},
		{Record: proxy.Record{"server": "1.1.1.1", "server_port": int64(443)}, Fingerprint: "b"},
		{Record: proxy.Record{"server": "1.1.1.1", "server_port": int64(443)}, Fingerprint: "a"},
		{Record: proxy.Record{"server": "1.1.1.1", "server_port": int64(80)}, Fingerprint: "c"},
	}

	sortGroup(records)

	wantOrder := []string{"c", "a", "b", "x"}
	for i, want := range wantOrder {
		if records[i].Fingerprint != want {
			t.Errorf("position %d: fingerprint = %s, want %s", i, records[i].Fingerprint, want)
		}
	}
}

func TestEmit_EmptyGroupsWriteNothing(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "out")
	eng := New(Options{OutputDir: outputDir})

	if err := eng.emit(map[string][]groupedRecord{}, &Summary{}); err != nil {
		t.Fatalf("emit() error = %v", err)
	}

	entries, err := os.ReadDir(outputDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty output directory, found %d entries", len(entries))
	}
}

func TestEmit_UnwritableOutputDirIsFatal(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocked")
	// A regular file where the output directory should go.
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	eng := New(Options{OutputDir: blocker})

	err := eng.emit(map[string][]groupedRecord{}, &Summary{})
	if err == nil {
		t.Fatal("emit() expected error for unusable output directory")
	}
}
