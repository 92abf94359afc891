package engine

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/google/renameio/v2"

	"github.com/lepinkainen/config-forge/pkg/filesystem"
)

// emit writes one JSON file per output group. The output directory is
// cleared first so no stale files survive, each file is written atomically,
// and serialization is deterministic: groups by label, records by server,
// port, then fingerprint, map keys sorted by encoding/json.
func (e *Engine) emit(groups map[string][]groupedRecord, summary *Summary) error {
	if err := filesystem.ClearDirectory(e.opts.OutputDir); err != nil {
		return &InputError{Err: err}
	}

	labels := make([]string, 0, len(groups))
	for label := range groups {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		records := groups[label]
		sortGroup(records)

		payload := make([]map[string]any, len(records))
		for i, gr := range records {
			payload[i] = gr.Record
		}

		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return &WriteError{Path: label, Err: err}
		}
		data = append(data, '\n')

		path := filepath.Join(e.opts.OutputDir, label+".json")
		if err := renameio.WriteFile(path, data, 0o644); err != nil {
			return &WriteError{Path: path, Err: err}
		}

		summary.Groups++
		slog.Info("Wrote output group", "group", label, "records", len(records), "path", path)
	}

	return nil
}

// sortGroup orders records by their primary identity: server address, then
// port, then fingerprint as the final arbiter.
func sortGroup(records []groupedRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		si, sj := serverField(records[i].Record), serverField(records[j].Record)
		if si != sj {
			return si < sj
		}
		pi, pj := portField(records[i].Record), portField(records[j].Record)
		if pi != pj {
			return pi < pj
		}
		return records[i].Fingerprint < records[j].Fingerprint
	})
}

func serverField(r map[string]any) string {
	for _, key := range []string{"server", "host"} {
		if v, ok := r[key].(string); ok {
			return v
		}
	}
	return ""
}

func portField(r map[string]any) int64 {
	for _, key := range []string{"server_port", "port"} {
		switch v := r[key].(type) {
		case int64:
			return v
		case float64:
			return int64(v)
		case string:
			var n int64
			if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
				return n
			}
		}
	}
	return 0
}
