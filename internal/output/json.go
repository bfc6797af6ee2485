/*
PURPOSE:
  Writes ingested simulation results to a JSON Lines file (NDJSON).
  Optimized for machine parsing and jq/vecq pipelines.

REQUIREMENTS:
  User-specified:
  - JSON output for easier parsing.

  Implementation-discovered:
  - JSON Lines is better for streaming than a single large array (append-friendly).
  - Absent sections are omitted rather than written as zero values.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (export)
  - Consumes: internal/model.Result

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/json.NewEncoder.
  - Thread-safe.

USAGE:
  w, err := output.NewJSONWriter("results.jsonl")
  w.Write(name, result)
  w.Close()

RELATED FILES:
  - internal/model/types.go
*/

package output

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/daryltucker/asmgraph/internal/model"
)

// jsonRecord is one line of the JSON Lines export.
type jsonRecord struct {
	Name        string        `json:"name"`
	Label       string        `json:"label"`
	EnergyTotal *float64      `json:"energy_total,omitempty"`
	Result      *model.Result `json:"result"`
}

// JSONWriter handles writing results to a JSON Lines file.
type JSONWriter struct {
	file    *os.File
	encoder *json.Encoder
	mu      sync.Mutex
}

// NewJSONWriter creates a new JSONWriter.
func NewJSONWriter(path string) (*JSONWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	return &JSONWriter{
		file:    f,
		encoder: json.NewEncoder(f),
	}, nil
}

// Write writes a single result as a JSON line.
func (jw *JSONWriter) Write(name string, r *model.Result) error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	rec := jsonRecord{Name: name, Label: r.XLabel(), Result: r}
	if r.Energy != nil {
		total := r.Energy.Total()
		rec.EnergyTotal = &total
	}
	return jw.encoder.Encode(rec)
}

// Close closes the underlying file.
func (jw *JSONWriter) Close() error {
	return jw.file.Close()
}
