/*
PURPOSE:
  Writes ingested simulation results to a CSV file.
  One row per run, one column per decoded field.

REQUIREMENTS:
  User-specified:
  - Output to CSV for spreadsheet work.
  - An absent field is an empty cell, never a zero.

  Implementation-discovered:
  - Column order must be stable across runs so files can be diffed.
  - Energy is flattened into one column per power state plus the total.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (export)
  - Consumes: internal/model.Result

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/csv.
  - Flush() after every write (critical for crash resilience).
  - Header and record are built from the same column table.

USAGE:
  w, err := output.NewCSVWriter("results.csv")
  w.Write(name, result)
  w.Close()

SELF-HEALING INSTRUCTIONS:
  - If a Result field is added, add a column to csvColumns.

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Update csvColumns when Result struct changes.
*/

package output

import (
	"encoding/csv"
	"os"
	"strconv"
	"sync"

	"github.com/daryltucker/asmgraph/internal/model"
)

type csvColumn struct {
	header string
	value  func(r *model.Result) string
}

func opt(get func(r *model.Result) *string) func(r *model.Result) string {
	return func(r *model.Result) string {
		v, _ := model.Str(get(r))
		return v
	}
}

func workload(get func(w *model.WorkloadParam) string) func(r *model.Result) string {
	return func(r *model.Result) string {
		if r.Workload == nil {
			return ""
		}
		return get(r.Workload)
	}
}

func stateEnergy(i int) func(r *model.Result) string {
	return func(r *model.Result) string {
		if r.Energy == nil {
			return ""
		}
		return r.Energy.States[i].EnergyJoules.String()
	}
}

func stateTime(i int) func(r *model.Result) string {
	return func(r *model.Result) string {
		if r.Energy == nil {
			return ""
		}
		return r.Energy.States[i].TotalTimeSeconds.String()
	}
}

var csvColumns = func() []csvColumn {
	cols := []csvColumn{
		{"source_path", func(r *model.Result) string { return r.SourcePath }},
		{"label", func(r *model.Result) string { return r.XLabel() }},
		{"num_data_disks", opt(func(r *model.Result) *string { return r.NumDataDisks })},
		{"num_cache_disks", opt(func(r *model.Result) *string { return r.NumCacheDisks })},
		{"replication_level", opt(func(r *model.Result) *string { return r.ReplicationLevel })},
		{"num_memories", func(r *model.Result) string {
			if r.NumMemories == nil {
				return ""
			}
			return strconv.Itoa(*r.NumMemories)
		}},
		{"memory_size_bytes", opt(func(r *model.Result) *string { return r.MemorySizeBytes })},
		{"block_size_bytes", opt(func(r *model.Result) *string { return r.BlockSizeBytes })},
		{"memory_assignor", opt(func(r *model.Result) *string { return r.MemoryAssignor })},
		{"memory_manager", opt(func(r *model.Result) *string { return r.MemoryManager })},
		{"storage_manager", opt(func(r *model.Result) *string { return r.StorageManager })},
		{"buffer_manager", opt(func(r *model.Result) *string { return r.BufferManager })},
		{"wl_hour", workload(func(w *model.WorkloadParam) string { return strconv.Itoa(w.Hour) })},
		{"wl_read_ratio", workload(func(w *model.WorkloadParam) string { return w.ReadRatio })},
		{"wl_lambda", workload(func(w *model.WorkloadParam) string { return w.ArrivalRate })},
		{"wl_zipf_factor", workload(func(w *model.WorkloadParam) string { return w.ZipfFactor })},
		{"wl_data_size", workload(func(w *model.WorkloadParam) string { return w.DataSize })},
		{"avg_response_time", opt(func(r *model.Result) *string { return r.AvgResponseTime })},
		{"avg_data_disk_response_time", opt(func(r *model.Result) *string { return r.AvgDataDiskResponseTime })},
		{"avg_cache_disk_response_time", opt(func(r *model.Result) *string { return r.AvgCacheDiskResponseTime })},
		{"total_request_count", opt(func(r *model.Result) *string { return r.TotalRequestCount })},
		{"read_request_count", opt(func(r *model.Result) *string { return r.ReadRequestCount })},
		{"write_request_count", opt(func(r *model.Result) *string { return r.WriteRequestCount })},
		{"memory_read_count", opt(func(r *model.Result) *string { return r.MemoryReadCount })},
		{"memory_read_hit", opt(func(r *model.Result) *string { return r.MemoryReadHit })},
		{"memory_write_count", opt(func(r *model.Result) *string { return r.MemoryWriteCount })},
		{"memory_write_hit", opt(func(r *model.Result) *string { return r.MemoryWriteHit })},
		{"data_disk_access_count", opt(func(r *model.Result) *string { return r.DataDiskAccessCount })},
		{"data_disk_read_count", opt(func(r *model.Result) *string { return r.DataDiskReadCount })},
		{"data_disk_write_count", opt(func(r *model.Result) *string { return r.DataDiskWriteCount })},
		{"cache_disk_access_count", opt(func(r *model.Result) *string { return r.CacheDiskAccessCount })},
		{"cache_disk_read_count", opt(func(r *model.Result) *string { return r.CacheDiskReadCount })},
		{"cache_disk_read_hit", opt(func(r *model.Result) *string { return r.CacheDiskReadHit })},
		{"cache_disk_write_count", opt(func(r *model.Result) *string { return r.CacheDiskWriteCount })},
		{"cache_disk_write_hit", opt(func(r *model.Result) *string { return r.CacheDiskWriteHit })},
		{"spinup_count", opt(func(r *model.Result) *string { return r.SpinUpCount })},
		{"spindown_count", opt(func(r *model.Result) *string { return r.SpinDownCount })},
		{"buffer_overflow_count", opt(func(r *model.Result) *string { return r.BufferOverflowCount })},
	}
	for i, s := range model.States {
		cols = append(cols, csvColumn{"energy_" + string(s), stateEnergy(i)})
	}
	for i, s := range model.States {
		cols = append(cols, csvColumn{"time_" + string(s), stateTime(i)})
	}
	cols = append(cols, csvColumn{"energy_total", func(r *model.Result) string {
		if r.Energy == nil {
			return ""
		}
		return strconv.FormatFloat(r.Energy.Total(), 'f', -1, 64)
	}})
	return cols
}()

// CSVWriter handles writing results to a CSV file.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
	mu     sync.Mutex
}

// NewCSVWriter creates a new CSVWriter.
// It overwrites the file if it exists.
func NewCSVWriter(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)

	header := make([]string, 0, len(csvColumns)+1)
	header = append(header, "name")
	for _, c := range csvColumns {
		header = append(header, c.header)
	}
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()

	return &CSVWriter{
		file:   f,
		writer: w,
	}, nil
}

// Write writes a single result to the CSV file.
// It is thread-safe.
func (cw *CSVWriter) Write(name string, r *model.Result) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	record := make([]string, 0, len(csvColumns)+1)
	record = append(record, name)
	for _, c := range csvColumns {
		record = append(record, c.value(r))
	}

	if err := cw.writer.Write(record); err != nil {
		return err
	}
	cw.writer.Flush()
	return cw.writer.Error()
}

// Close closes the underlying file.
func (cw *CSVWriter) Close() error {
	cw.writer.Flush()
	return cw.file.Close()
}
