/*
PURPOSE:
  Defines the core data structures used throughout asmgraph.
  These models represent one simulation run decoded from its report file.

REQUIREMENTS:
  User-specified:
  - Topology, component selection, workload, energy and counters per run.
  - A section missing from the report leaves its fields absent, not zero.

  Implementation-discovered:
  - Optional fields are pointers; nil means the marker line never appeared.
  - Counters stay strings (commas removed) until a consumer needs numbers.

ARCHITECTURE INTEGRATION:
  - Filled by: internal/report
  - Read by: internal/store, internal/chart, internal/output
  - Shared across boundaries.

ERROR HANDLING:
  - None (pure data structs).

IMPLEMENTATION RULES:
  - Keep structs simple and public.
  - JSON tags use omitempty so absent sections stay absent on export.

USAGE:
  res := &model.Result{SourcePath: path}

SELF-HEALING INSTRUCTIONS:
  - If the simulator adds a counter, add the field here, then teach
    internal/report and internal/output about it.

RELATED FILES:
  - internal/report/parser.go
  - internal/output/csv.go

MAINTENANCE:
  - Update when adding new counters to capture.
*/

package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Result represents the outcome of a single simulation run.
type Result struct {
	SourcePath string `json:"source_path"`

	// Topology
	NumDataDisks     *string `json:"num_data_disks,omitempty"`
	NumCacheDisks    *string `json:"num_cache_disks,omitempty"`
	ReplicationLevel *string `json:"replication_level,omitempty"`
	NumMemories      *int    `json:"num_memories,omitempty"`
	MemorySizeBytes  *string `json:"memory_size_bytes,omitempty"`
	BlockSizeBytes   *string `json:"block_size_bytes,omitempty"`

	// Component selection, short tokens cut from class paths
	MemoryAssignor *string `json:"memory_assignor,omitempty"`
	MemoryManager  *string `json:"memory_manager,omitempty"`
	StorageManager *string `json:"storage_manager,omitempty"`
	BufferManager  *string `json:"buffer_manager,omitempty"`

	Workload *WorkloadParam `json:"workload,omitempty"`
	Energy   *Energy        `json:"energy,omitempty"`

	// Response times
	AvgResponseTime          *string `json:"avg_response_time,omitempty"`
	AvgDataDiskResponseTime  *string `json:"avg_data_disk_response_time,omitempty"`
	AvgCacheDiskResponseTime *string `json:"avg_cache_disk_response_time,omitempty"`

	// Requests
	TotalRequestCount *string `json:"total_request_count,omitempty"`
	ReadRequestCount  *string `json:"read_request_count,omitempty"`
	WriteRequestCount *string `json:"write_request_count,omitempty"`

	// Cache memory
	MemoryReadCount  *string `json:"memory_read_count,omitempty"`
	MemoryReadHit    *string `json:"memory_read_hit,omitempty"`
	MemoryWriteCount *string `json:"memory_write_count,omitempty"`
	MemoryWriteHit   *string `json:"memory_write_hit,omitempty"`

	// Data disks
	DataDiskAccessCount *string `json:"data_disk_access_count,omitempty"`
	DataDiskReadCount   *string `json:"data_disk_read_count,omitempty"`
	DataDiskWriteCount  *string `json:"data_disk_write_count,omitempty"`

	// Cache disks
	CacheDiskAccessCount *string `json:"cache_disk_access_count,omitempty"`
	CacheDiskReadCount   *string `json:"cache_disk_read_count,omitempty"`
	CacheDiskReadHit     *string `json:"cache_disk_read_hit,omitempty"`
	CacheDiskWriteCount  *string `json:"cache_disk_write_count,omitempty"`
	CacheDiskWriteHit    *string `json:"cache_disk_write_hit,omitempty"`

	// Power
	SpinUpCount         *string `json:"spinup_count,omitempty"`
	SpinDownCount       *string `json:"spindown_count,omitempty"`
	BufferOverflowCount *string `json:"buffer_overflow_count,omitempty"`
}

// WorkloadParam describes the workload a run replayed, decoded from the
// workload file name recorded in the report.
type WorkloadParam struct {
	Hour        int    `json:"hour"`
	ReadRatio   string `json:"read_ratio"`
	ArrivalRate string `json:"arrival_rate"`
	ZipfFactor  string `json:"zipf_factor"`
	DataSize    string `json:"data_size"`
}

// State is one of the disk power states tracked by the energy model.
type State string

const (
	Active   State = "active"
	Idle     State = "idle"
	Standby  State = "standby"
	SpinDown State = "spindown"
	SpinUp   State = "spinup"
)

// States lists the power states in report order.
var States = []State{Active, Idle, Standby, SpinDown, SpinUp}

// StateEnergy is the energy and time spent in one power state.
type StateEnergy struct {
	State              State           `json:"state"`
	EnergyJoules       decimal.Decimal `json:"energy_joules"`
	TotalTimeSeconds   decimal.Decimal `json:"total_time_seconds"`
	AverageTimeSeconds decimal.Decimal `json:"average_time_seconds"`
}

// Energy holds the five power-state entries of a run, in States order.
type Energy struct {
	States [5]StateEnergy `json:"states"`
}

// Values returns the per-state energy in States order.
func (e *Energy) Values() []float64 {
	out := make([]float64, len(e.States))
	for i, s := range e.States {
		out[i] = s.EnergyJoules.InexactFloat64()
	}
	return out
}

// TotalTimes returns the per-state cumulative time in States order.
func (e *Energy) TotalTimes() []float64 {
	out := make([]float64, len(e.States))
	for i, s := range e.States {
		out[i] = s.TotalTimeSeconds.InexactFloat64()
	}
	return out
}

// Total is the energy summed over all five states.
func (e *Energy) Total() float64 {
	sum := decimal.Zero
	for _, s := range e.States {
		sum = sum.Add(s.EnergyJoules)
	}
	return sum.InexactFloat64()
}

// bufferManagerNames maps parsed buffer-manager tokens to chart labels.
var bufferManagerNames = map[string]string{
	"normal":                     "Normal",
	"raposda":                    "RAPoSDA",
	"flushtoallspinningdisk":     "WithAllSpins",
	"spinupenergyefficientdisks": "SpinupEE",
}

// BufferManagerLabel returns the display name of the buffer manager.
func (r *Result) BufferManagerLabel() string {
	if r.BufferManager == nil {
		return "?"
	}
	if name, ok := bufferManagerNames[strings.ToLower(*r.BufferManager)]; ok {
		return name
	}
	return *r.BufferManager
}

// XLabel names the run on a chart axis by its storage and buffer managers.
func (r *Result) XLabel() string {
	storage := "?"
	if r.StorageManager != nil {
		storage = *r.StorageManager
	}
	return fmt.Sprintf("%s-%s", storage, r.BufferManagerLabel())
}

// Str returns the value behind an optional string field.
func Str(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	return *p, true
}
