/*
PURPOSE:
  Decodes the run parameters a simulator encodes into a report file name.
  Shared by the condition filter and by result labelling.

REQUIREMENTS:
  User-specified:
  - Whole-name match only. Anything else is "not ours", never an error.
  - Captures stay strings so conditions compare with plain equality.

  Implementation-discovered:
  - The block size field is part of the grammar but is not exposed.

ARCHITECTURE INTEGRATION:
  - Used by: internal/condition, internal/cli (list)

ERROR HANDLING:
  - None. A non-matching name yields ok == false.

USAGE:
  p, ok := params.Decode("DD4CD2NM8MS1024R2SMn...ds10MB")

RELATED FILES:
  - internal/condition/condition.go
*/

package params

import (
	"path/filepath"
	"regexp"
	"sort"
)

// Canonical parameter names understood by the condition filter.
const (
	NumDataDisks      = "num_dd"
	NumCacheDisks     = "num_cd"
	NumMemories       = "num_mem"
	MemorySize        = "mem_size"
	ReplicaLevel      = "rep_level"
	StorageManager    = "storage_manager"
	MemoryAssignor    = "mem_assignor"
	MemoryManager     = "memory_manager"
	BufferManager     = "buffer_manager"
	WorkloadHour      = "wl_hour"
	WorkloadReadRatio = "wl_read_ratio"
	WorkloadLambda    = "wl_lambda"
	WorkloadZipf      = "wl_zipf_factor"
	WorkloadDataSize  = "wl_data_size"
)

var namePattern = regexp.MustCompile(`^DD(?P<num_dd>\d+)` +
	`CD(?P<num_cd>\d+)` +
	`NM(?P<num_mem>\d+)` +
	`MS(?P<mem_size>\d+)` +
	`R(?P<rep_level>\d+)` +
	`SM(?P<storage_manager>[a-zA-Z])` +
	`CMA(?P<mem_assignor>[a-zA-Z]+)` +
	`CMF(?P<memory_manager>[a-zA-Z]+)` +
	`BS\d+` +
	`BM(?P<buffer_manager>[a-zA-Z]+)` +
	`_Wworkload\.(?P<wl_hour>\d+)h` +
	`\.rr(?P<wl_read_ratio>\d)` +
	`\.lam(?P<wl_lambda>\d+)` +
	`\.the(?P<wl_zipf_factor>\d+)` +
	`\.ds(?P<wl_data_size>\d+)[KMGT]B$`)

// Params maps canonical parameter names to the raw captures of one file name.
type Params map[string]string

// Names returns the canonical vocabulary in a stable order.
func Names() []string {
	var names []string
	for _, n := range namePattern.SubexpNames() {
		if n != "" {
			names = append(names, n)
		}
	}
	return names
}

// IsName reports whether name belongs to the canonical vocabulary.
func IsName(name string) bool {
	return name != "" && namePattern.SubexpIndex(name) > 0
}

// Decode matches the base name of fileName against the run-name grammar.
func Decode(fileName string) (Params, bool) {
	match := namePattern.FindStringSubmatch(filepath.Base(fileName))
	if match == nil {
		return nil, false
	}

	p := make(Params, len(match)-1)
	for i, name := range namePattern.SubexpNames() {
		if i == 0 || name == "" {
			continue
		}
		p[name] = match[i]
	}
	return p, true
}

// Keys returns the decoded parameter names sorted alphabetically.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
