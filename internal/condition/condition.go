/*
PURPOSE:
  Holds the user's run-selection constraints and tests file names
  against them.

REQUIREMENTS:
  User-specified:
  - Exact, case-sensitive match on every supplied key (AND only).
  - Names outside the simulator's naming grammar never pass.

  Implementation-discovered:
  - The short command-line keys (NM, SM, WL=h:..) need translating to the
    canonical parameter names before filtering.

ARCHITECTURE INTEGRATION:
  - Called by: internal/store (per file), internal/cli (parse at startup)
  - Uses: internal/params

ERROR HANDLING:
  - Parse returns ErrMalformedCondition; callers treat it as fatal.
  - Passes never errors.

USAGE:
  set, err := condition.Parse("SM=n,WL=h:24_rr:5")
  ok := set.Passes(fileName)
*/

package condition

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/daryltucker/asmgraph/internal/params"
)

// ErrMalformedCondition is returned when a condition expression cannot be
// turned into key/value pairs.
var ErrMalformedCondition = errors.New("malformed condition expression")

// workloadKey introduces the workload sub-expression, e.g. WL=h:24_rr:5.
const workloadKey = "WL"

var shortKeys = map[string]string{
	"DD":  params.NumDataDisks,
	"CD":  params.NumCacheDisks,
	"NM":  params.NumMemories,
	"MS":  params.MemorySize,
	"R":   params.ReplicaLevel,
	"SM":  params.StorageManager,
	"CMA": params.MemoryAssignor,
	"CMF": params.MemoryManager,
	"BM":  params.BufferManager,
}

var workloadKeys = map[string]string{
	"h":   params.WorkloadHour,
	"rr":  params.WorkloadReadRatio,
	"lam": params.WorkloadLambda,
	"the": params.WorkloadZipf,
	"ds":  params.WorkloadDataSize,
}

// Set maps canonical parameter names to the value a run must carry.
// A missing key leaves that parameter unconstrained.
type Set map[string]string

// New returns a Set holding a copy of m.
func New(m map[string]string) Set {
	s := make(Set, len(m))
	for k, v := range m {
		s[k] = v
	}
	return s
}

// Parse builds a Set from a comma separated KEY=VALUE expression.
// An empty expression yields an empty Set.
func Parse(expr string) (Set, error) {
	set := Set{}
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return set, nil
	}

	for _, kv := range strings.Split(expr, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(kv), "=")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if !ok || key == "" || value == "" || strings.Contains(value, "=") {
			return nil, errors.Wrapf(ErrMalformedCondition, "pair %q is not KEY=VALUE", kv)
		}

		if key == workloadKey {
			if err := set.addWorkload(value); err != nil {
				return nil, err
			}
			continue
		}

		name, err := canonical(key)
		if err != nil {
			return nil, err
		}
		set[name] = value
	}
	return set, nil
}

func (s Set) addWorkload(value string) error {
	for _, sub := range strings.Split(value, "_") {
		k, v, ok := strings.Cut(sub, ":")
		if !ok || k == "" || v == "" || strings.Contains(v, ":") {
			return errors.Wrapf(ErrMalformedCondition, "workload pair %q is not KEY:VALUE", sub)
		}
		name, known := workloadKeys[k]
		if !known {
			return errors.Wrapf(ErrMalformedCondition, "unknown workload key %q", k)
		}
		s[name] = v
	}
	return nil
}

func canonical(key string) (string, error) {
	if name, ok := shortKeys[key]; ok {
		return name, nil
	}
	if params.IsName(key) {
		return key, nil
	}
	return "", errors.Wrapf(ErrMalformedCondition, "unknown key %q", key)
}

// Passes reports whether the run encoded in fileName satisfies every
// constraint in s.
func (s Set) Passes(fileName string) bool {
	decoded, ok := params.Decode(fileName)
	if !ok {
		return false
	}
	return s.Matches(decoded)
}

// Matches reports whether already decoded parameters satisfy s.
func (s Set) Matches(decoded params.Params) bool {
	for k, want := range s {
		got, ok := decoded[k]
		if !ok || got != want {
			return false
		}
	}
	return true
}

// String renders s as canonical KEY=VALUE pairs in key order.
func (s Set) String() string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + s[k]
	}
	return strings.Join(pairs, ",")
}
