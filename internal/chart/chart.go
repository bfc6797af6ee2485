/*
PURPOSE:
  Turns the ingested results into one table per requested chart kind.

REQUIREMENTS:
  User-specified:
  - Chart kinds: energy, response, overflow, spin, hit, statetime.
  - A chart that needs a field some run lacks fails on its own; the
    other charts still render.

  Implementation-discovered:
  - Rows are grouped by the x-axis label (storage and buffer manager),
    then by run name, so repeated runs sit next to each other.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (plot)
  - Consumes: internal/model.Result

ERROR HANDLING:
  - ErrUnknownKind for names outside the enumeration.
  - ErrMissingField, wrapped with run and field, for absent data.

USAGE:
  kinds, err := chart.ParseKinds([]string{"energy", "spin"})
  err = chart.Render(os.Stdout, chart.Energy, results)
*/

package chart

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"

	"github.com/daryltucker/asmgraph/internal/model"
)

var (
	// ErrUnknownKind is returned for a chart name outside Kinds.
	ErrUnknownKind = errors.New("unknown chart kind")
	// ErrMissingField is returned when a run lacks data a chart needs.
	ErrMissingField = errors.New("missing field")
)

// Kind identifies one chart.
type Kind string

const (
	Energy    Kind = "energy"
	Response  Kind = "response"
	Overflow  Kind = "overflow"
	Spin      Kind = "spin"
	Hit       Kind = "hit"
	StateTime Kind = "statetime"
)

// Kinds lists every chart in presentation order.
var Kinds = []Kind{Energy, Response, Overflow, Spin, Hit, StateTime}

// Table is the data behind one chart.
type Table struct {
	Title  string
	Header []string
	Rows   [][]string
}

// Renderer builds the table of one chart kind.
type Renderer func(results []*model.Result) (*Table, error)

var renderers = map[Kind]Renderer{
	Energy:    energyChart,
	Response:  responseChart,
	Overflow:  overflowChart,
	Spin:      spinChart,
	Hit:       hitChart,
	StateTime: stateTimeChart,
}

// ParseKind maps a chart name to its Kind.
func ParseKind(name string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := renderers[k]; !ok {
		return "", errors.Wrapf(ErrUnknownKind, "%q (want one of %s)", name, kindList())
	}
	return k, nil
}

// ParseKinds maps chart names to Kinds. "all" selects every kind; an
// empty list selects every kind as well.
func ParseKinds(names []string) ([]Kind, error) {
	if len(names) == 0 {
		return Kinds, nil
	}

	var kinds []Kind
	seen := make(map[Kind]bool)
	for _, n := range names {
		if strings.EqualFold(strings.TrimSpace(n), "all") {
			return Kinds, nil
		}
		k, err := ParseKind(n)
		if err != nil {
			return nil, err
		}
		if !seen[k] {
			seen[k] = true
			kinds = append(kinds, k)
		}
	}
	return kinds, nil
}

func kindList() string {
	names := make([]string, len(Kinds))
	for i, k := range Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

// Build produces the table of kind from results.
func Build(kind Kind, results []*model.Result) (*Table, error) {
	render, ok := renderers[kind]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownKind, "%q", kind)
	}
	return render(sortByLabel(results))
}

// Render builds the table of kind and draws it to w.
func Render(w io.Writer, kind Kind, results []*model.Result) error {
	t, err := Build(kind, results)
	if err != nil {
		return err
	}
	return Draw(w, t)
}

// Draw writes t to w as a text table.
func Draw(w io.Writer, t *Table) error {
	if _, err := fmt.Fprintf(w, "%s\n", t.Title); err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader(t.Header)
	table.AppendBulk(t.Rows)
	table.Render()
	return nil
}

func sortByLabel(results []*model.Result) []*model.Result {
	sorted := make([]*model.Result, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		li, lj := sorted[i].XLabel(), sorted[j].XLabel()
		if li != lj {
			return li < lj
		}
		return runName(sorted[i]) < runName(sorted[j])
	})
	return sorted
}

func runName(r *model.Result) string {
	return filepath.Base(r.SourcePath)
}

func missing(r *model.Result, field string) error {
	return errors.Wrapf(ErrMissingField, "%s: %s", runName(r), field)
}

// fieldValues returns the values behind the named optional fields of r, or
// ErrMissingField for the first absent one.
func fieldValues(r *model.Result, fields ...namedField) ([]string, error) {
	out := make([]string, len(fields))
	for i, f := range fields {
		v, ok := model.Str(f.value)
		if !ok {
			return nil, missing(r, f.name)
		}
		out[i] = v
	}
	return out, nil
}

type namedField struct {
	name  string
	value *string
}
