package chart

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/daryltucker/asmgraph/internal/model"
)

func stateHeader(first ...string) []string {
	h := append([]string{}, first...)
	for _, s := range model.States {
		h = append(h, string(s))
	}
	return h
}

func energyChart(results []*model.Result) (*Table, error) {
	t := &Table{
		Title:  "Energy consumption per power state [J]",
		Header: append(stateHeader("label", "run"), "total"),
	}
	for _, r := range results {
		if r.Energy == nil {
			return nil, missing(r, "energy")
		}
		row := []string{r.XLabel(), runName(r)}
		for _, s := range r.Energy.States {
			row = append(row, s.EnergyJoules.String())
		}
		row = append(row, strconv.FormatFloat(r.Energy.Total(), 'f', -1, 64))
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func stateTimeChart(results []*model.Result) (*Table, error) {
	t := &Table{
		Title:  "Time spent per power state [s]",
		Header: stateHeader("label", "run"),
	}
	for _, r := range results {
		if r.Energy == nil {
			return nil, missing(r, "energy")
		}
		row := []string{r.XLabel(), runName(r)}
		for _, s := range r.Energy.States {
			row = append(row, s.TotalTimeSeconds.String())
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func responseChart(results []*model.Result) (*Table, error) {
	t := &Table{
		Title:  "Average response time",
		Header: []string{"label", "run", "overall", "data disk", "cache disk"},
	}
	for _, r := range results {
		v, err := fieldValues(r,
			namedField{"avg response time", r.AvgResponseTime},
			namedField{"avg data disk response time", r.AvgDataDiskResponseTime},
			namedField{"avg cache disk response time", r.AvgCacheDiskResponseTime},
		)
		if err != nil {
			return nil, err
		}
		t.Rows = append(t.Rows, append([]string{r.XLabel(), runName(r)}, v...))
	}
	return t, nil
}

func overflowChart(results []*model.Result) (*Table, error) {
	t := &Table{
		Title:  "Buffer overflows",
		Header: []string{"label", "run", "overflow count"},
	}
	for _, r := range results {
		v, err := fieldValues(r, namedField{"buffer overflow count", r.BufferOverflowCount})
		if err != nil {
			return nil, err
		}
		t.Rows = append(t.Rows, append([]string{r.XLabel(), runName(r)}, v...))
	}
	return t, nil
}

func spinChart(results []*model.Result) (*Table, error) {
	t := &Table{
		Title:  "Disk spin-ups and spin-downs",
		Header: []string{"label", "run", "spin-up", "spin-down"},
	}
	for _, r := range results {
		v, err := fieldValues(r,
			namedField{"spinup count", r.SpinUpCount},
			namedField{"spindown count", r.SpinDownCount},
		)
		if err != nil {
			return nil, err
		}
		t.Rows = append(t.Rows, append([]string{r.XLabel(), runName(r)}, v...))
	}
	return t, nil
}

func hitChart(results []*model.Result) (*Table, error) {
	t := &Table{
		Title: "Cache hits",
		Header: []string{"label", "run",
			"memory reads", "memory hits", "memory hit %",
			"cache disk reads", "cache disk hits", "cache disk hit %"},
	}
	for _, r := range results {
		v, err := fieldValues(r,
			namedField{"cache memory read count", r.MemoryReadCount},
			namedField{"cache memory read hit", r.MemoryReadHit},
			namedField{"cache disk read count", r.CacheDiskReadCount},
			namedField{"cache disk read hit", r.CacheDiskReadHit},
		)
		if err != nil {
			return nil, err
		}
		t.Rows = append(t.Rows, []string{r.XLabel(), runName(r),
			v[0], v[1], hitRatio(v[1], v[0]),
			v[2], v[3], hitRatio(v[3], v[2]),
		})
	}
	return t, nil
}

// hitRatio formats hits/count as a percentage with two decimals, or "-"
// when either figure is not a number or count is zero.
func hitRatio(hits, count string) string {
	h, err := decimal.NewFromString(hits)
	if err != nil {
		return "-"
	}
	c, err := decimal.NewFromString(count)
	if err != nil || c.IsZero() {
		return "-"
	}
	return h.Mul(decimal.NewFromInt(100)).Div(c).StringFixed(2)
}
