package chart

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryltucker/asmgraph/internal/model"
)

func str(s string) *string { return &s }

func run(path, storage, buffer string) *model.Result {
	r := &model.Result{
		SourcePath:               path,
		StorageManager:           str(storage),
		BufferManager:            str(buffer),
		AvgResponseTime:          str("10.5"),
		AvgDataDiskResponseTime:  str("20"),
		AvgCacheDiskResponseTime: str("5"),
		BufferOverflowCount:      str("3"),
		SpinUpCount:              str("7"),
		SpinDownCount:            str("8"),
		MemoryReadCount:          str("200"),
		MemoryReadHit:            str("50"),
		CacheDiskReadCount:       str("0"),
		CacheDiskReadHit:         str("0"),
		Energy:                   &model.Energy{},
	}
	for i, s := range model.States {
		r.Energy.States[i] = model.StateEnergy{
			State:            s,
			EnergyJoules:     decimal.NewFromFloat(float64(i) + 0.5),
			TotalTimeSeconds: decimal.NewFromInt(int64(i * 100)),
		}
	}
	return r
}

func TestParseKinds(t *testing.T) {
	kinds, err := ParseKinds(nil)
	require.NoError(t, err)
	assert.Equal(t, Kinds, kinds)

	kinds, err = ParseKinds([]string{"spin", "Energy", "spin"})
	require.NoError(t, err)
	assert.Equal(t, []Kind{Spin, Energy}, kinds)

	kinds, err = ParseKinds([]string{"hit", "all"})
	require.NoError(t, err)
	assert.Equal(t, Kinds, kinds)

	_, err = ParseKinds([]string{"energy", "pie"})
	assert.True(t, errors.Is(err, ErrUnknownKind))
}

func TestEveryKindHasRenderer(t *testing.T) {
	for _, k := range Kinds {
		_, ok := renderers[k]
		assert.True(t, ok, k)
	}
	assert.Len(t, renderers, len(Kinds))
}

func TestBuildEnergy(t *testing.T) {
	results := []*model.Result{
		run("/x/b", "normal", "raposda"),
		run("/x/a", "maid", "normal"),
	}

	tbl, err := Build(Energy, results)
	require.NoError(t, err)

	assert.Equal(t, []string{"label", "run", "active", "idle", "standby", "spindown", "spinup", "total"}, tbl.Header)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, []string{"maid-Normal", "a", "0.5", "1.5", "2.5", "3.5", "4.5", "12.5"}, tbl.Rows[0])
	assert.Equal(t, "normal-RAPoSDA", tbl.Rows[1][0])

	// input order is left alone
	assert.Equal(t, "/x/b", results[0].SourcePath)
}

func TestBuildStateTime(t *testing.T) {
	tbl, err := Build(StateTime, []*model.Result{run("/x/a", "n", "normal")})
	require.NoError(t, err)
	assert.Equal(t, []string{"n-Normal", "a", "0", "100", "200", "300", "400"}, tbl.Rows[0])
}

func TestBuildHit(t *testing.T) {
	tbl, err := Build(Hit, []*model.Result{run("/x/a", "n", "normal")})
	require.NoError(t, err)
	assert.Equal(t, []string{"n-Normal", "a", "200", "50", "25.00", "0", "0", "-"}, tbl.Rows[0])
}

func TestBuildMissingField(t *testing.T) {
	r := run("/x/a", "n", "normal")
	r.BufferOverflowCount = nil

	_, err := Build(Overflow, []*model.Result{r})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingField))
	assert.Contains(t, err.Error(), "buffer overflow count")

	// other charts are unaffected
	_, err = Build(Spin, []*model.Result{r})
	assert.NoError(t, err)

	r.Energy = nil
	_, err = Build(Energy, []*model.Result{r})
	assert.True(t, errors.Is(err, ErrMissingField))
}

func TestBuildUnknownKind(t *testing.T) {
	_, err := Build(Kind("pie"), nil)
	assert.True(t, errors.Is(err, ErrUnknownKind))
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, Response, []*model.Result{run("/x/a", "n", "normal")})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Average response time")
	assert.Contains(t, out, "data disk")
	assert.Contains(t, out, "10.5")
}

func TestHitRatio(t *testing.T) {
	assert.Equal(t, "33.33", hitRatio("1", "3"))
	assert.Equal(t, "-", hitRatio("1", "0"))
	assert.Equal(t, "-", hitRatio("x", "3"))
	assert.Equal(t, "-", hitRatio("1", ""))
}
