package report

import (
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryltucker/asmgraph/internal/model"
)

func fixture(name string) string {
	return filepath.Join("testdata", name)
}

func assertField(t *testing.T, want string, got *string, field string) {
	t.Helper()
	if assert.NotNil(t, got, field) {
		assert.Equal(t, want, *got, field)
	}
}

func TestParseFileFullReport(t *testing.T) {
	res, err := ParseFile(fixture("full.txt"))
	require.NoError(t, err)

	assert.Equal(t, fixture("full.txt"), res.SourcePath)

	assertField(t, "4", res.NumDataDisks, "NumDataDisks")
	assertField(t, "2", res.NumCacheDisks, "NumCacheDisks")
	assertField(t, "2", res.ReplicationLevel, "ReplicationLevel")
	require.NotNil(t, res.NumMemories)
	assert.Equal(t, 8, *res.NumMemories)
	assertField(t, "1073741824", res.MemorySizeBytes, "MemorySizeBytes")
	assertField(t, "4096", res.BlockSizeBytes, "BlockSizeBytes")

	assertField(t, "dga", res.MemoryAssignor, "MemoryAssignor")
	assertField(t, "share", res.MemoryManager, "MemoryManager")
	assertField(t, "normal", res.StorageManager, "StorageManager")
	assertField(t, "raposda", res.BufferManager, "BufferManager")

	assert.Equal(t, &model.WorkloadParam{
		Hour:        24,
		ReadRatio:   "5",
		ArrivalRate: "100",
		ZipfFactor:  "8",
		DataSize:    "10mb",
	}, res.Workload)

	assertField(t, "12.345", res.AvgResponseTime, "AvgResponseTime")
	assertField(t, "1234567", res.TotalRequestCount, "TotalRequestCount")
	assertField(t, "1000000", res.ReadRequestCount, "ReadRequestCount")
	assertField(t, "234567", res.WriteRequestCount, "WriteRequestCount")

	assertField(t, "1000000", res.MemoryReadCount, "MemoryReadCount")
	assertField(t, "900000", res.MemoryReadHit, "MemoryReadHit")
	assertField(t, "234567", res.MemoryWriteCount, "MemoryWriteCount")
	assertField(t, "200000", res.MemoryWriteHit, "MemoryWriteHit")

	assertField(t, "20.5", res.AvgDataDiskResponseTime, "AvgDataDiskResponseTime")
	assertField(t, "50000", res.DataDiskAccessCount, "DataDiskAccessCount")
	assertField(t, "40000", res.DataDiskReadCount, "DataDiskReadCount")
	assertField(t, "10000", res.DataDiskWriteCount, "DataDiskWriteCount")

	assertField(t, "5.25", res.AvgCacheDiskResponseTime, "AvgCacheDiskResponseTime")
	assertField(t, "70000", res.CacheDiskAccessCount, "CacheDiskAccessCount")
	assertField(t, "60000", res.CacheDiskReadCount, "CacheDiskReadCount")
	assertField(t, "55000", res.CacheDiskReadHit, "CacheDiskReadHit")
	assertField(t, "10000", res.CacheDiskWriteCount, "CacheDiskWriteCount")
	assertField(t, "9000", res.CacheDiskWriteHit, "CacheDiskWriteHit")

	assertField(t, "1234", res.SpinDownCount, "SpinDownCount")
	assertField(t, "1200", res.SpinUpCount, "SpinUpCount")
	assertField(t, "42", res.BufferOverflowCount, "BufferOverflowCount")

	assert.Equal(t, "normal-RAPoSDA", res.XLabel())
}

func TestParseFileEnergy(t *testing.T) {
	res, err := ParseFile(fixture("full.txt"))
	require.NoError(t, err)
	require.NotNil(t, res.Energy)

	for i, s := range res.Energy.States {
		assert.Equal(t, model.States[i], s.State)
	}

	values := res.Energy.Values()
	assert.Equal(t, []float64{1000.5, 2000.25, 300, 45.125, 10000}, values)
	assert.Equal(t, []float64{3600.25, 7200.5, 1800, 90, 120.75}, res.Energy.TotalTimes())

	var sum float64
	for _, v := range values {
		sum += v
	}
	assert.InDelta(t, sum, res.Energy.Total(), 1e-9)
	assert.InDelta(t, 13345.875, res.Energy.Total(), 1e-9)

	assert.Equal(t, "1.5", res.Energy.States[0].AverageTimeSeconds.String())
	assert.Equal(t, "0.75", res.Energy.States[4].AverageTimeSeconds.String())
}

func TestParseFilePartialReport(t *testing.T) {
	res, err := ParseFile(fixture("partial.txt"))
	require.NoError(t, err)

	assertField(t, "8", res.NumDataDisks, "NumDataDisks")
	assertField(t, "maid", res.StorageManager, "StorageManager")
	assertField(t, "normal", res.BufferManager, "BufferManager")
	assertField(t, "7.5", res.AvgResponseTime, "AvgResponseTime")
	assertField(t, "3", res.SpinDownCount, "SpinDownCount")
	assertField(t, "4", res.SpinUpCount, "SpinUpCount")

	assert.Nil(t, res.BufferOverflowCount)
	assert.Nil(t, res.Energy)
	assert.Nil(t, res.Workload)
	assert.Nil(t, res.NumMemories)
	assert.Nil(t, res.ReadRequestCount)
	assert.Nil(t, res.CacheDiskReadHit)

	assert.Equal(t, "maid-Normal", res.XLabel())
}

func TestParseFileTruncatedMultiLine(t *testing.T) {
	res, err := ParseFile(fixture("truncated.txt"))
	require.NoError(t, err)

	assertField(t, "10", res.TotalRequestCount, "TotalRequestCount")
	assertField(t, "6", res.ReadRequestCount, "ReadRequestCount")
	assert.Nil(t, res.WriteRequestCount)
}

func TestParseFileMissing(t *testing.T) {
	res, err := ParseFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Nil(t, res)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestParseEmpty(t *testing.T) {
	res, err := Parse("empty", strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, &model.Result{SourcePath: "empty"}, res)
}

func TestParseRequestCountsExample(t *testing.T) {
	input := "Total request count: 1,234,567\n" +
		"Read request count: 1,000,000, foo\n" +
		"Write request count: 234,567, bar\n"

	res, err := Parse("inline", strings.NewReader(input))
	require.NoError(t, err)

	assertField(t, "1000000", res.ReadRequestCount, "ReadRequestCount")
	assertField(t, "234567", res.WriteRequestCount, "WriteRequestCount")
}

func TestParseConsumedLinesAreNotDispatched(t *testing.T) {
	// The line after the data disk access count is consumed as the read
	// count even though it looks like a marker of its own.
	input := "Data disk access count : 9\n" +
		"Spindown count : 5\n" +
		"Write : 4\n" +
		"Spinup count : 2\n"

	res, err := Parse("consumed", strings.NewReader(input))
	require.NoError(t, err)

	assertField(t, "5", res.DataDiskReadCount, "DataDiskReadCount")
	assertField(t, "4", res.DataDiskWriteCount, "DataDiskWriteCount")
	assert.Nil(t, res.SpinDownCount)
	assertField(t, "2", res.SpinUpCount, "SpinUpCount")
}

func TestParseEnergyShortInput(t *testing.T) {
	input := "total energy\nactive: 5(10), avg 1)\nidle: 7(3), avg 2)\n"

	res, err := Parse("short", strings.NewReader(input))
	require.NoError(t, err)
	require.NotNil(t, res.Energy)

	assert.Equal(t, []float64{5, 7, 0, 0, 0}, res.Energy.Values())
	assert.Equal(t, model.SpinUp, res.Energy.States[4].State)
	assert.InDelta(t, 12.0, res.Energy.Total(), 1e-9)
}

func TestParseUnrecognizedLinesIgnored(t *testing.T) {
	input := "hello\n\n   \n:::\nREPLICAS      :     3   \n"

	res, err := Parse("noise", strings.NewReader(input))
	require.NoError(t, err)
	assertField(t, "3", res.ReplicationLevel, "ReplicationLevel")
}

func TestParseOverlongLineIsSkipped(t *testing.T) {
	noise := strings.Repeat("x", 3*maxLineSize)
	input := "Data Disks : 4\n" + noise + "\nBuffer overflow count : 1,024 " + noise + "\nSpinup count : 9"

	res, err := Parse("long", strings.NewReader(input))
	require.NoError(t, err)
	assertField(t, "4", res.NumDataDisks, "NumDataDisks")
	assertField(t, "1024", res.BufferOverflowCount, "BufferOverflowCount")
	assertField(t, "9", res.SpinUpCount, "SpinUpCount")
}

func TestParseReadError(t *testing.T) {
	boom := errors.New("disk gone")

	res, err := Parse("broken", io.MultiReader(strings.NewReader("Data Disks : 4\n"), iotest.ErrReader(boom)))
	assert.Nil(t, res)
	assert.ErrorIs(t, err, boom)
}

func TestWorkloadRejectsUnexpectedNames(t *testing.T) {
	tests := []string{
		"workload : /x/workload.24h.rr5.lam100.the8",
		"workload : /x/workload.h.rr5.lam100.the8.ds10mb",
		"workload : /x/workload.xxh.rr5.lam100.the8.ds10mb",
		"workload : /x/workload.24h.r5.lam100.the8.ds10mb",
		"workload :",
	}
	for _, line := range tests {
		assert.Nil(t, parseWorkload(line), line)
	}
}

func TestShortName(t *testing.T) {
	assert.Equal(t, "spinupenergyefficientdisks",
		shortName("buffermanagerfactory : a.b.spinupenergyefficientdisksbuffermanagerfactory", "buffer"))
	assert.Equal(t, "custom", shortName("cachememoryfactory : custom", "region", "factory"))
	assert.Equal(t, "buffermanager", shortName("x : a.buffermanager", "buffer"))
}

func TestStateFigures(t *testing.T) {
	energy, total, avg := stateFigures("active : 1,000.5 (3,600.25 s), avg 1.5 s)")
	assert.Equal(t, "1000.5", energy.String())
	assert.Equal(t, "3600.25", total.String())
	assert.Equal(t, "1.5", avg.String())

	energy, total, avg = stateFigures("garbage")
	assert.True(t, energy.IsZero())
	assert.True(t, total.IsZero())
	assert.True(t, avg.IsZero())
}
