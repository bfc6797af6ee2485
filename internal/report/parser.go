/*
PURPOSE:
  Turns one simulator report into a model.Result.

REQUIREMENTS:
  User-specified:
  - Line oriented, case and padding insensitive prefix matching.
  - Unrecognised lines are skipped; missing sections leave fields nil.
  - Some markers consume the lines that follow them (request counts,
    disk access counts, the five energy states).

  Implementation-discovered:
  - Prefixes are tried in table order; the first match wins.
  - Class paths are reduced to the short names used in run file names.

ARCHITECTURE INTEGRATION:
  - Called by: internal/store
  - Produces: internal/model.Result

ERROR HANDLING:
  - ParseFile fails only when the file cannot be opened or read.

USAGE:
  res, err := report.ParseFile(path)

RELATED FILES:
  - internal/report/energy.go
  - internal/report/workload.go
*/

package report

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/daryltucker/asmgraph/internal/model"
)

type parser struct {
	lines *LineReader
	res   *model.Result
}

type handler func(p *parser, line string)

type marker struct {
	prefix string
	handle handler
}

var markers = []marker{
	{"data disks", func(p *parser, l string) { p.res.NumDataDisks = ptr(number(l)) }},
	{"cache disks", func(p *parser, l string) { p.res.NumCacheDisks = ptr(number(l)) }},
	{"replicas", func(p *parser, l string) { p.res.ReplicationLevel = ptr(number(l)) }},
	{"number of cache memories", (*parser).numMemories},
	{"memory size", func(p *parser, l string) { p.res.MemorySizeBytes = ptr(size(l)) }},
	{"block size", func(p *parser, l string) { p.res.BlockSizeBytes = ptr(size(l)) }},
	{"cachememoryassignor", func(p *parser, l string) {
		p.res.MemoryAssignor = ptr(shortName(l, "cachememory", "assignor"))
	}},
	{"cachememoryfactory", func(p *parser, l string) {
		p.res.MemoryManager = ptr(shortName(l, "region", "factory"))
	}},
	{"storagemanagerfactory", func(p *parser, l string) {
		p.res.StorageManager = ptr(shortName(l, "storage"))
	}},
	{"buffermanagerfactory", func(p *parser, l string) {
		p.res.BufferManager = ptr(shortName(l, "buffer"))
	}},
	{"workload", func(p *parser, l string) { p.res.Workload = parseWorkload(l) }},
	{"total energy", func(p *parser, _ string) { p.res.Energy = parseEnergy(p.lines) }},
	{"avg. response time", func(p *parser, l string) { p.res.AvgResponseTime = ptr(number(l)) }},
	{"total request count", (*parser).requestCounts},
	{"cache memory read count", func(p *parser, l string) {
		p.res.MemoryReadCount, p.res.MemoryReadHit = hitPair(l)
	}},
	{"cache memory write count", func(p *parser, l string) {
		p.res.MemoryWriteCount, p.res.MemoryWriteHit = hitPair(l)
	}},
	{"avg. data disk response time", func(p *parser, l string) {
		p.res.AvgDataDiskResponseTime = ptr(number(l))
	}},
	{"data disk access count", (*parser).dataDiskCounts},
	{"avg. cache disk response time", func(p *parser, l string) {
		p.res.AvgCacheDiskResponseTime = ptr(number(l))
	}},
	{"cache disk access count", (*parser).cacheDiskCounts},
	{"spindown count", func(p *parser, l string) { p.res.SpinDownCount = ptr(number(l)) }},
	{"spinup count", func(p *parser, l string) { p.res.SpinUpCount = ptr(number(l)) }},
	{"buffer overflow count", func(p *parser, l string) { p.res.BufferOverflowCount = ptr(number(l)) }},
}

// ParseFile opens the report at path and parses it.
func ParseFile(path string) (*model.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open report")
	}
	defer f.Close()

	return Parse(path, f)
}

// Parse reads a report from r. path is recorded as the Result's source.
func Parse(path string, r io.Reader) (*model.Result, error) {
	p := &parser{
		lines: NewLineReader(r),
		res:   &model.Result{SourcePath: path},
	}

	for {
		line, ok := p.lines.Next()
		if !ok {
			break
		}
		p.dispatch(line)
	}

	if err := p.lines.Err(); err != nil {
		return nil, errors.Wrapf(err, "cannot read report %s after line %d", path, p.lines.Line())
	}
	return p.res, nil
}

func (p *parser) dispatch(line string) {
	for _, m := range markers {
		if strings.HasPrefix(line, m.prefix) {
			m.handle(p, line)
			return
		}
	}
}

func (p *parser) numMemories(line string) {
	n, err := strconv.Atoi(number(line))
	if err != nil {
		return
	}
	p.res.NumMemories = &n
}

// requestCounts reads the read and write request lines that follow the
// total request count.
func (p *parser) requestCounts(line string) {
	p.res.TotalRequestCount = ptr(number(line))

	if next, ok := p.lines.Next(); ok {
		p.res.ReadRequestCount = ptr(number(next))
	} else {
		return
	}
	if next, ok := p.lines.Next(); ok {
		p.res.WriteRequestCount = ptr(number(next))
	}
}

// dataDiskCounts reads the read and write breakdown that follows the data
// disk access count.
func (p *parser) dataDiskCounts(line string) {
	p.res.DataDiskAccessCount = ptr(number(line))

	if next, ok := p.lines.Next(); ok {
		p.res.DataDiskReadCount = ptr(number(next))
	} else {
		return
	}
	if next, ok := p.lines.Next(); ok {
		p.res.DataDiskWriteCount = ptr(number(next))
	}
}

// cacheDiskCounts reads the read and write lines, each with a hit count in
// parentheses, that follow the cache disk access count.
func (p *parser) cacheDiskCounts(line string) {
	p.res.CacheDiskAccessCount = ptr(number(line))

	if next, ok := p.lines.Next(); ok {
		p.res.CacheDiskReadCount, p.res.CacheDiskReadHit = hitPair(next)
	} else {
		return
	}
	if next, ok := p.lines.Next(); ok {
		p.res.CacheDiskWriteCount, p.res.CacheDiskWriteHit = hitPair(next)
	}
}

func hitPair(line string) (*string, *string) {
	count, hit := countAndHit(line)
	return ptr(count), ptr(hit)
}
