package report

import (
	"strconv"
	"strings"

	"github.com/daryltucker/asmgraph/internal/model"
)

// parseWorkload decodes the workload file recorded on a line such as
//
//	workload : /traces/workload.24h.rr5.lam100.the8.ds10mb
//
// It returns nil when the file name does not have the expected tokens.
func parseWorkload(line string) *model.WorkloadParam {
	path := firstToken(valueOf(line))
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		path = path[i+1:]
	}

	tokens := strings.Split(path, ".")
	if len(tokens) < 6 {
		return nil
	}

	hourToken := tokens[1]
	if len(hourToken) < 2 {
		return nil
	}
	hour, err := strconv.Atoi(hourToken[:len(hourToken)-1])
	if err != nil {
		return nil
	}

	ratio, ok1 := strings.CutPrefix(tokens[2], "rr")
	rate, ok2 := strings.CutPrefix(tokens[3], "lam")
	zipf, ok3 := strings.CutPrefix(tokens[4], "the")
	dataSize, ok4 := strings.CutPrefix(tokens[5], "ds")
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return nil
	}

	return &model.WorkloadParam{
		Hour:        hour,
		ReadRatio:   ratio,
		ArrivalRate: rate,
		ZipfFactor:  zipf,
		DataSize:    dataSize,
	}
}
