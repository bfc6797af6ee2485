package report

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/daryltucker/asmgraph/internal/model"
)

// parseEnergy consumes the five power-state lines that follow the total
// energy marker. States are assigned by position. A missing or malformed
// line leaves that state's figures at zero.
func parseEnergy(lines *LineReader) *model.Energy {
	e := &model.Energy{}
	for i, state := range model.States {
		e.States[i].State = state

		line, ok := lines.Next()
		if !ok {
			continue
		}
		energy, total, avg := stateFigures(line)
		e.States[i].EnergyJoules = energy
		e.States[i].TotalTimeSeconds = total
		e.States[i].AverageTimeSeconds = avg
	}
	return e
}

// stateFigures splits a line such as
//
//	active: 1,234.5(100.0), avg 2.5)
//
// into energy, cumulative time and average time.
func stateFigures(line string) (energy, total, avg decimal.Decimal) {
	_, rest, ok := strings.Cut(line, ":")
	if !ok {
		return
	}

	value, times, _ := strings.Cut(rest, "(")
	energy = toDecimal(value)

	totalPart, avgPart, found := strings.Cut(times, "avg")
	total = toDecimal(totalPart)
	if found {
		avg = toDecimal(strings.TrimLeft(strings.TrimSpace(avgPart), ":"))
	}
	return
}

// toDecimal reads the leading figure of s. Anything trailing the last digit
// of the first word is dropped.
func toDecimal(s string) decimal.Decimal {
	figure := strings.TrimRightFunc(firstToken(s), func(r rune) bool {
		return !unicode.IsDigit(r)
	})
	d, err := decimal.NewFromString(stripCommas(figure))
	if err != nil {
		return decimal.Zero
	}
	return d
}
