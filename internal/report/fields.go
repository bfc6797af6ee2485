package report

import (
	"strings"
	"unicode"
)

// valueOf returns the part of a labelled line that carries the value: the
// text after the first colon, or the last word when there is no colon.
func valueOf(line string) string {
	if _, v, ok := strings.Cut(line, ":"); ok {
		return strings.TrimSpace(v)
	}
	f := strings.Fields(line)
	if len(f) == 0 {
		return ""
	}
	return f[len(f)-1]
}

// firstToken returns the first whitespace separated word of s.
func firstToken(s string) string {
	f := strings.Fields(s)
	if len(f) == 0 {
		return ""
	}
	return f[0]
}

// number extracts the figure of a labelled line with thousands separators
// removed.
func number(line string) string {
	return stripCommas(firstToken(valueOf(line)))
}

// size is number with a trailing unit suffix removed.
func size(line string) string {
	return strings.TrimRightFunc(number(line), func(r rune) bool {
		return !unicode.IsDigit(r)
	})
}

func stripCommas(s string) string {
	return strings.ReplaceAll(s, ",", "")
}

// countAndHit splits "1,000 (900)" into its count and parenthesised hit
// count. hit is empty when the line has no parenthesis.
func countAndHit(line string) (count, hit string) {
	v := strings.ReplaceAll(stripCommas(valueOf(line)), ")", "")
	before, after, _ := strings.Cut(v, "(")
	return firstToken(before), firstToken(after)
}

// shortName reduces a dotted class path to its last segment, cut at the
// earliest occurrence of any of words.
func shortName(line string, words ...string) string {
	path := firstToken(valueOf(line))
	if i := strings.LastIndex(path, "."); i >= 0 {
		path = path[i+1:]
	}

	cut := len(path)
	for _, w := range words {
		if i := strings.Index(path, w); i >= 0 && i < cut {
			cut = i
		}
	}
	if cut == 0 {
		return path
	}
	return path[:cut]
}

// ptr returns a pointer to s, or nil for an empty value so that a blank
// figure reads as an absent field.
func ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
