package style

import (
	"strings"

	"github.com/go-text/typesetting/segmenter"
)

// Wrap breaks text into lines no wider than maxWidth as reported by measure. Lines break only at
// Unicode line-break opportunities (spaces, after hyphens, between ideographs), so a segment
// wider than maxWidth gets a line of its own. Explicit newlines are kept.
func Wrap(text string, maxWidth float32, measure func(string) float32) []string {
	var seg segmenter.Segmenter
	seg.Init([]rune(text))
	iter := seg.LineIterator()

	var (
		lines []string
		line  []rune
	)
	for iter.Next() {
		l := iter.Line()
		piece := l.Text
		if l.IsMandatoryBreak {
			piece = []rune(strings.TrimRight(string(piece), "\r\n\v\f\u0085\u2028\u2029"))
		}
		candidate := append(line[:len(line):len(line)], piece...)
		if len(line) > 0 && maxWidth > 0 && measure(trimEnd(candidate)) > maxWidth {
			lines = append(lines, trimEnd(line))
			candidate = append([]rune(nil), piece...)
		}
		line = candidate
		if l.IsMandatoryBreak {
			lines = append(lines, trimEnd(line))
			line = nil
		}
	}
	if len(line) > 0 {
		lines = append(lines, trimEnd(line))
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

func trimEnd(r []rune) string {
	return strings.TrimRight(string(r), " \t")
}
