package style

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Parse parses a stylesheet. Supported selectors are .class, #id and bare node types, alone or
// comma-separated; anything else (combinators, pseudo-classes, rules inside @media) is skipped.
// Later rules override earlier ones for the same property.
func Parse(content string) (*Stylesheet, error) {
	sheet := &Stylesheet{}
	p := css.NewParser(parse.NewInputString(content), false)
	var (
		current   *Rule
		atDepth   int
		skipDepth int
	)
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("ui: parse stylesheet: %w", err)
			}
			return sheet, nil
		case css.BeginAtRuleGrammar:
			atDepth++
		case css.EndAtRuleGrammar:
			if atDepth > 0 {
				atDepth--
			}
		case css.BeginRulesetGrammar:
			if atDepth > 0 {
				skipDepth++
				continue
			}
			selectors := splitSelectors(string(data) + joinValues(p.Values()))
			if len(selectors) == 0 {
				skipDepth++
				continue
			}
			current = &Rule{Selectors: selectors, Props: make(map[string]string)}
		case css.EndRulesetGrammar:
			if skipDepth > 0 {
				skipDepth--
				continue
			}
			if current != nil {
				sheet.Rules = append(sheet.Rules, *current)
				current = nil
			}
		case css.DeclarationGrammar:
			if current == nil || skipDepth > 0 {
				continue
			}
			key := strings.ToLower(strings.TrimSpace(string(data)))
			current.Props[key] = strings.TrimSpace(joinValues(p.Values()))
		}
	}
}

func joinValues(tokens []css.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.Write(t.Data)
	}
	return b.String()
}

// splitSelectors returns the supported simple selectors of a selector list. A list with any
// unsupported member yields nothing so the rule is skipped as a whole.
func splitSelectors(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		sel := strings.TrimSpace(part)
		if !simpleSelector(sel) {
			return nil
		}
		out = append(out, sel)
	}
	return out
}

func simpleSelector(sel string) bool {
	name := sel
	if strings.HasPrefix(sel, ".") || strings.HasPrefix(sel, "#") {
		name = sel[1:]
	}
	if name == "" {
		return false
	}
	for _, r := range name {
		if !(r == '-' || r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}
