// Package svgstyle handles the class based style sheets embedded by
// illustration tools: it parses them into class tables, rewrites the
// references they hold, and projects a class onto presentation attributes.
package svgstyle

import (
	"errors"
	"io"
	"strings"

	"github.com/benoitkugler/svgjsx/internal/logutil"
	"github.com/benoitkugler/svgjsx/svgerr"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"golang.org/x/exp/slog"
)

// Declaration is one property:value pair of a rule.
type Declaration struct {
	Property, Value string

	rewritten bool // set once a reference of Value has been replaced
}

// Rule is a rule set: comma separated selectors sharing the same declarations.
type Rule struct {
	Selectors    []string
	Declarations []Declaration
}

// Sheet is the structured content of a style block.
type Sheet struct {
	Rules []Rule
}

// ParseSheet parses a style block. Only rule sets are retained. Malformed
// declarations, such as ones without a colon, are logged and skipped.
func ParseSheet(text string, logger *slog.Logger) Sheet {
	logger = logutil.Or(logger)

	parser := css.NewParser(parse.NewInputString(text), false)
	var (
		sheet Sheet
		rule  Rule
	)
	flush := func() {
		if len(rule.Selectors) != 0 {
			sheet.Rules = append(sheet.Rules, rule)
		}
		rule = Rule{}
	}
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			err := parser.Err()
			if errors.Is(err, io.EOF) {
				flush()
				return sheet
			}
			logger.Debug("skipping style declaration",
				"code", svgerr.MalformedStyleDeclaration, "error", err)
		case css.QualifiedRuleGrammar, css.BeginRulesetGrammar:
			if len(rule.Declarations) != 0 {
				flush()
			}
			if selector := joinSelector(parser.Values()); selector != "" {
				rule.Selectors = append(rule.Selectors, selector)
			}
		case css.DeclarationGrammar:
			rule.Declarations = append(rule.Declarations, Declaration{
				Property: string(data),
				Value:    joinValue(parser.Values()),
			})
		case css.EndRulesetGrammar:
			flush()
		}
	}
}

// ParseDeclarations parses the content of a style attribute,
// such as "stop-color:#fff;stop-opacity:0.5".
func ParseDeclarations(text string) []Declaration {
	parser := css.NewParser(parse.NewInputString(text), true)
	var out []Declaration
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if errors.Is(parser.Err(), io.EOF) {
				return out
			}
		case css.DeclarationGrammar:
			out = append(out, Declaration{Property: string(data), Value: joinValue(parser.Values())})
		}
	}
}

func joinSelector(tokens []css.Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		switch tok.TokenType {
		case css.CommaToken:
		case css.WhitespaceToken:
			b.WriteByte(' ')
		default:
			b.Write(tok.Data)
		}
	}
	return strings.TrimSpace(b.String())
}

func joinValue(tokens []css.Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.Write(tok.Data)
	}
	return strings.TrimSpace(b.String())
}

// String serializes the sheet back to compact CSS.
func (s Sheet) String() string {
	var b strings.Builder
	for _, rule := range s.Rules {
		b.WriteString(strings.Join(rule.Selectors, ","))
		b.WriteByte('{')
		for _, decl := range rule.Declarations {
			b.WriteString(decl.Property)
			b.WriteByte(':')
			b.WriteString(decl.Value)
			b.WriteByte(';')
		}
		b.WriteByte('}')
	}
	return b.String()
}

// URLTarget returns the id referenced by a value of the form url(#id),
// with optional quotes.
func URLTarget(value string) (string, bool) {
	v := strings.TrimSpace(value)
	if !strings.HasPrefix(v, "url(") || !strings.HasSuffix(v, ")") {
		return "", false
	}
	v = strings.Trim(strings.TrimSpace(v[4:len(v)-1]), `"'`)
	if !strings.HasPrefix(v, "#") || len(v) == 1 {
		return "", false
	}
	return v[1:], true
}

// ReplaceURL rewrites the declarations whose value is exactly a
// reference to oldID so that they reference newID instead, and returns
// the number of declarations changed. An empty property matches every
// declaration. A declaration is rewritten at most once, so that a
// replacement is never rewritten again by a later call.
func (s *Sheet) ReplaceURL(property, oldID, newID string) int {
	n := 0
	for i := range s.Rules {
		decls := s.Rules[i].Declarations
		for j := range decls {
			decl := &decls[j]
			if decl.rewritten || (property != "" && decl.Property != property) {
				continue
			}
			if target, ok := URLTarget(decl.Value); ok && target == oldID {
				decl.Value = "url(#" + newID + ")"
				decl.rewritten = true
				n++
			}
		}
	}
	return n
}
