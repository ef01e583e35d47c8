package svgstyle

import (
	"strings"

	"github.com/benoitkugler/svgjsx/internal/logutil"
	"github.com/tdewolff/parse/v2/strconv"
	"golang.org/x/exp/slices"
	"golang.org/x/exp/slog"
)

// Class maps a property name (fill, stroke, opacity, ...) to its literal value.
type Class map[string]string

// Classes is the class table, indexed by class number.
type Classes map[int]Class

// ClassNumber returns the number of a class name, that is the integer
// after its last '-'. Both "cls-3" and "API-cls-3" give 3.
// Only the first name of a whitespace separated list is used.
func ClassNumber(name string) (int, bool) {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return 0, false
	}
	name = fields[0]
	i := strings.LastIndexByte(name, '-')
	if i == -1 {
		return 0, false
	}
	digits := []byte(name[i+1:])
	n, read := strconv.ParseInt(digits)
	if read == 0 || read != len(digits) {
		return 0, false
	}
	return int(n), true
}

// Numbers returns the class numbers in increasing order.
func (cs Classes) Numbers() []int {
	out := make([]int, 0, len(cs))
	for n := range cs {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// ParseClasses parses a style block into the class table. Each class
// selector of a rule receives every declaration of the rule. Properties
// are assigned in text order, so the last value declared for a class wins.
// Selectors other than numbered classes are ignored.
func ParseClasses(text string, logger *slog.Logger) Classes {
	return ParseSheet(text, logger).Classes(logger)
}

// Classes returns the class table of the sheet.
func (s Sheet) Classes(logger *slog.Logger) Classes {
	logger = logutil.Or(logger)

	classes := make(Classes)
	for _, rule := range s.Rules {
		for _, selector := range rule.Selectors {
			if !strings.HasPrefix(selector, ".") {
				logger.Debug("ignoring selector", "selector", selector)
				continue
			}
			number, ok := ClassNumber(selector[1:])
			if !ok {
				logger.Debug("ignoring selector", "selector", selector)
				continue
			}
			for _, decl := range rule.Declarations {
				class := classes[number]
				if class == nil {
					class = make(Class)
					classes[number] = class
				}
				class[decl.Property] = decl.Value
			}
		}
	}
	return classes
}
