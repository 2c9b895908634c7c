// Package rewrite repairs malformed fluent assertion expressions left behind
// by faulty code generation. Given the full text of one document it returns
// the repaired text and whether anything changed; text it does not recognize
// comes back byte-for-byte untouched.
package rewrite

import (
	"regexp"
	"strings"
)

// A rule is one pattern-driven repair: a matcher over a single line plus the
// replacement that fixes the malformed shape it targets. Rules hold no state
// and must be idempotent: reapplied to their own output they match nothing.
type rule struct {
	name    string
	pattern *regexp.Regexp

	// Exactly one of replace/expand is set. replace rewrites every match on
	// the line in place; expand rebuilds the whole line as one or more lines.
	replace string
	expand  func(m []string) []string
}

// indexedNames are the identifiers the generator is known to index; an index
// access on any other name is left alone.
var indexedNames = []string{"results", "entities", "items", "list", "entries"}

// bracketRules restore the closing bracket the generator drops between an
// index and the method chain: results[0.Value -> results[0].Value.
// They run before every other rule so downstream matchers see well-formed
// index accesses.
var bracketRules = []rule{
	{
		name:    "bracket-index",
		pattern: regexp.MustCompile(`\b(` + strings.Join(indexedNames, "|") + `)\[(\d+)\.`),
		replace: `$1[$2].`,
	},
}

// lambdaRules repair predicate lambdas mangled into assertion chains:
// .All(r =.Should().BeGreaterThan(EXPR)) -> .All(r => EXPR).Should().BeTrue().
var lambdaRules = []rule{
	{
		name:    "all-predicate",
		pattern: regexp.MustCompile(`\.All\((\w+) =\.Should\(\)\.BeGreaterThan\(([^)]+)\)\)`),
		replace: `.All($1 => $2).Should().BeTrue()`,
	},
}

// wrappedRules hoist an assertion out of a call's parentheses. The First
// variants also move a trailing property access back in front of the
// assertion, so they must be tried before the generic form.
var wrappedRules = []rule{
	{
		name:    "first-true-property",
		pattern: regexp.MustCompile(`\.First\(\.Should\(\)\.BeTrue\(\)\.(\w+)\)`),
		replace: `.First().$1.Should().BeTrue()`,
	},
	{
		name:    "first-false-property",
		pattern: regexp.MustCompile(`\.First\(\.Should\(\)\.BeFalse\(\)\.(\w+)\)`),
		replace: `.First().$1.Should().BeFalse()`,
	},
	{
		name:    "wrapped-call",
		pattern: regexp.MustCompile(`(\w+)\(\.Should\(\)\.Be(\w+)\(\)\)`),
		replace: `$1.Should().Be$2()`,
	},
}

// containmentRules turn Contains(...) chained into a truth assertion into a
// single semantic containment assertion, tolerating the doubled wrapping the
// generator sometimes adds. The final rule strips a stray trailing paren from
// an otherwise correct Contain call and is anchored to a whole statement so
// legitimately nested calls never lose a paren.
var containmentRules = []rule{
	{
		name:    "contains-quote-inside",
		pattern: regexp.MustCompile(`(\w+)\.Contains\("([^"]*)"\.Should\(\)\.BeTrue\(\)\)`),
		replace: `$1.Should().Contain("$2")`,
	},
	{
		name:    "contains-ident-inside",
		pattern: regexp.MustCompile(`(\w+)\.Contains\((\w+)\.Should\(\)\.BeTrue\(\)\)`),
		replace: `$1.Should().Contain($2)`,
	},
	{
		name:    "contains-wrapped",
		pattern: regexp.MustCompile(`(\w+)\.Contains\("([^"]*)"\)\.Should\(\)\.BeTrue\(\)\)?`),
		replace: `$1.Should().Contain("$2")`,
	},
	{
		name:    "contain-extra-paren",
		pattern: regexp.MustCompile(`^(\s*)(\w+)\.Should\(\)\.Contain\(("[^"]*")\)\)(;?)\s*$`),
		replace: `$1$2.Should().Contain($3)$4`,
	},
}

// throwLineRules repair lambda throw assertions that fit on one line. Each
// emits the Action pattern: a comment, the deferred wrapper, the assertion.
//
// throw-inline-lambda must run before throw-wrapped-lambda: on the inline
// shape the wrapped matcher's lazy body capture would stop at the inner
// ").Should()" and truncate the call mid-argument.
var throwLineRules = []rule{
	{
		name:    "throw-inline-lambda",
		pattern: regexp.MustCompile(`^(\s*)\(\(\) => (.*?)\.Should\(\)\.Throw<([^>]+)>\(\)\);?$`),
		expand: func(m []string) []string {
			return []string{
				m[1] + "// Act & Assert",
				m[1] + "Action act = () => " + m[2] + ";",
				m[1] + "act.Should().Throw<" + m[3] + ">();",
			}
		},
	},
	{
		name:    "throw-wrapped-lambda",
		pattern: regexp.MustCompile(`^(\s*)\(\(\) => (.*?)\)\.Should\(\)\.Throw<([^>]+)>\(\)(.*)$`),
		expand: func(m []string) []string {
			code := m[2]
			// A mangled body can carry its own assertion chain; keep only
			// the call in front of it.
			if i := strings.Index(code, ".Should()"); i >= 0 {
				code = code[:i]
			}
			return []string{
				m[1] + "// Act & Assert",
				m[1] + "Action act = () => " + code + ";",
				m[1] + "act.Should().Throw<" + m[3] + ">()" + m[4],
			}
		},
	},
	{
		name:    "throw-assigned",
		pattern: regexp.MustCompile(`^(\s*)var\s+\w+\s*=\s*(.*?)\.Should\(\)\.Throw<([^>]+)>\(\);?$`),
		expand: func(m []string) []string {
			return []string{
				m[1] + "// Act & Assert",
				m[1] + "Action act = () => " + m[2] + ";",
				m[1] + "act.Should().Throw<" + m[3] + ">();",
			}
		},
	},
}

// A comparison fixes an inline boolean comparison chained into a trivial
// truth assertion, e.g. (a > b).Should().BeTrue(), replacing the operator
// with the semantic assertion named by method.
type comparison struct {
	name    string
	pattern *regexp.Regexp
	method  string
}

var (
	cmpParenGT = regexp.MustCompile(`^(\s*)\((.+?)\s*>\s*(.+?)\)\.Should\(\)\.BeTrue\(\)(.*)$`)
	cmpParenLT = regexp.MustCompile(`^(\s*)\((.+?)\s*<\s*(.+?)\)\.Should\(\)\.BeTrue\(\)(.*)$`)

	// The bare forms exclude parentheses from the right operand: the operand
	// must stop before the dot that starts the assertion chain, so a
	// comparison buried inside a lambda such as
	// results.All(r => a > b).Should().BeTrue() can never match; the
	// operand would have to swallow the lambda's closing paren.
	cmpBareGT = regexp.MustCompile(`^(\s*)(.+?)\s*>\s*([^()]+?)\.Should\(\)\.BeTrue\(\)(.*)$`)
	cmpBareLT = regexp.MustCompile(`^(\s*)(.+?)\s*<\s*([^()]+?)\.Should\(\)\.BeTrue\(\)(.*)$`)
)

// temporalComparisons and numericComparisons share matchers and differ only
// in the assertion vocabulary; the context guard decides which family a line
// gets. Parenthesized forms take priority over the bare forms.
var temporalComparisons = []comparison{
	{"paren-gt-after", cmpParenGT, "BeAfter"},
	{"paren-lt-before", cmpParenLT, "BeBefore"},
	{"bare-gt-after", cmpBareGT, "BeAfter"},
	{"bare-lt-before", cmpBareLT, "BeBefore"},
}

var numericComparisons = []comparison{
	{"paren-gt-greater", cmpParenGT, "BeGreaterThan"},
	{"paren-lt-less", cmpParenLT, "BeLessThan"},
	{"bare-gt-greater", cmpBareGT, "BeGreaterThan"},
	{"bare-lt-less", cmpBareLT, "BeLessThan"},
}

// applyComparisons applies the first matching comparison repair to the line.
func applyComparisons(line string, cmps []comparison) string {
	for _, c := range cmps {
		m := c.pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		return m[1] + m[2] + ".Should()." + c.method + "(" + m[3] + ")" + m[4]
	}
	return line
}

// A remap renames a comparison assertion method without touching operands.
type remap struct{ from, to string }

// Inclusive variants precede the plain ones so the longer method names are
// never clipped mid-token. The generator emitted both the ...ThanOrEqualTo
// and ...OrEqualTo spellings.
var temporalRemaps = []remap{
	{".Should().BeLessThanOrEqualTo(", ".Should().BeOnOrBefore("},
	{".Should().BeLessOrEqualTo(", ".Should().BeOnOrBefore("},
	{".Should().BeGreaterThanOrEqualTo(", ".Should().BeOnOrAfter("},
	{".Should().BeGreaterOrEqualTo(", ".Should().BeOnOrAfter("},
	{".Should().BeLessThan(", ".Should().BeBefore("},
	{".Should().BeGreaterThan(", ".Should().BeAfter("},
}

var numericRemaps = []remap{
	{".Should().BeOnOrAfter(", ".Should().BeGreaterThanOrEqualTo("},
	{".Should().BeOnOrBefore(", ".Should().BeLessThanOrEqualTo("},
	{".Should().BeAfter(", ".Should().BeGreaterThan("},
	{".Should().BeBefore(", ".Should().BeLessThan("},
}

func applyRemaps(line string, remaps []remap) string {
	for _, r := range remaps {
		line = strings.ReplaceAll(line, r.from, r.to)
	}
	return line
}
