package rewrite

import (
	"fmt"
	"strings"
)

// Family names one group of repair rules. Callers pick which families a
// Rewriter applies; an empty selection enables all of them.
type Family string

const (
	// BracketIndex repairs index accesses missing their closing bracket.
	BracketIndex Family = "bracket-index"
	// LambdaCalls repairs predicate lambdas mangled into assertion chains.
	LambdaCalls Family = "lambda-calls"
	// WrappedCalls repairs assertions wrapped into a call's parentheses.
	WrappedCalls Family = "wrapped-calls"
	// Containment repairs Contains(...).Should().BeTrue() forms.
	Containment Family = "containment"
	// Temporal rewrites comparison assertions on lines with date/time
	// vocabulary into BeAfter/BeBefore and their inclusive variants.
	Temporal Family = "temporal"
	// Numeric rewrites comparison assertions on all other lines into
	// BeGreaterThan/BeLessThan and their inclusive variants.
	Numeric Family = "numeric"
	// Throws rebuilds malformed lambda throw assertions, including the
	// multi-line block form, into the Action act pattern.
	Throws Family = "throws"
)

// AllFamilies returns every rule family in scan order.
func AllFamilies() []Family {
	return []Family{BracketIndex, LambdaCalls, Throws, WrappedCalls, Containment, Temporal, Numeric}
}

// ParseFamilies parses a comma-separated family list such as
// "bracket-index,containment". An empty string selects every family.
func ParseFamilies(s string) ([]Family, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	known := make(map[Family]bool)
	for _, f := range AllFamilies() {
		known[f] = true
	}
	var out []Family
	for _, part := range strings.Split(s, ",") {
		f := Family(strings.TrimSpace(part))
		if !known[f] {
			return nil, fmt.Errorf("unknown rule family %q", part)
		}
		out = append(out, f)
	}
	return out, nil
}

// Options configures a Rewriter.
type Options struct {
	// Families to apply; nil or empty means all of them.
	Families []Family
}

// Rewriter applies the repair rule set to whole documents. It holds no
// per-document state, so one Rewriter may serve many documents, concurrently.
type Rewriter struct {
	active    map[Family]bool
	scanRules []rule
}

// New builds a Rewriter for the selected rule families.
func New(opts Options) *Rewriter {
	families := opts.Families
	if len(families) == 0 {
		families = AllFamilies()
	}
	active := make(map[Family]bool, len(families))
	for _, f := range families {
		active[f] = true
	}

	rw := &Rewriter{active: active}
	// Scan-pass priority order. Bracket repair goes first: the rules below
	// match bracket-indexed identifiers and rely on the closing bracket
	// already being back in place.
	if active[BracketIndex] {
		rw.scanRules = append(rw.scanRules, bracketRules...)
	}
	if active[LambdaCalls] {
		rw.scanRules = append(rw.scanRules, lambdaRules...)
	}
	if active[Throws] {
		rw.scanRules = append(rw.scanRules, throwLineRules...)
	}
	if active[WrappedCalls] {
		rw.scanRules = append(rw.scanRules, wrappedRules...)
	}
	if active[Containment] {
		rw.scanRules = append(rw.scanRules, containmentRules...)
	}
	return rw
}

// Transform repairs one document. It returns the rewritten text, whether the
// text differs from the input, and an error only on an internal invariant
// violation, in which case the text comes back unchanged. Malformed input is
// the expected case and never an error: it is either repaired or passed
// through verbatim.
func (rw *Rewriter) Transform(doc string) (string, bool, error) {
	eol := "\n"
	if strings.Contains(doc, "\r\n") {
		eol = "\r\n"
	}
	lines := strings.Split(doc, eol)

	out, err := rw.scan(lines)
	if err != nil {
		return doc, false, err
	}

	// The temporal and numeric families run as two whole-document passes,
	// each re-deciding eligibility per line, so neither can corrupt output
	// the other produced.
	if rw.active[Temporal] {
		for i, line := range out {
			if isTemporal(line) {
				line = applyComparisons(line, temporalComparisons)
				out[i] = applyRemaps(line, temporalRemaps)
			}
		}
	}
	if rw.active[Numeric] {
		for i, line := range out {
			if !isTemporal(line) {
				line = applyComparisons(line, numericComparisons)
				out[i] = applyRemaps(line, numericRemaps)
			}
		}
	}

	result := strings.Join(out, eol)
	return result, result != doc, nil
}

// scan is the line pass: single-line rules apply cumulatively in fixed
// priority order, so a line carrying malformed shapes from several families
// is fully repaired in one pass. A block opener hands control to the block
// reconstructor until the closing marker. A block with no closing marker
// before the document ends is emitted verbatim; the scanner never truncates
// text it cannot fully resolve.
func (rw *Rewriter) scan(lines []string) ([]string, error) {
	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if repl, ok := applyRules(rw.scanRules, line); ok {
			out = append(out, repl...)
			continue
		}
		if rw.active[Throws] && opensBlock(line) {
			blk, state, err := findBlock(lines, i)
			if err != nil {
				return nil, err
			}
			switch state {
			case blockFound:
				out = append(out, blk.emit()...)
				i = blk.end
				continue
			case blockUnterminated:
				out = append(out, lines[i:]...)
				return out, nil
			}
			// blockSkipped: an ordinary lambda, fall through untouched.
		}
		out = append(out, line)
	}
	return out, nil
}

// applyRules runs the scan rules over one line in priority order. Replacement
// rules accumulate on the line, each seeing the previous rules' repairs. An
// expanding rule takes over: its output stands in for the whole line and the
// remaining rules are skipped.
func applyRules(rules []rule, line string) ([]string, bool) {
	fixed := line
	for _, r := range rules {
		if r.expand != nil {
			if m := r.pattern.FindStringSubmatch(fixed); m != nil {
				return r.expand(m), true
			}
			continue
		}
		fixed = r.pattern.ReplaceAllString(fixed, r.replace)
	}
	if fixed == line {
		return nil, false
	}
	return []string{fixed}, true
}
