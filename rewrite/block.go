package rewrite

import (
	"fmt"
	"regexp"
	"strings"
)

// Marker detection for the multi-line lambda throw block is deliberately
// literal: the shapes being repaired are finite and known in advance, and
// nesting-depth tracking would start "repairing" text this tool has never
// seen.
const blockOpenMarker = "(() =>"

var throwTypeRE = regexp.MustCompile(`\.Should\(\)\.Throw<([^>]+)>`)

// block is one detected multi-line lambda throw construct. It lives only
// between detection and emission within a single pass.
type block struct {
	indent  string   // leading whitespace of the opening line
	body    []string // lines strictly between opener and closer, verbatim
	excType string   // exception type named on the closing line
	end     int      // index of the closing line
}

type blockState int

const (
	blockFound        blockState = iota // closer carries a throw assertion; rewrite the span
	blockSkipped                        // closer is an ordinary lambda end; leave the span alone
	blockUnterminated                   // no closer before the document ends
)

// opensBlock reports whether a line starts a deferred-evaluation block.
func opensBlock(line string) bool {
	return strings.Contains(line, blockOpenMarker)
}

func closesBlock(line string) bool {
	return strings.Contains(line, "}).Should().Throw") || strings.Contains(line, "});")
}

// findBlock scans forward from the opening line at start for the block's
// closing marker. A closing line that carries a throw assertion but names no
// exception type is an internal invariant violation and aborts the document.
func findBlock(lines []string, start int) (block, blockState, error) {
	open := lines[start]
	indent := open[:len(open)-len(strings.TrimLeft(open, " \t"))]

	for j := start; j < len(lines); j++ {
		if !closesBlock(lines[j]) {
			continue
		}
		if !strings.Contains(lines[j], ".Should().Throw") {
			return block{}, blockSkipped, nil
		}
		m := throwTypeRE.FindStringSubmatch(lines[j])
		if m == nil {
			return block{}, blockSkipped,
				fmt.Errorf("rewrite: throw assertion closing %q names no exception type", strings.TrimSpace(lines[j]))
		}
		return block{
			indent:  indent,
			body:    lines[start+1 : j],
			excType: m[1],
			end:     j,
		}, blockFound, nil
	}
	return block{}, blockUnterminated, nil
}

// emit renders the repaired construct: a comment, the deferred wrapper over
// the verbatim body, and the assertion against the extracted type.
func (b block) emit() []string {
	out := make([]string, 0, len(b.body)+5)
	out = append(out,
		b.indent+"// Act & Assert",
		b.indent+"Action act = () =>",
		b.indent+"{",
	)
	out = append(out, b.body...)
	out = append(out,
		b.indent+"};",
		b.indent+"act.Should().Throw<"+b.excType+">();",
	)
	return out
}
