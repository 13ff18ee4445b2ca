package frontend

import (
	"regexp"
	"strconv"
	"strings"
)

// cleanLine is one physical source line after comment-stripping and label
// extraction: LineNo is 1-based, Text is the original line, comment
// included, for error reporting, Label is non-empty if the line declared a
// label, and Remainder is the mnemonic+operands text, if any.
type cleanLine struct {
	LineNo    int
	Text      string
	Label     string
	Remainder string
}

var labelLineRe = regexp.MustCompile(`^\s*([^\s:]+):(.*)$`)
var identRe = regexp.MustCompile(`^[A-Za-z_.][A-Za-z0-9_.]*$`)

// clean implements spec §4.10's first pass: strip `#`-to-end-of-line
// comments, split each line into an optional `name:` label prefix and an
// optional remainder, and reject duplicate or malformed label names.
func clean(source string) ([]cleanLine, error) {
	rawLines := strings.Split(source, "\n")
	out := make([]cleanLine, 0, len(rawLines))
	seen := map[string]int{}

	for i, raw := range rawLines {
		lineNo := i + 1
		text := stripComment(raw)
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			continue
		}

		label := ""
		remainder := trimmed
		if m := labelLineRe.FindStringSubmatch(trimmed); m != nil {
			if !identRe.MatchString(m[1]) {
				return nil, lineErr(lineNo, raw, &syntaxError{msg: "malformed label name " + m[1]})
			}
			if prev, dup := seen[m[1]]; dup {
				return nil, lineErr(lineNo, raw, &nameErrorDup{name: m[1], prevLine: prev})
			}
			seen[m[1]] = lineNo
			label = m[1]
			remainder = strings.TrimSpace(m[2])
		}

		out = append(out, cleanLine{LineNo: lineNo, Text: raw, Label: label, Remainder: remainder})
	}
	return out, nil
}

func stripComment(line string) string {
	if idx := strings.IndexByte(line, '#'); idx >= 0 {
		return line[:idx]
	}
	return line
}

type nameErrorDup struct {
	name     string
	prevLine int
}

func (e *nameErrorDup) Error() string {
	return "duplicate label \"" + e.name + "\" (first declared at line " + strconv.Itoa(e.prevLine) + ")"
}
