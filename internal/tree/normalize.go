package tree

import (
	"fmt"
	"strings"
)

// MalformedError reports a structural fault in a dump: braces that never
// balance. Line is 1-indexed into the text being processed.
type MalformedError struct {
	Line    int
	Message string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed tree at line %d: %s", e.Line, e.Message)
}

// Normalize converts a raw store dump into canonical tokens. Braces are
// split onto their own logical lines, runs of blanks and tabs collapse to a
// single space, and empty lines disappear. The returned token sequence is
// guaranteed brace-balanced; an unbalanced dump yields a *MalformedError
// carrying the offending raw line.
//
// A leaf line splits into key and value at its first colon. A line with no
// colon becomes a leaf with an empty value, so stray text still rounds a
// full record instead of vanishing.
func Normalize(raw string) ([]Token, error) {
	var tokens []Token
	depth := 0

	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		for _, part := range splitBraces(line) {
			switch part {
			case "{":
				depth++
				tokens = append(tokens, Token{Kind: Open})
			case "}":
				if depth == 0 {
					return nil, &MalformedError{Line: i + 1, Message: "close brace with no open block"}
				}
				depth--
				tokens = append(tokens, Token{Kind: Close})
			default:
				key, value := splitLeaf(part)
				tokens = append(tokens, Token{Kind: Leaf, Key: key, Value: value})
			}
		}
	}

	if depth != 0 {
		return nil, &MalformedError{Line: len(lines), Message: fmt.Sprintf("%d unclosed block(s)", depth)}
	}
	return tokens, nil
}

// Render writes tokens back out as canonical text, one token per line.
// Normalize(Render(tokens)) reproduces the same sequence.
func Render(tokens []Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		switch tok.Kind {
		case Open:
			b.WriteString("{\n")
		case Close:
			b.WriteString("}\n")
		default:
			b.WriteString(tok.Key)
			b.WriteString(" :")
			if tok.Value != "" {
				b.WriteByte(' ')
				b.WriteString(tok.Value)
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// splitBraces breaks one raw line into trimmed fragments, forcing every
// brace into a fragment of its own. Empty fragments are dropped.
func splitBraces(line string) []string {
	var parts []string
	start := 0
	flush := func(end int) {
		if s := strings.TrimSpace(line[start:end]); s != "" {
			parts = append(parts, collapseSpace(s))
		}
	}
	for i := 0; i < len(line); i++ {
		if line[i] == '{' || line[i] == '}' {
			flush(i)
			parts = append(parts, string(line[i]))
			start = i + 1
		}
	}
	flush(len(line))
	return parts
}

// collapseSpace squeezes every run of blanks and tabs down to one space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// splitLeaf parses a canonical leaf fragment at its first colon. Keys
// containing a colon cannot be represented; the text notation has no
// escaping.
func splitLeaf(part string) (key, value string) {
	if i := strings.Index(part, ":"); i >= 0 {
		return strings.TrimSpace(part[:i]), strings.TrimSpace(part[i+1:])
	}
	return part, ""
}
