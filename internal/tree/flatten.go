package tree

import (
	"github.com/dynstore/dsflat/api"
)

// Flatten walks a canonical token sequence and emits one flat record per
// scalar leaf: the open path segments, the leaf key, then the leaf value,
// joined by the record separator. Records stream through emit in input
// order; a non-nil error from emit stops the walk and is returned as-is.
//
// Placeholder leaves never emit. Their key is held pending and becomes a
// path segment when the following block opens.
//
// Token sequences from Normalize or FromValue are balanced already; the
// brace checks here guard hand-built sequences.
func Flatten(tokens []Token, emit func(record string) error) error {
	var path []string
	pending := ""

	for i, tok := range tokens {
		switch tok.Kind {
		case Open:
			path = append(path, pending)
			pending = ""
		case Close:
			if len(path) == 0 {
				return &MalformedError{Line: i + 1, Message: "close brace with no open block"}
			}
			path = path[:len(path)-1]
		default:
			if IsPlaceholder(tok.Value) {
				pending = tok.Key
				continue
			}
			segments := make([]string, 0, len(path)+2)
			segments = append(segments, path...)
			segments = append(segments, tok.Key, tok.Value)
			if err := emit(api.JoinRecord(segments)); err != nil {
				return err
			}
		}
	}

	if len(path) != 0 {
		return &MalformedError{Line: len(tokens), Message: "unclosed block at end of dump"}
	}
	return nil
}
