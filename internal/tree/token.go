// Package tree implements the canonical line-oriented notation for store
// dumps and the walkers over it: a normalizer that turns raw dump text into
// balanced tokens, a flattener that streams one flat record per leaf, and a
// builder that renders structured values straight into tokens.
package tree

// Kind discriminates the three token shapes of the canonical notation.
type Kind int

const (
	// Leaf is a "key : value" line. A value of the form "<...>" is a type
	// placeholder announcing that a nested block follows.
	Leaf Kind = iota
	// Open is a "{" line.
	Open
	// Close is a "}" line.
	Close
)

// Placeholder values used when rendering structured data into tokens.
const (
	PlaceholderDictionary = "<dictionary>"
	PlaceholderArray      = "<array>"
)

// Token is a single line of the canonical notation.
// Key and Value are set for Leaf tokens only.
type Token struct {
	Kind  Kind
	Key   string
	Value string
}

// IsPlaceholder reports whether a leaf value is a type placeholder such as
// "<dictionary>". Any angle-bracketed value counts; a scalar that happens
// to look like one is indistinguishable in the text notation.
func IsPlaceholder(value string) bool {
	return len(value) >= 2 && value[0] == '<' && value[len(value)-1] == '>'
}
