package tree

import (
	"fmt"
	"sort"
	"strconv"
)

// FromValue renders a structured root value as canonical tokens, framed
// with the given subkey base name. Dictionaries and arrays become
// placeholder leaves followed by a block; scalars become a single leaf.
// Tokens built this way are balanced by construction, so callers skip the
// text normalization stage entirely.
//
// Dictionary members are emitted in sorted key order. Go maps iterate
// randomly, and output must be stable across identical runs.
func FromValue(name string, value any) []Token {
	return appendValue(nil, name, value)
}

func appendValue(tokens []Token, key string, value any) []Token {
	switch v := value.(type) {
	case map[string]any:
		tokens = append(tokens, Token{Kind: Leaf, Key: key, Value: PlaceholderDictionary}, Token{Kind: Open})
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			tokens = appendValue(tokens, k, v[k])
		}
		return append(tokens, Token{Kind: Close})
	case []any:
		tokens = append(tokens, Token{Kind: Leaf, Key: key, Value: PlaceholderArray}, Token{Kind: Open})
		for i, item := range v {
			tokens = appendValue(tokens, strconv.Itoa(i), item)
		}
		return append(tokens, Token{Kind: Close})
	default:
		return append(tokens, Token{Kind: Leaf, Key: key, Value: formatScalar(v)})
	}
}

// formatScalar renders one scalar the way the store's own dump notation
// prints it. Both JSON decoders in use feed this: encoding/json produces
// float64 numbers, ojg produces int64 where the value is integral.
func formatScalar(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		if s {
			return "TRUE"
		}
		return "FALSE"
	case int64:
		return strconv.FormatInt(s, 10)
	case int:
		return strconv.Itoa(s)
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", s)
	}
}
