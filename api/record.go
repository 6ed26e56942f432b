package api

import "strings"

// Separator joins the path segments of a flat record.
// The store's dump notation does not escape separators that appear inside
// keys or values, so a record containing a literal comma splits ambiguously.
// That fragility is part of the wire format and is preserved as-is.
const Separator = ","

// KindSeparator splits a subkey name from its optional kind tag.
// A tagged name such as "mykey:State" says the subkey's root value is a
// nested dictionary rather than a scalar.
const KindSeparator = ":"

// SplitSubkey splits a subkey name into its base name and kind tag.
// The split happens at the first KindSeparator; untagged names return an
// empty kind.
func SplitSubkey(name string) (base, kind string) {
	if i := strings.Index(name, KindSeparator); i >= 0 {
		return name[:i], name[i+1:]
	}
	return name, ""
}

// FlatForm rewrites a subkey name into the form it takes inside a flat
// record, replacing the kind tag separator with the record separator.
// "mykey:State" becomes "mykey,State"; untagged names are unchanged.
func FlatForm(name string) string {
	base, kind := SplitSubkey(name)
	if kind == "" {
		return base
	}
	return base + Separator + kind
}

// JoinRecord assembles path segments into one flat record.
func JoinRecord(segments []string) string {
	return strings.Join(segments, Separator)
}

// SplitRecord splits a flat record back into its path segments.
func SplitRecord(record string) []string {
	return strings.Split(record, Separator)
}

// NormalizeQuery prepares a flat record (or prefix) for matching against
// store output: a kind tag spelled with KindSeparator in the leading
// segment is rewritten to FlatForm, so "mykey:State,a" and "mykey,State,a"
// query alike. Later segments are left untouched.
func NormalizeQuery(record string) string {
	head := record
	rest := ""
	if i := strings.Index(record, Separator); i >= 0 {
		head, rest = record[:i], record[i:]
	}
	return FlatForm(head) + rest
}
