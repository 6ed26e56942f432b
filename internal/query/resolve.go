package query

import (
	"strings"

	"github.com/dynstore/dsflat/api"
)

// resolveSubkey maps a flat record (or a prefix of one) back to the subkey
// that owns it. Candidates are formed from the record's leading segments,
// longest first, and checked for substring containment against each
// enumerated name in its flat form. The first hit wins and the name is
// returned in its original colon form.
//
// Containment, not equality: overlapping subkey names can claim records
// that belong to a sibling. Callers have grown to rely on the loose match,
// so it stays.
func resolveSubkey(names []string, record string) (string, bool) {
	q := api.NormalizeQuery(strings.TrimSpace(record))
	if q == "" {
		return "", false
	}

	flat := make([]string, len(names))
	for i, name := range names {
		flat[i] = api.FlatForm(name)
	}

	segments := api.SplitRecord(q)
	for i := len(segments); i >= 1; i-- {
		candidate := api.JoinRecord(segments[:i])
		for j, f := range flat {
			if strings.Contains(f, candidate) {
				return names[j], true
			}
		}
	}
	return "", false
}
