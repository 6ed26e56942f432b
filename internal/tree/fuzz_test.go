package tree

import (
	"strings"
	"testing"
)

func FuzzNormalize(f *testing.F) {
	// Seed corpus
	f.Add("A : <dictionary>\n{\nB : 1\n}")
	f.Add("A : <array> { 0 : x 1 : y }")
	f.Add("}{")
	f.Add("key : value : with : colons")
	f.Add("   \n\t\n{\n}\n")

	f.Fuzz(func(t *testing.T, raw string) {
		// Limit size to avoid timeouts during fuzzing
		if len(raw) > 1<<16 {
			return
		}

		tokens, err := Normalize(raw)
		if err != nil {
			// Unbalanced garbage is expected to fail, but never panic
			return
		}

		// Accepted input must be balanced: the flattener has to finish
		// with an empty path stack and no structural fault.
		err = Flatten(tokens, func(rec string) error {
			if strings.ContainsAny(rec, "\n") {
				t.Fatalf("record contains newline: %q", rec)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("flatten rejected normalized input: %v", err)
		}
	})
}
