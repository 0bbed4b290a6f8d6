package tokay

import (
	"testing"

	"github.com/pmezard/go-difflib/difflib"
)

// assertReprEqual compares two Repr()-style strings and, on mismatch,
// fails with a unified diff instead of testify's raw side-by-side dump
// — handy once captures start producing multi-line nested List/Dict
// reprs.
func assertReprEqual(t *testing.T, want, got string) {
	t.Helper()
	if want == got {
		return
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	}
	text, _ := difflib.GetUnifiedDiffString(diff)
	t.Fatalf("repr mismatch:\n%s", text)
}
