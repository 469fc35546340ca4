package testharness

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFixtures drives every ".yapl" fixture under testdata/ through the
// full lex/parse/check/interpret pipeline and checks each one's observed
// ErrorCode (and, where declared, its `check` symbol value and captured
// print output) against its leading "// expect:" comment block — the
// scenarios and boundary cases from spec.md §8, one fixture per case.
func TestFixtures(t *testing.T) {
	bucket := Run("testdata", t)
	require.Zero(t, bucket.Failed, bucket.Summary())
	require.NotZero(t, bucket.Succeeded)
}
