// Package testutil provides shared test infrastructure for the MLFQS predictor.
// It consolidates golden-file loading and assertion helpers used across the
// sim/ and cmd/ test packages.
package testutil

import (
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// GoldenPath returns the path of testdata/<name>.golden at the repo root.
// The path is resolved relative to this source file: internal/testutil/ → testdata/.
func GoldenPath(t *testing.T, name string) string {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "testdata", name+".golden")
}

// LoadGolden returns the contents of testdata/<name>.golden.
func LoadGolden(t *testing.T, name string) string {
	t.Helper()

	data, err := os.ReadFile(GoldenPath(t, name))
	if err != nil {
		t.Fatalf("Failed to read golden file %q: %v", name, err)
	}
	return string(data)
}

// LoadGoldenLines returns the non-empty lines of testdata/<name>.golden.
func LoadGoldenLines(t *testing.T, name string) []string {
	t.Helper()

	var lines []string
	for _, l := range strings.Split(LoadGolden(t, name), "\n") {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
