// Package testutil holds helpers shared by the package tests
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/breezeflow/breeze/internal/osutil"
)

// AssertGolden compares got with testdata/<name>.golden. Run the tests with
// -update to rewrite the golden file.
func AssertGolden(t *testing.T, name string, got []byte) {
	t.Helper()

	if runtime.GOOS == osutil.Windows {
		// TODO: normalise line endings in the golden files
		t.Skip("skipping golden file test in Windows")
	}

	g := goldie.New(
		t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)

	g.Assert(t, name, got)
}

// InstallFixture copies a file from testdata to dir and returns the path
// of the copy.
func InstallFixture(t *testing.T, fixture, dir string) string {
	t.Helper()

	b, err := os.ReadFile(filepath.Join("testdata", fixture))
	require.NoError(t, err)

	dst := filepath.Join(dir, filepath.Base(fixture))

	require.NoError(t, os.WriteFile(dst, b, osutil.FilePermission))

	return dst
}
