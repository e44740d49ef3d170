package scanner

import (
	"io/fs"
	"testing"

	"github.com/jakoblorz/apexcov/internal/filesystem"
	"github.com/stretchr/testify/require"
)

func TestScanUncoveredTree(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	mfs.AddDir("/src/classes")
	mfs.AddFile("/src/classes/AccountManager.cls", []byte("public class AccountManager {}"))
	mfs.AddFile("/src/classes/AccountManager.cls-meta.xml", []byte("<meta/>"))
	mfs.AddFile("/src/classes/ContactService.cls", []byte("public class ContactService {}"))
	mfs.AddFile("/src/classes/ContactService.cls-meta.xml", []byte("<meta/>"))

	report, err := NewScanner(mfs).Scan("/src")
	require.NoError(t, err)

	require.Equal(t, 2, report.Total)
	require.Equal(t, 0, report.Covered)
	require.Equal(t, 0, report.Percentage())

	var names []string
	for _, unit := range report.Uncovered {
		names = append(names, unit.Name)
	}
	require.Equal(t, []string{"AccountManager", "ContactService"}, names)
}

func TestScanPartiallyCoveredTree(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	mfs.AddDir("/src/classes")
	mfs.AddFile("/src/classes/AccountManager.cls", []byte("public class AccountManager {}"))
	mfs.AddFile("/src/classes/ContactService.cls", []byte("public class ContactService {}"))
	mfs.AddFile("/src/classes/ContactServiceTest.cls", []byte("@isTest class ContactServiceTest {}"))

	report, err := NewScanner(mfs).Scan("/src")
	require.NoError(t, err)

	require.Equal(t, 2, report.Total)
	require.Equal(t, 1, report.Covered)
	require.Equal(t, 50, report.Percentage())
	require.Len(t, report.Uncovered, 1)
	require.Equal(t, "AccountManager", report.Uncovered[0].Name)
	require.True(t, report.Units[1].Covered)
}

func TestScanEmptyTree(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	mfs.AddDir("/src")

	report, err := NewScanner(mfs).Scan("/src")
	require.NoError(t, err)

	require.False(t, report.HasUnits())
	require.Equal(t, 0, report.Total)
	require.Equal(t, 0, report.Percentage())
}

func TestScanInvariantCoveredPlusUncoveredEqualsTotal(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	mfs.AddDir("/src/a")
	mfs.AddDir("/src/b")
	mfs.AddFile("/src/a/One.cls", nil)
	mfs.AddFile("/src/a/OneTest.cls", nil)
	mfs.AddFile("/src/a/Two.cls", nil)
	mfs.AddFile("/src/b/Three.cls", nil)
	mfs.AddFile("/src/b/ThreeTest.cls", nil)
	mfs.AddFile("/src/b/Four.cls", nil)

	report, err := NewScanner(mfs).Scan("/src")
	require.NoError(t, err)

	require.Equal(t, report.Total, report.Covered+len(report.Uncovered))
	require.Equal(t, 50, report.Percentage())
}

func TestScanIsDeterministic(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	mfs.AddDir("/src/zeta")
	mfs.AddDir("/src/alpha")
	mfs.AddFile("/src/zeta/Zebra.cls", nil)
	mfs.AddFile("/src/alpha/Apple.cls", nil)
	mfs.AddFile("/src/alpha/Mango.cls", nil)

	s := NewScanner(mfs)
	first, err := s.Scan("/src")
	require.NoError(t, err)
	second, err := s.Scan("/src")
	require.NoError(t, err)

	require.Equal(t, first, second)

	var names []string
	for _, unit := range first.Units {
		names = append(names, unit.Name)
	}
	require.Equal(t, []string{"Apple", "Mango", "Zebra"}, names)
}

func TestScanMatchingIsCaseSensitiveAndColocated(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	mfs.AddDir("/src/classes")
	mfs.AddDir("/src/other")
	mfs.AddFile("/src/classes/Foo.cls", nil)
	mfs.AddFile("/src/classes/Footest.cls", nil)
	mfs.AddFile("/src/other/FooTest.cls", nil)

	report, err := NewScanner(mfs).Scan("/src")
	require.NoError(t, err)

	// Footest.cls has the wrong case, FooTest.cls lives elsewhere: neither
	// covers Foo. Footest itself is a SourceUnit, as its name does not end
	// in the reserved suffix.
	require.Equal(t, 2, report.Total)
	require.Equal(t, 0, report.Covered)
	for _, unit := range report.Units {
		require.False(t, unit.Covered, "unit %s should be uncovered", unit.Name)
	}
}

func TestScanExcludesTestClassesFromUnits(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	mfs.AddDir("/src")
	mfs.AddFile("/src/BarTest.cls", nil)

	report, err := NewScanner(mfs).Scan("/src")
	require.NoError(t, err)

	require.Equal(t, 0, report.Total)
	require.Empty(t, report.Units)
}

func TestScanSkipsSymlinks(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	mfs.AddDir("/src")
	mfs.AddFile("/src/Real.cls", nil)
	mfs.AddSymlink("/src/Linked.cls")
	mfs.AddSymlink("/src/RealTest.cls")

	report, err := NewScanner(mfs).Scan("/src")
	require.NoError(t, err)

	// The symlinked test class does not count as coverage either
	require.Equal(t, 1, report.Total)
	require.Equal(t, 0, report.Covered)
	require.Equal(t, "Real", report.Uncovered[0].Name)
}

func TestScanMissingRootIsNotFound(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()

	report, err := NewScanner(mfs).Scan("/missing")
	require.Nil(t, report)
	require.Error(t, err)
	require.True(t, IsNotFound(err))
	require.False(t, IsAccessDenied(err))
}

func TestScanRootMustBeDirectory(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	mfs.AddFile("/src", nil)

	_, err := NewScanner(mfs).Scan("/src")
	require.Error(t, err)
	require.True(t, IsNotFound(err))
}

func TestScanUnreadableSubtreeFailsAtomically(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	mfs.AddDir("/src/visible")
	mfs.AddDir("/src/secret")
	mfs.AddFile("/src/visible/Seen.cls", nil)
	mfs.FailReadDir("/src/secret", fs.ErrPermission)

	report, err := NewScanner(mfs).Scan("/src")
	require.Nil(t, report, "no partial report on an unreadable subtree")
	require.Error(t, err)
	require.True(t, IsAccessDenied(err))
}

func TestScanHonorsIgnoreFile(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	mfs.AddDir("/src/classes")
	mfs.AddDir("/src/vendored")
	mfs.AddFile("/src/.forceignore", []byte("vendored/\n"))
	mfs.AddFile("/src/classes/Kept.cls", nil)
	mfs.AddFile("/src/vendored/Skipped.cls", nil)

	report, err := NewScanner(mfs).Scan("/src")
	require.NoError(t, err)

	require.Equal(t, 1, report.Total)
	require.Equal(t, "Kept", report.Units[0].Name)
}

func TestScanCustomSuffixAndExtension(t *testing.T) {
	mfs := filesystem.NewMockFileSystem()
	mfs.AddDir("/src")
	mfs.AddFile("/src/Thing.trigger", nil)
	mfs.AddFile("/src/Thing_Spec.trigger", nil)

	s := NewScanner(mfs, WithExtension(".trigger"), WithTestSuffix("_Spec"))
	report, err := s.Scan("/src")
	require.NoError(t, err)

	require.Equal(t, 1, report.Total)
	require.Equal(t, 1, report.Covered)
	require.Equal(t, 100, report.Percentage())
}
