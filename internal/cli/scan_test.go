package cli

import (
	"testing"

	"github.com/jakoblorz/apexcov/internal/filesystem"
	"github.com/jakoblorz/apexcov/internal/scanner"
	"github.com/stretchr/testify/require"
)

func addApexTree(fs *filesystem.MockFileSystem) {
	fs.AddDir("/src/classes")
	fs.AddFile("/src/classes/AccountManager.cls", []byte("public class AccountManager {}"))
	fs.AddFile("/src/classes/ContactService.cls", []byte("public class ContactService {}"))
	fs.AddFile("/src/classes/ContactServiceTest.cls", []byte("@isTest class ContactServiceTest {}"))
}

func TestScanCheckFailsBelowThreshold(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	addApexTree(fs)

	cmd := NewScanCommand(fs)
	cmd.SetArgs([]string{"--root", "/src", "--check", "--threshold", "75"})

	err := cmd.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "50%")
	require.Contains(t, err.Error(), "1 of 2")
}

func TestScanCheckPassesWhenFullyCovered(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir("/src")
	fs.AddFile("/src/Thing.cls", nil)
	fs.AddFile("/src/ThingTest.cls", nil)

	cmd := NewScanCommand(fs)
	cmd.SetArgs([]string{"--root", "/src", "--check"})

	require.NoError(t, cmd.Execute())
}

func TestScanWithoutCheckReportsOnly(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	addApexTree(fs)

	cmd := NewScanCommand(fs)
	cmd.SetArgs([]string{"--root", "/src"})

	require.NoError(t, cmd.Execute())
}

func TestScanUnknownFormat(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir("/src")

	cmd := NewScanCommand(fs)
	cmd.SetArgs([]string{"--root", "/src", "--format", "yaml"})

	err := cmd.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown format")
}

func TestScanMissingRootSurfacesScanError(t *testing.T) {
	fs := filesystem.NewMockFileSystem()

	cmd := NewScanCommand(fs)
	cmd.SetArgs([]string{"--root", "/missing"})

	err := cmd.Execute()
	require.Error(t, err)
	require.True(t, scanner.IsNotFound(err))
}

func TestScanCustomSuffixFlag(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir("/src")
	fs.AddFile("/src/Thing.cls", nil)
	fs.AddFile("/src/Thing_T.cls", nil)

	cmd := NewScanCommand(fs)
	cmd.SetArgs([]string{"--root", "/src", "--suffix", "_T", "--check"})

	require.NoError(t, cmd.Execute())
}
