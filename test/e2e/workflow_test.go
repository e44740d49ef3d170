package e2e

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jakoblorz/apexcov/internal/filesystem"
	"github.com/jakoblorz/apexcov/internal/generator"
	"github.com/jakoblorz/apexcov/internal/llm"
	"github.com/jakoblorz/apexcov/internal/scanner"
	"github.com/stretchr/testify/require"
)

// writeFile creates a file with parent directories on the real filesystem
func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestScanGenerateRescanWorkflow(t *testing.T) {
	root := t.TempDir()
	classes := filepath.Join(root, "force-app", "main", "default", "classes")

	writeFile(t, filepath.Join(classes, "AccountManager.cls"), "public class AccountManager {}")
	writeFile(t, filepath.Join(classes, "AccountManager.cls-meta.xml"), "<meta/>")
	writeFile(t, filepath.Join(classes, "ContactService.cls"), "public class ContactService {}")
	writeFile(t, filepath.Join(classes, "ContactService.cls-meta.xml"), "<meta/>")
	writeFile(t, filepath.Join(classes, "ContactServiceTest.cls"), "@isTest class ContactServiceTest {}")

	fs := filesystem.NewOSFileSystem()
	s := scanner.NewScanner(fs)

	// Initial scan: one of two classes covered
	report, err := s.Scan(root)
	require.NoError(t, err)
	require.Equal(t, 2, report.Total)
	require.Equal(t, 1, report.Covered)
	require.Equal(t, 50, report.Percentage())
	require.Len(t, report.Uncovered, 1)
	require.Equal(t, "AccountManager", report.Uncovered[0].Name)

	// Generate the missing test class
	gen := llm.NewMockGenerator()
	gen.Respond("AccountManager", "@isTest\nprivate class AccountManagerTest {}")

	dispatcher := generator.NewDispatcher(fs, gen)
	summary, err := dispatcher.Run(context.Background(), report.Uncovered, generator.Options{})
	require.NoError(t, err)
	require.Equal(t, 1, summary.Generated)

	// Re-scan: everything covered now
	report, err = s.Scan(root)
	require.NoError(t, err)
	require.Equal(t, 2, report.Total)
	require.Equal(t, 2, report.Covered)
	require.Equal(t, 100, report.Percentage())
	require.Empty(t, report.Uncovered)

	// Sidecar descriptor exists beside the generated test
	meta, err := os.ReadFile(filepath.Join(classes, "AccountManagerTest.cls-meta.xml"))
	require.NoError(t, err)
	require.Contains(t, string(meta), "<status>Active</status>")
}

func TestFailedGenerationKeepsTreeClean(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Widget.cls"), "public class Widget {}")

	fs := filesystem.NewOSFileSystem()
	s := scanner.NewScanner(fs)

	report, err := s.Scan(root)
	require.NoError(t, err)
	require.Len(t, report.Uncovered, 1)

	// Generation fails: empty completion
	gen := llm.NewMockGenerator()
	dispatcher := generator.NewDispatcher(fs, gen)
	summary, err := dispatcher.Run(context.Background(), report.Uncovered, generator.Options{})
	require.NoError(t, err)
	require.Equal(t, 0, summary.Generated)

	// No residue on disk, and the re-scan still reports the class uncovered
	_, statErr := os.Stat(filepath.Join(root, "WidgetTest.cls"))
	require.True(t, os.IsNotExist(statErr))

	report, err = s.Scan(root)
	require.NoError(t, err)
	require.Len(t, report.Uncovered, 1)
}

func TestForceignoreIsHonoredOnDisk(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".forceignore"), "generated/\n")
	writeFile(t, filepath.Join(root, "classes", "Kept.cls"), "class Kept {}")
	writeFile(t, filepath.Join(root, "generated", "Skipped.cls"), "class Skipped {}")

	report, err := scanner.NewScanner(filesystem.NewOSFileSystem()).Scan(root)
	require.NoError(t, err)
	require.Equal(t, 1, report.Total)
	require.Equal(t, "Kept", report.Units[0].Name)
}

func TestScanRealSymlinkCycleIsIgnored(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "classes", "Thing.cls"), "class Thing {}")

	// A directory symlink pointing back at the root would cycle if followed
	link := filepath.Join(root, "classes", "loop")
	if err := os.Symlink(root, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	report, err := scanner.NewScanner(filesystem.NewOSFileSystem()).Scan(root)
	require.NoError(t, err)
	require.Equal(t, 1, report.Total)
}
