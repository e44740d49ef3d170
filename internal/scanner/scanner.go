package scanner

import (
	"bytes"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	gitignore "github.com/denormal/go-gitignore"
	"github.com/jakoblorz/apexcov/internal/filesystem"
	"github.com/jakoblorz/apexcov/internal/models"
)

const (
	// DefaultExtension is the Apex class extension
	DefaultExtension = ".cls"

	// DefaultTestSuffix is the reserved suffix marking Apex test classes
	DefaultTestSuffix = "Test"

	// DefaultIgnoreFile is the gitignore-syntax file honored at the scan root
	DefaultIgnoreFile = ".forceignore"
)

// Scanner pairs implementation classes with their co-located test classes
// and produces a coverage report. Scanning is a pure read-only query over
// the tree snapshot at call time.
type Scanner struct {
	fs         filesystem.FileSystem
	extension  string
	testSuffix string
	ignoreFile string
}

// Option configures a Scanner
type Option func(*Scanner)

// WithExtension overrides the implementation artifact extension
func WithExtension(ext string) Option {
	return func(s *Scanner) {
		s.extension = ext
	}
}

// WithTestSuffix overrides the reserved test suffix
func WithTestSuffix(suffix string) Option {
	return func(s *Scanner) {
		s.testSuffix = suffix
	}
}

// WithIgnoreFile overrides the ignore file name looked up at the scan root.
// An empty name disables ignore handling.
func WithIgnoreFile(name string) Option {
	return func(s *Scanner) {
		s.ignoreFile = name
	}
}

// NewScanner creates a Scanner with Apex defaults
func NewScanner(fs filesystem.FileSystem, opts ...Option) *Scanner {
	s := &Scanner{
		fs:         fs,
		extension:  DefaultExtension,
		testSuffix: DefaultTestSuffix,
		ignoreFile: DefaultIgnoreFile,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan walks the tree under root and returns one CoverageReport.
//
// Traversal is depth-first with directory entries in lexicographic order,
// so repeated scans of an unchanged tree yield identical reports. Symlinks
// and other non-regular files are never followed. A missing root fails with
// kind NotFound; a subdirectory that cannot be listed fails the whole scan
// with kind AccessDenied, never a partial report.
func (s *Scanner) Scan(root string) (*models.CoverageReport, error) {
	info, err := s.fs.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ScanError{Kind: KindNotFound, Path: root, Err: err}
		}
		return nil, &ScanError{Kind: KindAccessDenied, Path: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &ScanError{Kind: KindNotFound, Path: root, Err: errors.New("not a directory")}
	}

	ignore, err := s.loadIgnoreFile(root)
	if err != nil {
		return nil, err
	}

	var classFiles []string
	if err := s.walk(root, root, ignore, &classFiles); err != nil {
		return nil, err
	}

	// A test class only counts if it survived the same traversal (ignored
	// or non-regular test files do not cover anything).
	testFiles := make(map[string]bool)
	for _, path := range classFiles {
		if s.isTestClass(path) {
			testFiles[path] = true
		}
	}

	report := &models.CoverageReport{Root: root}
	for _, path := range classFiles {
		if s.isTestClass(path) {
			continue
		}

		name := strings.TrimSuffix(filepath.Base(path), s.extension)
		dir := filepath.Dir(path)
		unit := models.SourceUnit{
			Name:     name,
			Path:     path,
			Dir:      dir,
			TestPath: filepath.Join(dir, name+s.testSuffix+s.extension),
		}
		unit.Covered = testFiles[unit.TestPath]

		report.Total++
		if unit.Covered {
			report.Covered++
		} else {
			report.Uncovered = append(report.Uncovered, unit)
		}
		report.Units = append(report.Units, unit)
	}

	return report, nil
}

// walk descends into dir, appending every matching class file to out.
// ReadDir returns entries sorted by name, which fixes the traversal order.
func (s *Scanner) walk(root, dir string, ignore gitignore.GitIgnore, out *[]string) error {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		return &ScanError{Kind: KindAccessDenied, Path: dir, Err: err}
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if ignore != nil {
			rel, relErr := filepath.Rel(root, path)
			if relErr == nil {
				if match := ignore.Relative(rel, entry.IsDir()); match != nil && match.Ignore() {
					continue
				}
			}
		}

		if entry.IsDir() {
			if err := s.walk(root, path, ignore, out); err != nil {
				return err
			}
			continue
		}

		// Symlinks are skipped rather than followed, so cycles cannot occur
		if !entry.Type().IsRegular() {
			continue
		}

		if strings.HasSuffix(entry.Name(), s.extension) {
			*out = append(*out, path)
		}
	}

	return nil
}

// isTestClass reports whether path names a class carrying the reserved
// suffix. Matching is case-sensitive and exact.
func (s *Scanner) isTestClass(path string) bool {
	base := strings.TrimSuffix(filepath.Base(path), s.extension)
	return strings.HasSuffix(base, s.testSuffix)
}

func (s *Scanner) loadIgnoreFile(root string) (gitignore.GitIgnore, error) {
	if s.ignoreFile == "" {
		return nil, nil
	}

	ignorePath := filepath.Join(root, s.ignoreFile)
	if !s.fs.Exists(ignorePath) {
		return nil, nil
	}

	data, err := s.fs.ReadFile(ignorePath)
	if err != nil {
		return nil, &ScanError{Kind: KindAccessDenied, Path: ignorePath, Err: err}
	}

	return gitignore.New(bytes.NewReader(data), root, nil), nil
}
